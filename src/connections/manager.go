package connections

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Snapshot is one user's fetched view of the world: the candidate account set
// and every request involving that user, tagged with the refresh sequence that
// produced it.
type Snapshot struct {
	Seq      uint64
	Accounts []Account
	Requests []Request
}

// Manager validates connection-request mutations and derives the three
// client-visible views from per-user snapshots. It performs no I/O beyond the
// Store collaborator and holds no state the store could not rebuild.
type Manager struct {
	store Store
	log   zerolog.Logger

	mu       sync.Mutex
	seq      uint64
	snaps    map[uint]*Snapshot
	inflight map[uint]bool
}

// NewManager builds a manager around the given store.
func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		log:      logger,
		snaps:    make(map[uint]*Snapshot),
		inflight: make(map[uint]bool),
	}
}

// Refresh re-fetches accounts and requests for the user and installs the
// result as their current snapshot. Each refresh carries a monotonic sequence
// number; a result that lost the race to a newer refresh is discarded so stale
// responses never overwrite fresher state.
func (m *Manager) Refresh(ctx context.Context, userID uint) (*Snapshot, error) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.mu.Unlock()

	accounts, err := m.store.FetchAccounts(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	requests, err := m.store.FetchRequests(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}

	snap := &Snapshot{Seq: seq, Accounts: accounts, Requests: requests}

	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.snaps[userID]
	if ok && current.Seq > seq {
		m.log.Debug().Uint("user", userID).Uint64("seq", seq).Msg("discarding stale refresh")
		return current, nil
	}
	m.snaps[userID] = snap
	return snap, nil
}

// snapshot returns the user's cached snapshot, refreshing first if none exists.
func (m *Manager) snapshot(ctx context.Context, userID uint) (*Snapshot, error) {
	m.mu.Lock()
	snap, ok := m.snaps[userID]
	m.mu.Unlock()
	if ok {
		return snap, nil
	}
	return m.Refresh(ctx, userID)
}

// Discoverable returns the discover view for the user.
func (m *Manager) Discoverable(ctx context.Context, userID uint) ([]DiscoverEntry, error) {
	snap, err := m.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Discover(userID, snap.Accounts, snap.Requests), nil
}

// Connections returns the established-connections view for the user.
func (m *Manager) Connections(ctx context.Context, userID uint) ([]ConnectionView, error) {
	snap, err := m.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Established(userID, snap.Accounts, snap.Requests), nil
}

// PendingIncoming returns the requests waiting on the user.
func (m *Manager) PendingIncoming(ctx context.Context, userID uint) ([]Request, error) {
	snap, err := m.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return PendingIncoming(userID, snap.Requests), nil
}

// RequestConnection creates a pending request from sender to receiver. The
// self-request check happens before any I/O; the duplicate check is first done
// against the sender's snapshot and then trusted to the store's uniqueness
// constraint for the cross-client race.
func (m *Manager) RequestConnection(ctx context.Context, senderID, receiverID uint, message string) (Request, error) {
	if senderID == receiverID {
		return Request{}, ErrSelfRequest
	}

	if snap, err := m.snapshot(ctx, senderID); err == nil {
		for _, req := range snap.Requests {
			if req.Involves(receiverID) {
				return Request{}, ErrDuplicateRequest
			}
		}
	}

	req, err := m.store.InsertRequest(ctx, senderID, receiverID, message)
	if err != nil {
		if errors.Is(err, ErrDuplicateRequest) {
			return Request{}, ErrDuplicateRequest
		}
		return Request{}, storeErr(err)
	}

	m.log.Info().Uint("request", req.ID).Uint("sender", senderID).Uint("receiver", receiverID).
		Msg("connection request created")

	if _, err := m.Refresh(ctx, senderID); err != nil {
		m.log.Warn().Err(err).Uint("user", senderID).Msg("refresh after request failed")
	}
	return req, nil
}

// Respond transitions a pending request to accepted or rejected on behalf of
// its receiver. A second response to the same request while one is outstanding
// from this instance is refused outright, mirroring the disabled button the
// UI shows while a response is in flight.
func (m *Manager) Respond(ctx context.Context, connectionID, responderID uint, decision Decision) (Request, error) {
	var status Status
	switch decision {
	case DecisionAccept:
		status = StatusAccepted
	case DecisionReject:
		status = StatusRejected
	default:
		return Request{}, fmt.Errorf("unknown decision %q", decision)
	}

	m.mu.Lock()
	if m.inflight[connectionID] {
		m.mu.Unlock()
		return Request{}, ErrRequestInFlight
	}
	m.inflight[connectionID] = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.inflight, connectionID)
		m.mu.Unlock()
	}()

	req, err := m.store.FetchRequestByID(ctx, connectionID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return Request{}, ErrRequestNotFound
		}
		return Request{}, storeErr(err)
	}

	// Authorization before anything touches the store: the store itself has
	// no idea who is asking.
	if req.ReceiverID != responderID {
		return Request{}, ErrNotAuthorized
	}
	if req.Status != StatusPending {
		return Request{}, ErrAlreadyResolved
	}

	if err := m.store.UpdateRequestStatus(ctx, connectionID, status); err != nil {
		if errors.Is(err, ErrAlreadyResolved) || errors.Is(err, ErrRequestNotFound) {
			return Request{}, err
		}
		return Request{}, storeErr(err)
	}

	m.log.Info().Uint("request", connectionID).Uint("responder", responderID).
		Str("decision", string(decision)).Msg("connection request resolved")

	snap, err := m.Refresh(ctx, responderID)
	if err != nil {
		m.log.Warn().Err(err).Uint("user", responderID).Msg("refresh after respond failed")
		req.Status = status
		return req, nil
	}
	for _, fresh := range snap.Requests {
		if fresh.ID == connectionID {
			return fresh, nil
		}
	}
	req.Status = status
	return req, nil
}

// Invalidate drops a user's cached snapshot so the next read re-fetches. Used
// when another party's mutation affects this user (push notification handling).
func (m *Manager) Invalidate(userID uint) {
	m.mu.Lock()
	delete(m.snaps, userID)
	m.mu.Unlock()
}

// storeErr classifies non-sentinel store failures as unavailability while
// keeping the cause inspectable.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
