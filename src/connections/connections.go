// Package connections owns the lifecycle of connection requests between two
// scholars and the three views derived from them: discoverable scholars,
// pending incoming requests, and established connections. All persistence goes
// through the Store collaborator; everything else here is validation and pure
// derivation.
package connections

import (
	"sort"
	"time"
)

// Status is the lifecycle state of a connection request. StatusNone is never
// stored; it only appears in derived discover entries for pairs with no request.
type Status string

const (
	StatusNone     Status = "none"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Direction says which side of a pending request the current user is on.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Decision is the receiver's answer to a pending request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Account is the read-only view of a scholar profile the manager works with.
type Account struct {
	ID            uint   `json:"_id"`
	FullName      string `json:"full_name"`
	Institution   string `json:"institution"`
	AcademicTitle string `json:"academic_title,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// Request is a directed connection request between two accounts.
type Request struct {
	ID         uint      `json:"_id"`
	SenderID   uint      `json:"sender"`
	ReceiverID uint      `json:"receiver"`
	Status     Status    `json:"status"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Involves reports whether the given user is either party of the request.
func (r Request) Involves(userID uint) bool {
	return r.SenderID == userID || r.ReceiverID == userID
}

// PeerOf returns the other party of the request. The caller must already know
// the given user is involved.
func (r Request) PeerOf(userID uint) uint {
	if r.SenderID == userID {
		return r.ReceiverID
	}
	return r.SenderID
}

// DiscoverEntry annotates a candidate account with the state of the (at most
// one) request between it and the current user. Direction is only meaningful
// while Status is pending, RequestID whenever a request exists.
type DiscoverEntry struct {
	Account   Account   `json:"account"`
	Status    Status    `json:"connectionStatus"`
	Direction Direction `json:"direction,omitempty"`
	RequestID uint      `json:"connectionId,omitempty"`
}

// ConnectionView is one established connection seen from the current user's
// side: the peer account, regardless of who originally sent the request.
type ConnectionView struct {
	Peer        Account   `json:"peer"`
	RequestID   uint      `json:"connectionId"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Discover derives the discoverable-scholars view. The current user is
// filtered out even if the caller forgot to. Output is sorted by display name,
// ties broken by id, so identical inputs always produce identical output.
func Discover(currentID uint, accounts []Account, requests []Request) []DiscoverEntry {
	byPeer := make(map[uint]Request, len(requests))
	for _, req := range requests {
		if req.Involves(currentID) {
			byPeer[req.PeerOf(currentID)] = req
		}
	}

	entries := make([]DiscoverEntry, 0, len(accounts))
	for _, account := range accounts {
		if account.ID == currentID {
			continue
		}

		entry := DiscoverEntry{Account: account, Status: StatusNone}
		if req, ok := byPeer[account.ID]; ok {
			entry.Status = req.Status
			entry.RequestID = req.ID
			if req.Status == StatusPending {
				if req.SenderID == currentID {
					entry.Direction = DirectionOutgoing
				} else {
					entry.Direction = DirectionIncoming
				}
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Account.FullName != entries[j].Account.FullName {
			return entries[i].Account.FullName < entries[j].Account.FullName
		}
		return entries[i].Account.ID < entries[j].Account.ID
	})

	return entries
}

// Established derives the connections view: every accepted request involving
// the current user, mapped to the other party. Accounts missing from the
// candidate set are skipped rather than rendered as empty peers.
func Established(currentID uint, accounts []Account, requests []Request) []ConnectionView {
	byID := make(map[uint]Account, len(accounts))
	for _, account := range accounts {
		byID[account.ID] = account
	}

	views := make([]ConnectionView, 0)
	for _, req := range requests {
		if req.Status != StatusAccepted || !req.Involves(currentID) {
			continue
		}
		peer, ok := byID[req.PeerOf(currentID)]
		if !ok {
			continue
		}
		views = append(views, ConnectionView{
			Peer:        peer,
			RequestID:   req.ID,
			ConnectedAt: req.UpdatedAt,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Peer.FullName != views[j].Peer.FullName {
			return views[i].Peer.FullName < views[j].Peer.FullName
		}
		return views[i].Peer.ID < views[j].Peer.ID
	})

	return views
}

// PendingIncoming derives the requests waiting on the current user, newest
// first, ties broken by id so the order is deterministic.
func PendingIncoming(currentID uint, requests []Request) []Request {
	pending := make([]Request, 0)
	for _, req := range requests {
		if req.Status == StatusPending && req.ReceiverID == currentID {
			pending = append(pending, req)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].CreatedAt.After(pending[j].CreatedAt)
		}
		return pending[i].ID > pending[j].ID
	})

	return pending
}
