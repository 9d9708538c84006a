package connections

import "errors"

// Every expected failure has its own sentinel so callers can pick the right
// user-facing message; only ErrStoreUnavailable represents a transport-level
// failure worth retrying.
var (
	// ErrSelfRequest is returned before any I/O when a user tries to connect
	// with themselves.
	ErrSelfRequest = errors.New("cannot send a connection request to yourself")

	// ErrDuplicateRequest is returned when a request between the pair already
	// exists, whether detected locally or reported by the store's uniqueness
	// constraint.
	ErrDuplicateRequest = errors.New("a connection request already exists between these users")

	// ErrNotAuthorized is returned when the responder is not the receiver of
	// the request.
	ErrNotAuthorized = errors.New("only the receiver may respond to a connection request")

	// ErrRequestNotFound is returned when no request with the given id exists.
	ErrRequestNotFound = errors.New("connection request not found")

	// ErrAlreadyResolved is returned when the request has already left the
	// pending state.
	ErrAlreadyResolved = errors.New("connection request has already been processed")

	// ErrRequestInFlight is returned when a response to the same request is
	// still outstanding from this instance.
	ErrRequestInFlight = errors.New("a response to this connection request is already in flight")

	// ErrStoreUnavailable wraps any other store failure.
	ErrStoreUnavailable = errors.New("connection store unavailable")
)
