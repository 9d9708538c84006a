package connections

import "context"

// Store is the persistence collaborator for accounts and connection requests.
//
// Implementations must report a uniqueness violation from InsertRequest as
// ErrDuplicateRequest and a missing id as ErrRequestNotFound; any other failure
// may be returned as-is and is classified as store unavailability by the
// manager. UpdateRequestStatus must only transition rows that are still
// pending and return ErrAlreadyResolved otherwise, so that concurrent
// responders cannot overwrite each other.
type Store interface {
	FetchAccounts(ctx context.Context, excludingID uint) ([]Account, error)
	FetchRequests(ctx context.Context, forUserID uint) ([]Request, error)
	FetchRequestByID(ctx context.Context, id uint) (Request, error)
	InsertRequest(ctx context.Context, senderID, receiverID uint, message string) (Request, error)
	UpdateRequestStatus(ctx context.Context, id uint, status Status) error
}
