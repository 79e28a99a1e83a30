package leave

import "context"

// Service is the leave request store for the signed-in user.
type Service interface {
	// Submit validates the draft, derives days, assigns an id and prepends the
	// new request to the stored collection.
	Submit(ctx context.Context, userID, displayName string, req SubmitLeaveRequestRequest) (LeaveRequest, error)
	// List returns the user's stored requests, newest first.
	List(ctx context.Context, userID string) ([]LeaveRequest, error)
	// EditDraft loads an existing request's fields into a draft for
	// re-submission. Resubmitting appends a new record; the original is left
	// in place (observed behavior, see service doc).
	EditDraft(ctx context.Context, userID, id string) (SubmitLeaveRequestRequest, error)
	// Cancel removes the request with the given id from the stored collection,
	// if present.
	Cancel(ctx context.Context, userID, id string) error
	// ClearAll empties the stored collection.
	ClearAll(ctx context.Context, userID string) error
}
