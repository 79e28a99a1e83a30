package leave

import "context"

// StoreRepository persists the per-user leave request document. The document
// is always read and written whole; the last write wins if concurrent callers
// race (accepted limitation, no optimistic concurrency token).
type StoreRepository interface {
	// Load returns the user's stored document, or an empty current-version
	// document when none exists yet.
	Load(ctx context.Context, userID string) (Document, error)
	// Save replaces the user's stored document.
	Save(ctx context.Context, userID string, doc Document) error
	// Clear removes the user's stored document entirely.
	Clear(ctx context.Context, userID string) error
}
