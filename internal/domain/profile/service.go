package profile

import "context"

// Service resolves a verified identity to a persisted profile and effective
// role, provisioning lazily on first sign-in.
type Service interface {
	// Resolve looks up the profile by subject id, falling back to email, and
	// creates a default-role profile when neither lookup succeeds. A single
	// bounded retry covers creation races with async provisioning triggers.
	Resolve(ctx context.Context, ident Identity) (ResolvedProfile, error)
	// Sync upserts the caller's directory row from token-verified identity
	// fields plus optional profile details.
	Sync(ctx context.Context, ident Identity, req SyncRequest) (Profile, error)
	// Get returns the profile for a subject id.
	Get(ctx context.Context, id string) (Profile, error)
}
