package profile

import "context"

// Repository - interface for the profiles directory table
type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	// List returns directory rows excluding the given caller id.
	List(ctx context.Context, excludeID string) ([]Profile, error)
	AddRole(ctx context.Context, id, role string) error
	RemoveRole(ctx context.Context, id, role string) error
	ReplaceRoles(ctx context.Context, id string, roles []string) error
	Delete(ctx context.Context, id string) error
	// IsAdmin is the server-side authority check used by privileged
	// operations; it never consults token claims.
	IsAdmin(ctx context.Context, id string) (bool, error)
	TouchLastSeen(ctx context.Context, id string) error
}
