package directory

import (
	"context"

	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
)

// Service executes privileged directory operations. Every method re-verifies
// the caller's admin status against the directory store; the caller's own
// role claim is never trusted for authorization.
type Service interface {
	List(ctx context.Context, callerID string) ([]profile.Profile, error)
	// Delete removes the target from both the authentication store and the
	// directory table. Refuses self-deletion. A failure between the two
	// stores surfaces ErrPartialDelete (documented inconsistency).
	Delete(ctx context.Context, callerID, targetID string) error
	AddRole(ctx context.Context, callerID, targetID, role string) error
	RemoveRole(ctx context.Context, callerID, targetID, role string) error
	ReplaceRoles(ctx context.Context, callerID, targetID string, roles []string) error
}
