package profile

import (
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
)

// Identity is the verified output of the identity provider: an opaque subject
// id plus an email and optional display fields. Immutable for the lifetime of
// a session.
type Identity struct {
	Subject        string
	Email          string
	DisplayName    *string
	GivenName      *string
	Surname        *string
	JobTitle       *string
	Department     *string
	OfficeLocation *string
}

// Profile is the persisted directory record for a user. Keyed by the identity
// provider subject id; email is a secondary lookup key for rows provisioned
// before the subject scheme matched.
type Profile struct {
	ID             string
	Email          string
	DisplayName    *string
	GivenName      *string
	Surname        *string
	JobTitle       *string
	Department     *string
	OfficeLocation *string
	Roles          []string
	IsActive       bool
	PasswordHash   *string
	LastSeen       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveRole derives the single role used for routing. A nil or empty
// roles collection resolves to employee; application logic never treats
// Roles as absent.
func (p *Profile) EffectiveRole() role.Role {
	return role.Effective(p.Roles)
}

// IsAdmin reports whether the profile carries the admin tag. UI gating only;
// privileged endpoints re-check against the directory store.
func (p *Profile) IsAdmin() bool {
	return p.EffectiveRole() == role.RoleAdmin
}
