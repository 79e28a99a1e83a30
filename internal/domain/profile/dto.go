package profile

import (
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/validator"
)

// SyncRequest carries the identity's basic profile fields for the first
// sign-in upsert. The subject and email come from the verified token, never
// from the request body.
type SyncRequest struct {
	DisplayName    *string `json:"display_name,omitempty"`
	GivenName      *string `json:"given_name,omitempty"`
	Surname        *string `json:"surname,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
	Department     *string `json:"department,omitempty"`
	OfficeLocation *string `json:"office_location,omitempty"`
}

type ResolvedProfile struct {
	Profile       Profile
	EffectiveRole role.Role
	Destination   role.Destination
	Created       bool
}

// ProfileResponse is the wire shape for a directory row.
type ProfileResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	DisplayName    *string    `json:"display_name,omitempty"`
	GivenName      *string    `json:"given_name,omitempty"`
	Surname        *string    `json:"surname,omitempty"`
	JobTitle       *string    `json:"job_title,omitempty"`
	Department     *string    `json:"department,omitempty"`
	OfficeLocation *string    `json:"office_location,omitempty"`
	Roles          []string   `json:"roles"`
	EffectiveRole  string     `json:"effective_role"`
	IsActive       bool       `json:"is_active"`
	LastSeen       *time.Time `json:"last_seen,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToResponse(p Profile) ProfileResponse {
	roles := p.Roles
	if roles == nil {
		roles = []string{}
	}
	return ProfileResponse{
		ID:             p.ID,
		Email:          p.Email,
		DisplayName:    p.DisplayName,
		GivenName:      p.GivenName,
		Surname:        p.Surname,
		JobTitle:       p.JobTitle,
		Department:     p.Department,
		OfficeLocation: p.OfficeLocation,
		Roles:          roles,
		EffectiveRole:  string(p.EffectiveRole()),
		IsActive:       p.IsActive,
		LastSeen:       p.LastSeen,
		CreatedAt:      p.CreatedAt,
	}
}

// ValidateIdentity checks the minimum fields a directory upsert needs.
func ValidateIdentity(ident Identity) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(ident.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(ident.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(ident.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
