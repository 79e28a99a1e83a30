package directory

import (
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/validator"
)

type Action string

const (
	ActionList         Action = "list"
	ActionDelete       Action = "delete"
	ActionAddRole      Action = "add_role"
	ActionRemoveRole   Action = "remove_role"
	ActionReplaceRoles Action = "replace_roles"
)

// ActionRequest is the management endpoint's JSON body. The caller's subject
// comes from the verified bearer credential, never from the body.
type ActionRequest struct {
	Action     Action   `json:"action"`
	TargetUser string   `json:"target_user,omitempty"`
	Role       string   `json:"role,omitempty"`
	Roles      []string `json:"roles,omitempty"`
}

func (r *ActionRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.Action {
	case ActionList:
		// no target required
	case ActionDelete:
		if validator.IsEmpty(r.TargetUser) {
			errs = append(errs, validator.ValidationError{
				Field:   "target_user",
				Message: "target_user is required",
			})
		}
	case ActionAddRole, ActionRemoveRole:
		if validator.IsEmpty(r.TargetUser) {
			errs = append(errs, validator.ValidationError{
				Field:   "target_user",
				Message: "target_user is required",
			})
		}
		if validator.IsEmpty(r.Role) {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role is required for " + string(r.Action),
			})
		}
	case ActionReplaceRoles:
		if validator.IsEmpty(r.TargetUser) {
			errs = append(errs, validator.ValidationError{
				Field:   "target_user",
				Message: "target_user is required",
			})
		}
		if r.Roles == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "roles",
				Message: "roles array is required for replace_roles",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "unknown action",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActionResponse mirrors the management endpoint's success shape.
type ActionResponse struct {
	Status string                    `json:"status"`
	Action string                    `json:"action,omitempty"`
	Target string                    `json:"target,omitempty"`
	Role   string                    `json:"role,omitempty"`
	Roles  []string                  `json:"roles,omitempty"`
	Users  []profile.ProfileResponse `json:"users,omitempty"`
}
