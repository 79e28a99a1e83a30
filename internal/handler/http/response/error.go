package response

import (
	"errors"
	"net/http"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session domain errors
	case errors.Is(err, session.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, session.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, session.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, session.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, session.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, session.ErrOAuthExchangeFailed):
		Unauthorized(w, "Sign-in could not be completed")
	case errors.Is(err, session.ErrSessionNotFound):
		Unauthorized(w, "No active session")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, profile.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, profile.ErrProfileLookupFailed),
		errors.Is(err, profile.ErrProfileCreateFailed):
		InternalServerError(w, "Profile could not be resolved")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrDocumentCorrupt):
		InternalServerError(w, "Stored leave data could not be read")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Directory domain errors
	case errors.Is(err, directory.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privileges required")
	case errors.Is(err, directory.ErrSelfDelete):
		BadRequest(w, "Cannot delete your own account", nil)
	case errors.Is(err, directory.ErrTargetNotFound):
		NotFound(w, "Target user not found")
	case errors.Is(err, directory.ErrPartialDelete):
		InternalServerError(w, "User was only partially removed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
