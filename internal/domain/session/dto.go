package session

import (
	"github.com/leaveport/leaveport-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "Password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{
			Field:   "refresh_token",
			Message: "Refresh token is required",
		}}
	}
	return nil
}

// Tracking carries request metadata recorded on the session row.
type Tracking struct {
	UserAgent string
	IPAddress string
}

// ConsentRoute is the app endpoint that starts the incremental consent
// redirect. Consent URLs handed to the client always point here, never at
// the provider directly, so the state cookie gets set before the round-trip.
const ConsentRoute = "/api/v1/auth/oauth/microsoft/consent"

// TokenResponse is returned on login and OAuth callback.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	// RefreshExpiresAt feeds the cookie lifetime; not part of the JSON body.
	RefreshExpiresAt int64  `json:"-"`
	Destination      string `json:"destination"`
	// ConsentURL is set when the calendar scope is missing and re-consent has
	// not been requested yet.
	ConsentURL string `json:"consent_url,omitempty"`
}

// AccessTokenResponse is returned by the refresh endpoint.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// SessionResponse is the "who am I" shape for the current session probe.
type SessionResponse struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	EffectiveRole string `json:"effective_role"`
	Destination   string `json:"destination"`
	ExpiresAt     string `json:"expires_at"`
}
