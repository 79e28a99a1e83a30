package session

import "context"

// Service owns the login lifecycle: OAuth bootstrap, the password fallback,
// refresh, and logout.
type Service interface {
	// LoginURL returns the provider authorization URL with a fresh state.
	LoginURL(ctx context.Context) (url string, state string, err error)
	// HandleCallback exchanges the authorization code, verifies the identity,
	// resolves the profile, and opens a session.
	HandleCallback(ctx context.Context, code string, track Tracking) (*TokenResponse, error)
	// LoginWithPassword is the fallback for accounts with a local password.
	LoginWithPassword(ctx context.Context, req LoginRequest, track Tracking) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error)
	// Logout revokes the session. Remote revocation failures are logged and
	// swallowed; the local session always ends.
	Logout(ctx context.Context, refreshToken string) error
	// Current describes the session owning the given user id.
	Current(ctx context.Context, userID string) (*SessionResponse, error)
	// ConsentURL returns the provider URL requesting the calendar scope.
	ConsentURL(ctx context.Context) (url string, state string, err error)
}
