package session

import "time"

// Session is a server-side login record. Provider tokens never leave the
// server; only the opaque refresh token and the short-lived access token are
// handed to the client.
type Session struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	RefreshToken     string     `json:"-"`
	ProviderToken    *string    `json:"-"`
	ProviderScopes   []string   `json:"-"`
	ConsentRequested bool       `json:"-"`
	UserAgent        *string    `json:"user_agent,omitempty"`
	IPAddress        *string    `json:"ip_address,omitempty"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Active reports whether the session can still mint access tokens.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// HasScope reports whether the provider granted the named scope.
func (s *Session) HasScope(scope string) bool {
	return ScopeGranted(s.ProviderScopes, scope)
}

// ScopeGranted reports whether scope appears in the granted set.
func ScopeGranted(scopes []string, scope string) bool {
	for _, g := range scopes {
		if g == scope {
			return true
		}
	}
	return false
}
