package session

import "errors"

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrInvalidToken        = errors.New("Invalid or malformed token")
	ErrTokenExpired        = errors.New("Token has expired")
	ErrRefreshTokenRevoked = errors.New("Refresh token has been revoked")
	ErrSessionNotFound     = errors.New("Session not found")
	ErrOAuthExchangeFailed = errors.New("OAuth code exchange failed")
	ErrOAuthStateMismatch  = errors.New("OAuth state mismatch")
)
