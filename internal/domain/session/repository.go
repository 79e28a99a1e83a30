package session

import "context"

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByRefreshToken(ctx context.Context, token string) (*Session, error)
	GetActiveByUserID(ctx context.Context, userID string) (*Session, error)
	Revoke(ctx context.Context, id string) error
	// DeleteByUserID removes every session row for the user and returns the
	// number removed. Used by the directory delete path.
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	UpdateProviderToken(ctx context.Context, id string, token string, scopes []string) error
	// MarkConsentRequested flips the consent flag and reports whether it was
	// already set, so re-consent is offered at most once per session.
	MarkConsentRequested(ctx context.Context, id string) (already bool, err error)
}
