package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.Repository {
	return &sessionRepositoryImpl{db: db}
}

const sessionColumns = `id, user_id, refresh_token, provider_token, provider_scopes,
			  consent_requested, user_agent, ip_address, expires_at, revoked_at, created_at`

func scanSession(row pgx.Row) (*session.Session, error) {
	var s session.Session
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshToken,
		&s.ProviderToken,
		&s.ProviderScopes,
		&s.ConsentRequested,
		&s.UserAgent,
		&s.IPAddress,
		&s.ExpiresAt,
		&s.RevokedAt,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create implements session.Repository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, s *session.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sessions (
			id, user_id, refresh_token, provider_token, provider_scopes,
			user_agent, ip_address, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return q.QueryRow(ctx, query,
		s.ID,
		s.UserID,
		s.RefreshToken,
		s.ProviderToken,
		s.ProviderScopes,
		s.UserAgent,
		s.IPAddress,
		s.ExpiresAt,
	).Scan(&s.CreatedAt)
}

// GetByRefreshToken implements session.Repository.
func (r *sessionRepositoryImpl) GetByRefreshToken(ctx context.Context, token string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE refresh_token = $1`

	s, err := scanSession(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetActiveByUserID implements session.Repository. Returns the newest
// unrevoked, unexpired session.
func (r *sessionRepositoryImpl) GetActiveByUserID(ctx context.Context, userID string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1`

	s, err := scanSession(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// Revoke implements session.Repository.
func (r *sessionRepositoryImpl) Revoke(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE sessions SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// DeleteByUserID implements session.Repository.
func (r *sessionRepositoryImpl) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateProviderToken implements session.Repository.
func (r *sessionRepositoryImpl) UpdateProviderToken(ctx context.Context, id string, token string, scopes []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE sessions
		SET provider_token = $1, provider_scopes = $2
		WHERE id = $3`, token, scopes, id)
	return err
}

// MarkConsentRequested implements session.Repository. The returned flag is the
// value before the flip, so callers can offer re-consent exactly once.
func (r *sessionRepositoryImpl) MarkConsentRequested(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var already bool
	err := q.QueryRow(ctx, `
		UPDATE sessions s
		SET consent_requested = TRUE
		FROM (SELECT consent_requested FROM sessions WHERE id = $1 FOR UPDATE) prev
		WHERE s.id = $1
		RETURNING prev.consent_requested`, id,
	).Scan(&already)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, session.ErrSessionNotFound
		}
		return false, err
	}
	return already, nil
}
