package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/database"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/jwt"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/oauth"
	"github.com/leaveport/leaveport-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type SessionServiceImpl struct {
	db          *database.DB
	sessionRepo session.Repository
	profileRepo profile.Repository
	profileSvc  profile.Service
	jwtSvc      jwt.Service
	oauthSvc    oauth.MicrosoftService
}

func NewSessionService(
	db *database.DB,
	sessionRepo session.Repository,
	profileRepo profile.Repository,
	profileSvc profile.Service,
	jwtSvc jwt.Service,
	oauthSvc oauth.MicrosoftService,
) session.Service {
	return &SessionServiceImpl{
		db:          db,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		profileSvc:  profileSvc,
		jwtSvc:      jwtSvc,
		oauthSvc:    oauthSvc,
	}
}

// LoginURL implements session.Service.
func (s *SessionServiceImpl) LoginURL(ctx context.Context) (string, string, error) {
	state := s.oauthSvc.GenerateState("")
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return s.oauthSvc.LoginURL(state), state, nil
}

// ConsentURL implements session.Service.
func (s *SessionServiceImpl) ConsentURL(ctx context.Context) (string, string, error) {
	state := s.oauthSvc.GenerateState("")
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return s.oauthSvc.ConsentURL(state), state, nil
}

// HandleCallback implements session.Service.
func (s *SessionServiceImpl) HandleCallback(ctx context.Context, code string, track session.Tracking) (*session.TokenResponse, error) {
	providerToken, err := s.oauthSvc.VerifyToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", session.ErrOAuthExchangeFailed, err)
	}

	info, err := s.oauthSvc.VerifyUser(ctx, providerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify provider account: %w", err)
	}

	resolved, err := s.profileSvc.Resolve(ctx, profile.Identity{
		Subject:        info.ID,
		Email:          info.Email(),
		DisplayName:    &info.DisplayName,
		GivenName:      info.GivenName,
		Surname:        info.Surname,
		JobTitle:       info.JobTitle,
		Department:     info.Department,
		OfficeLocation: info.OfficeLocation,
	})
	if err != nil {
		return nil, err
	}

	scopes := grantedScopes(providerToken.Extra("scope"))

	// A consent round-trip re-enters this callback with a session already
	// open; refresh that session's provider grant instead of stacking a
	// second row.
	existing, lookupErr := s.sessionRepo.GetActiveByUserID(ctx, resolved.Profile.ID)
	if lookupErr == nil {
		return s.upgradeSession(ctx, resolved, existing, providerToken.AccessToken, scopes)
	}
	if !errors.Is(lookupErr, session.ErrSessionNotFound) {
		slog.Warn("Failed to look up existing session during callback", "error", lookupErr)
	}

	resp, err := s.openSession(ctx, resolved, providerToken.AccessToken, scopes, track)
	if err != nil {
		return nil, err
	}
	s.attachConsentURL(resp, scopes)
	return resp, nil
}

// upgradeSession moves a fresh provider grant onto an already-open session.
// The refresh token the client holds stays valid; only the access token is
// reissued.
func (s *SessionServiceImpl) upgradeSession(ctx context.Context, resolved profile.ResolvedProfile, existing *session.Session, providerToken string, scopes []string) (*session.TokenResponse, error) {
	if err := s.sessionRepo.UpdateProviderToken(ctx, existing.ID, providerToken, scopes); err != nil {
		return nil, fmt.Errorf("failed to update provider token: %w", err)
	}

	p := resolved.Profile
	accessToken, accessExpiresAt, err := s.jwtSvc.GenerateAccessToken(p.ID, p.Email, resolved.EffectiveRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	resp := &session.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     existing.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        accessExpiresAt - time.Now().Unix(),
		RefreshExpiresAt: existing.ExpiresAt.Unix(),
		Destination:      resolved.Destination.InitialRoute,
	}
	s.attachConsentURL(resp, scopes)
	return resp, nil
}

// attachConsentURL points the client at the incremental consent flow when the
// provider grant is missing the calendar scope.
func (s *SessionServiceImpl) attachConsentURL(resp *session.TokenResponse, scopes []string) {
	if session.ScopeGranted(scopes, s.oauthSvc.CalendarScope()) {
		return
	}
	resp.ConsentURL = session.ConsentRoute
}

// LoginWithPassword implements session.Service. Fallback for accounts that
// carry a local password hash; accounts without one only sign in via OAuth.
func (s *SessionServiceImpl) LoginWithPassword(ctx context.Context, req session.LoginRequest, track session.Tracking) (*session.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, session.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	if p.PasswordHash == nil {
		return nil, session.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, session.ErrInvalidCredentials
	}

	resolved, err := s.profileSvc.Resolve(ctx, profile.Identity{Subject: p.ID, Email: p.Email})
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, resolved, "", nil, track)
}

func (s *SessionServiceImpl) openSession(ctx context.Context, resolved profile.ResolvedProfile, providerToken string, providerScopes []string, track session.Tracking) (*session.TokenResponse, error) {
	p := resolved.Profile

	accessToken, accessExpiresAt, err := s.jwtSvc.GenerateAccessToken(p.ID, p.Email, resolved.EffectiveRole)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtSvc.GenerateRefreshToken(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	sess := &session.Session{
		ID:             uuid.NewString(),
		UserID:         p.ID,
		RefreshToken:   refreshToken,
		ProviderScopes: providerScopes,
		ExpiresAt:      time.Unix(refreshExpiresAt, 0),
	}
	if providerToken != "" {
		sess.ProviderToken = &providerToken
	}
	if track.UserAgent != "" {
		sess.UserAgent = &track.UserAgent
	}
	if track.IPAddress != "" {
		sess.IPAddress = &track.IPAddress
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.sessionRepo.Create(txCtx, sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		if err := s.profileRepo.TouchLastSeen(txCtx, p.ID); err != nil {
			return fmt.Errorf("failed to touch last_seen: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        accessExpiresAt - time.Now().Unix(),
		RefreshExpiresAt: refreshExpiresAt,
		Destination:      resolved.Destination.InitialRoute,
	}, nil
}

// Refresh implements session.Service.
func (s *SessionServiceImpl) Refresh(ctx context.Context, refreshToken string) (*session.AccessTokenResponse, error) {
	if s.jwtSvc.IsTokenRevoked(refreshToken) {
		return nil, session.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, session.ErrInvalidToken
	}

	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, session.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if sess.RevokedAt != nil {
		return nil, session.ErrRefreshTokenRevoked
	}
	if !sess.Active(time.Now()) {
		return nil, session.ErrTokenExpired
	}

	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for refresh: %w", err)
	}

	accessToken, expiresAt, err := s.jwtSvc.GenerateAccessToken(p.ID, p.Email, p.EffectiveRole())
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &session.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt - time.Now().Unix(),
	}, nil
}

// Logout implements session.Service. Revocation failures are logged, not
// surfaced: sign-out always completes from the caller's point of view.
func (s *SessionServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	s.jwtSvc.RevokeToken(refreshToken)

	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			slog.Warn("Failed to look up session during logout", "error", err)
		}
		return nil
	}
	if err := s.sessionRepo.Revoke(ctx, sess.ID); err != nil {
		slog.Warn("Failed to revoke session during logout", "session_id", sess.ID, "error", err)
	}
	return nil
}

// Current implements session.Service.
func (s *SessionServiceImpl) Current(ctx context.Context, userID string) (*session.SessionResponse, error) {
	sess, err := s.sessionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	effective := p.EffectiveRole()
	return &session.SessionResponse{
		UserID:        p.ID,
		Email:         p.Email,
		EffectiveRole: string(effective),
		Destination:   role.RouteFor(effective).InitialRoute,
		ExpiresAt:     sess.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func grantedScopes(raw interface{}) []string {
	s, ok := raw.(string)
	if !ok || s == "" {
		return nil
	}
	return strings.Fields(s)
}
