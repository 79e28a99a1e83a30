package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
)

type ProfileServiceImpl struct {
	profile.Repository
	provisionRetryDelay time.Duration
}

func NewProfileService(profileRepository profile.Repository, provisionRetryDelay time.Duration) profile.Service {
	return &ProfileServiceImpl{
		Repository:          profileRepository,
		provisionRetryDelay: provisionRetryDelay,
	}
}

// Resolve implements profile.Service. Lookup order: subject id, then email,
// then one delayed retry by id before creating a default-role profile. The
// retry covers the race where an async provisioning trigger inserts the row
// moments after first sign-in.
func (s *ProfileServiceImpl) Resolve(ctx context.Context, ident profile.Identity) (profile.ResolvedProfile, error) {
	if err := profile.ValidateIdentity(ident); err != nil {
		return profile.ResolvedProfile{}, err
	}

	p, err := s.Repository.GetByID(ctx, ident.Subject)
	if err == nil {
		return resolved(p, false), nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return profile.ResolvedProfile{}, fmt.Errorf("%w: %v", profile.ErrProfileLookupFailed, err)
	}

	// Rows provisioned before the subject scheme matched are keyed by email.
	p, err = s.Repository.GetByEmail(ctx, ident.Email)
	if err == nil {
		return resolved(p, false), nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return profile.ResolvedProfile{}, fmt.Errorf("%w: %v", profile.ErrProfileLookupFailed, err)
	}

	select {
	case <-time.After(s.provisionRetryDelay):
	case <-ctx.Done():
		return profile.ResolvedProfile{}, ctx.Err()
	}

	p, err = s.Repository.GetByID(ctx, ident.Subject)
	if err == nil {
		return resolved(p, false), nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return profile.ResolvedProfile{}, fmt.Errorf("%w: %v", profile.ErrProfileLookupFailed, err)
	}

	slog.Info("Provisioning profile on first sign-in", "subject", ident.Subject, "email", ident.Email)

	created, err := s.Repository.Create(ctx, profile.Profile{
		ID:             ident.Subject,
		Email:          ident.Email,
		DisplayName:    ident.DisplayName,
		GivenName:      ident.GivenName,
		Surname:        ident.Surname,
		JobTitle:       ident.JobTitle,
		Department:     ident.Department,
		OfficeLocation: ident.OfficeLocation,
		Roles:          []string{string(role.RoleEmployee)},
		IsActive:       true,
	})
	if err != nil {
		return profile.ResolvedProfile{}, fmt.Errorf("%w: %v", profile.ErrProfileCreateFailed, err)
	}
	return resolved(created, true), nil
}

// Sync implements profile.Service.
func (s *ProfileServiceImpl) Sync(ctx context.Context, ident profile.Identity, req profile.SyncRequest) (profile.Profile, error) {
	if err := profile.ValidateIdentity(ident); err != nil {
		return profile.Profile{}, err
	}

	p := profile.Profile{
		ID:             ident.Subject,
		Email:          ident.Email,
		DisplayName:    firstNonNil(req.DisplayName, ident.DisplayName),
		GivenName:      firstNonNil(req.GivenName, ident.GivenName),
		Surname:        firstNonNil(req.Surname, ident.Surname),
		JobTitle:       firstNonNil(req.JobTitle, ident.JobTitle),
		Department:     firstNonNil(req.Department, ident.Department),
		OfficeLocation: firstNonNil(req.OfficeLocation, ident.OfficeLocation),
		Roles:          []string{string(role.RoleEmployee)},
		IsActive:       true,
	}

	updated, err := s.Repository.Upsert(ctx, p)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to sync profile: %w", err)
	}

	if err := s.Repository.TouchLastSeen(ctx, updated.ID); err != nil {
		slog.Warn("Failed to touch last_seen", "subject", updated.ID, "error", err)
	}
	return updated, nil
}

// Get implements profile.Service.
func (s *ProfileServiceImpl) Get(ctx context.Context, id string) (profile.Profile, error) {
	return s.Repository.GetByID(ctx, id)
}

func resolved(p profile.Profile, created bool) profile.ResolvedProfile {
	effective := p.EffectiveRole()
	return profile.ResolvedProfile{
		Profile:       p,
		EffectiveRole: effective,
		Destination:   role.RouteFor(effective),
		Created:       created,
	}
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
