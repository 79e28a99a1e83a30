package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
)

// DirectoryServiceImpl executes privileged directory actions. The admin check
// runs against the directory store on every call; the bearer token's role
// claim only ever gated navigation.
type DirectoryServiceImpl struct {
	profileRepo profile.Repository
	sessionRepo session.Repository
}

func NewDirectoryService(profileRepo profile.Repository, sessionRepo session.Repository) directory.Service {
	return &DirectoryServiceImpl{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *DirectoryServiceImpl) requireAdmin(ctx context.Context, callerID string) error {
	isAdmin, err := s.profileRepo.IsAdmin(ctx, callerID)
	if err != nil {
		return fmt.Errorf("failed to verify admin status: %w", err)
	}
	if !isAdmin {
		return directory.ErrAdminPrivilegeRequired
	}
	return nil
}

// List implements directory.Service. The caller's own row is excluded so the
// directory screen cannot offer self-targeting actions.
func (s *DirectoryServiceImpl) List(ctx context.Context, callerID string) ([]profile.Profile, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.profileRepo.List(ctx, callerID)
}

// Delete implements directory.Service. Two stores are touched in order:
// sessions first, then the directory row. A failure after the first delete
// leaves a half-removed account and is reported as such rather than papered
// over.
func (s *DirectoryServiceImpl) Delete(ctx context.Context, callerID, targetID string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if callerID == targetID {
		return directory.ErrSelfDelete
	}

	if _, err := s.profileRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return directory.ErrTargetNotFound
		}
		return fmt.Errorf("failed to look up target: %w", err)
	}

	removed, err := s.sessionRepo.DeleteByUserID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	slog.Info("Deleted sessions for removed user", "target", targetID, "count", removed)

	if err := s.profileRepo.Delete(ctx, targetID); err != nil {
		slog.Error("Directory row delete failed after session delete", "target", targetID, "error", err)
		return fmt.Errorf("%w: %v", directory.ErrPartialDelete, err)
	}
	return nil
}

// AddRole implements directory.Service.
func (s *DirectoryServiceImpl) AddRole(ctx context.Context, callerID, targetID, role string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.profileRepo.AddRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

// RemoveRole implements directory.Service.
func (s *DirectoryServiceImpl) RemoveRole(ctx context.Context, callerID, targetID, role string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if err := s.profileRepo.RemoveRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return nil
}

// ReplaceRoles implements directory.Service.
func (s *DirectoryServiceImpl) ReplaceRoles(ctx context.Context, callerID, targetID string, roles []string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if roles == nil {
		roles = []string{}
	}
	if err := s.profileRepo.ReplaceRoles(ctx, targetID, roles); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return directory.ErrTargetNotFound
		}
		return fmt.Errorf("failed to replace roles: %w", err)
	}
	return nil
}
