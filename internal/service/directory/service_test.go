package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/leaveport/leaveport-backend-go/internal/domain/directory"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	admins     map[string]bool
	profiles   map[string]profile.Profile
	deleteErr  error
	deleted    []string
	roleOps    []string
	listCalled bool
}

func (f *fakeProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}
func (f *fakeProfileRepo) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}
func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}
func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}
func (f *fakeProfileRepo) List(ctx context.Context, excludeID string) ([]profile.Profile, error) {
	f.listCalled = true
	out := make([]profile.Profile, 0)
	for id, p := range f.profiles {
		if id != excludeID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProfileRepo) AddRole(ctx context.Context, id, role string) error {
	f.roleOps = append(f.roleOps, "add:"+id+":"+role)
	return nil
}
func (f *fakeProfileRepo) RemoveRole(ctx context.Context, id, role string) error {
	f.roleOps = append(f.roleOps, "remove:"+id+":"+role)
	return nil
}
func (f *fakeProfileRepo) ReplaceRoles(ctx context.Context, id string, roles []string) error {
	if _, ok := f.profiles[id]; !ok {
		return profile.ErrProfileNotFound
	}
	f.roleOps = append(f.roleOps, "replace:"+id)
	return nil
}
func (f *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.profiles, id)
	return nil
}
func (f *fakeProfileRepo) IsAdmin(ctx context.Context, id string) (bool, error) {
	return f.admins[id], nil
}
func (f *fakeProfileRepo) TouchLastSeen(ctx context.Context, id string) error { return nil }

type fakeSessionRepo struct {
	deletedFor []string
	deleteErr  error
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *session.Session) error { return nil }
func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, token string) (*session.Session, error) {
	return nil, session.ErrSessionNotFound
}
func (f *fakeSessionRepo) GetActiveByUserID(ctx context.Context, userID string) (*session.Session, error) {
	return nil, session.ErrSessionNotFound
}
func (f *fakeSessionRepo) Revoke(ctx context.Context, id string) error { return nil }
func (f *fakeSessionRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedFor = append(f.deletedFor, userID)
	return 1, nil
}
func (f *fakeSessionRepo) UpdateProviderToken(ctx context.Context, id string, token string, scopes []string) error {
	return nil
}
func (f *fakeSessionRepo) MarkConsentRequested(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func setup() (*fakeProfileRepo, *fakeSessionRepo, directory.Service) {
	profiles := &fakeProfileRepo{
		admins: map[string]bool{"admin-1": true},
		profiles: map[string]profile.Profile{
			"admin-1": {ID: "admin-1", Roles: []string{"admin"}},
			"emp-1":   {ID: "emp-1", Roles: []string{"employee"}},
		},
	}
	sessions := &fakeSessionRepo{}
	return profiles, sessions, NewDirectoryService(profiles, sessions)
}

func TestAdminRecheck(t *testing.T) {
	ctx := context.Background()
	profiles, _, svc := setup()

	t.Run("non-admin caller is rejected on every action", func(t *testing.T) {
		_, err := svc.List(ctx, "emp-1")
		assert.ErrorIs(t, err, directory.ErrAdminPrivilegeRequired)

		assert.ErrorIs(t, svc.Delete(ctx, "emp-1", "admin-1"), directory.ErrAdminPrivilegeRequired)
		assert.ErrorIs(t, svc.AddRole(ctx, "emp-1", "emp-1", "admin"), directory.ErrAdminPrivilegeRequired)
		assert.ErrorIs(t, svc.RemoveRole(ctx, "emp-1", "admin-1", "admin"), directory.ErrAdminPrivilegeRequired)
		assert.ErrorIs(t, svc.ReplaceRoles(ctx, "emp-1", "emp-1", []string{"admin"}), directory.ErrAdminPrivilegeRequired)

		assert.Empty(t, profiles.roleOps, "no mutation got through")
		assert.Empty(t, profiles.deleted)
	})

	t.Run("admin caller passes", func(t *testing.T) {
		list, err := svc.List(ctx, "admin-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "emp-1", list[0].ID, "caller excluded from listing")
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("self-delete is refused before any mutation", func(t *testing.T) {
		profiles, sessions, svc := setup()
		err := svc.Delete(ctx, "admin-1", "admin-1")
		assert.ErrorIs(t, err, directory.ErrSelfDelete)
		assert.Empty(t, sessions.deletedFor)
		assert.Empty(t, profiles.deleted)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, _, svc := setup()
		err := svc.Delete(ctx, "admin-1", "ghost")
		assert.ErrorIs(t, err, directory.ErrTargetNotFound)
	})

	t.Run("removes sessions then directory row", func(t *testing.T) {
		profiles, sessions, svc := setup()
		require.NoError(t, svc.Delete(ctx, "admin-1", "emp-1"))
		assert.Equal(t, []string{"emp-1"}, sessions.deletedFor)
		assert.Equal(t, []string{"emp-1"}, profiles.deleted)
	})

	t.Run("directory failure after session delete reports partial state", func(t *testing.T) {
		profiles, sessions, svc := setup()
		profiles.deleteErr = errors.New("fk violation")

		err := svc.Delete(ctx, "admin-1", "emp-1")
		assert.ErrorIs(t, err, directory.ErrPartialDelete)
		assert.Equal(t, []string{"emp-1"}, sessions.deletedFor, "first store already mutated")
	})

	t.Run("session delete failure stops before the directory row", func(t *testing.T) {
		profiles, sessions, svc := setup()
		sessions.deleteErr = errors.New("db down")

		err := svc.Delete(ctx, "admin-1", "emp-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, directory.ErrPartialDelete)
		assert.Empty(t, profiles.deleted)
	})
}

func TestRoleActions(t *testing.T) {
	ctx := context.Background()
	profiles, _, svc := setup()

	require.NoError(t, svc.AddRole(ctx, "admin-1", "emp-1", "cx"))
	require.NoError(t, svc.RemoveRole(ctx, "admin-1", "emp-1", "cx"))
	require.NoError(t, svc.ReplaceRoles(ctx, "admin-1", "emp-1", []string{"sul", "employee"}))

	assert.Equal(t, []string{"add:emp-1:cx", "remove:emp-1:cx", "replace:emp-1"}, profiles.roleOps)

	t.Run("replace on unknown target", func(t *testing.T) {
		err := svc.ReplaceRoles(ctx, "admin-1", "ghost", []string{"employee"})
		assert.ErrorIs(t, err, directory.ErrTargetNotFound)
	})
}
