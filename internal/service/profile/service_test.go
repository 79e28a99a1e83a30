package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/domain/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	byID       map[string]profile.Profile
	byEmail    map[string]profile.Profile
	idErr      error
	emailErr   error
	createErr  error
	created    []profile.Profile
	idCalls    int
	emailCalls int
	// appearAfterIDCalls makes the id lookup start succeeding on the nth
	// call, simulating an async provisioning trigger landing mid-resolve.
	appearAfterIDCalls int
	appearing          *profile.Profile
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	f.idCalls++
	if f.appearing != nil && f.idCalls >= f.appearAfterIDCalls {
		return *f.appearing, nil
	}
	if f.idErr != nil {
		return profile.Profile{}, f.idErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	f.emailCalls++
	if f.emailErr != nil {
		return profile.Profile{}, f.emailErr
	}
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if f.createErr != nil {
		return profile.Profile{}, f.createErr
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (f *fakeProfileRepo) List(ctx context.Context, excludeID string) ([]profile.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) AddRole(ctx context.Context, id, r string) error      { return nil }
func (f *fakeProfileRepo) RemoveRole(ctx context.Context, id, r string) error   { return nil }
func (f *fakeProfileRepo) ReplaceRoles(ctx context.Context, id string, roles []string) error {
	return nil
}
func (f *fakeProfileRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeProfileRepo) IsAdmin(ctx context.Context, id string) (bool, error) {
	return false, nil
}
func (f *fakeProfileRepo) TouchLastSeen(ctx context.Context, id string) error { return nil }

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	ident := profile.Identity{
		Subject:     "sub-123",
		Email:       "dev@example.com",
		DisplayName: strPtr("Dev Example"),
	}

	t.Run("found by id", func(t *testing.T) {
		repo := &fakeProfileRepo{
			byID: map[string]profile.Profile{
				"sub-123": {ID: "sub-123", Email: "dev@example.com", Roles: []string{"admin", "employee"}},
			},
		}
		svc := NewProfileService(repo, time.Millisecond)

		res, err := svc.Resolve(context.Background(), ident)
		require.NoError(t, err)
		assert.Equal(t, role.RoleAdmin, res.EffectiveRole)
		assert.Equal(t, "/admin", res.Destination.InitialRoute)
		assert.False(t, res.Created)
		assert.Zero(t, repo.emailCalls)
	})

	t.Run("falls back to email lookup", func(t *testing.T) {
		repo := &fakeProfileRepo{
			byEmail: map[string]profile.Profile{
				"dev@example.com": {ID: "legacy-id", Email: "dev@example.com", Roles: []string{"pl"}},
			},
		}
		svc := NewProfileService(repo, time.Millisecond)

		res, err := svc.Resolve(context.Background(), ident)
		require.NoError(t, err)
		assert.Equal(t, role.RoleSUL, res.EffectiveRole)
		assert.False(t, res.Created)
		assert.Empty(t, repo.created)
	})

	t.Run("retry catches late provisioning", func(t *testing.T) {
		p := profile.Profile{ID: "sub-123", Email: "dev@example.com", Roles: []string{"cx"}}
		repo := &fakeProfileRepo{
			appearAfterIDCalls: 2,
			appearing:          &p,
		}
		svc := NewProfileService(repo, time.Millisecond)

		res, err := svc.Resolve(context.Background(), ident)
		require.NoError(t, err)
		assert.Equal(t, role.RoleCX, res.EffectiveRole)
		assert.False(t, res.Created)
		assert.Empty(t, repo.created)
	})

	t.Run("creates default employee profile when absent everywhere", func(t *testing.T) {
		repo := &fakeProfileRepo{}
		svc := NewProfileService(repo, time.Millisecond)

		res, err := svc.Resolve(context.Background(), ident)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, role.RoleEmployee, res.EffectiveRole)
		assert.Equal(t, "/dashboard", res.Destination.InitialRoute)
		require.Len(t, repo.created, 1)
		assert.Equal(t, []string{"employee"}, repo.created[0].Roles)
		assert.Equal(t, "sub-123", repo.created[0].ID)
	})

	t.Run("lookup failure aborts instead of provisioning", func(t *testing.T) {
		repo := &fakeProfileRepo{idErr: errors.New("connection refused")}
		svc := NewProfileService(repo, time.Millisecond)

		_, err := svc.Resolve(context.Background(), ident)
		require.Error(t, err)
		assert.ErrorIs(t, err, profile.ErrProfileLookupFailed)
		assert.Empty(t, repo.created)
	})

	t.Run("create failure surfaces", func(t *testing.T) {
		repo := &fakeProfileRepo{createErr: errors.New("unique violation")}
		svc := NewProfileService(repo, time.Millisecond)

		_, err := svc.Resolve(context.Background(), ident)
		require.Error(t, err)
		assert.ErrorIs(t, err, profile.ErrProfileCreateFailed)
	})

	t.Run("rejects identity without subject", func(t *testing.T) {
		repo := &fakeProfileRepo{}
		svc := NewProfileService(repo, time.Millisecond)

		_, err := svc.Resolve(context.Background(), profile.Identity{Email: "dev@example.com"})
		require.Error(t, err)
		assert.Zero(t, repo.idCalls)
	})
}

func TestSync(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(repo, time.Millisecond)

	ident := profile.Identity{
		Subject:     "sub-123",
		Email:       "dev@example.com",
		DisplayName: strPtr("From Token"),
		JobTitle:    strPtr("Engineer"),
	}

	t.Run("request fields win over identity fields", func(t *testing.T) {
		p, err := svc.Sync(context.Background(), ident, profile.SyncRequest{
			DisplayName: strPtr("From Request"),
		})
		require.NoError(t, err)
		assert.Equal(t, "From Request", *p.DisplayName)
		assert.Equal(t, "Engineer", *p.JobTitle)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := svc.Sync(context.Background(), profile.Identity{
			Subject: "sub-123",
			Email:   "not-an-email",
		}, profile.SyncRequest{})
		require.Error(t, err)
	})
}
