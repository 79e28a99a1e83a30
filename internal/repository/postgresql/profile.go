package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/profile"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.Repository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `id, email, display_name, given_name, surname, job_title,
			  department, office_location, roles, is_active, password_hash,
			  last_seen, created_at, updated_at`

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.GivenName,
		&p.Surname,
		&p.JobTitle,
		&p.Department,
		&p.OfficeLocation,
		&p.Roles,
		&p.IsActive,
		&p.PasswordHash,
		&p.LastSeen,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements profile.Repository.
func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (
			id, email, display_name, given_name, surname, job_title,
			department, office_location, roles, is_active, password_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + profileColumns

	created, err := scanProfile(q.QueryRow(ctx, query,
		p.ID,
		p.Email,
		p.DisplayName,
		p.GivenName,
		p.Surname,
		p.JobTitle,
		p.Department,
		p.OfficeLocation,
		p.Roles,
		p.IsActive,
		p.PasswordHash,
	))
	if err != nil {
		return profile.Profile{}, err
	}
	return created, nil
}

// Upsert implements profile.Repository. Roles are deliberately excluded from
// the update set so a profile sync never clobbers role assignments.
func (r *profileRepositoryImpl) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (
			id, email, display_name, given_name, surname, job_title,
			department, office_location, roles, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = COALESCE(EXCLUDED.display_name, profiles.display_name),
			given_name = COALESCE(EXCLUDED.given_name, profiles.given_name),
			surname = COALESCE(EXCLUDED.surname, profiles.surname),
			job_title = COALESCE(EXCLUDED.job_title, profiles.job_title),
			department = COALESCE(EXCLUDED.department, profiles.department),
			office_location = COALESCE(EXCLUDED.office_location, profiles.office_location),
			updated_at = NOW()
		RETURNING ` + profileColumns

	updated, err := scanProfile(q.QueryRow(ctx, query,
		p.ID,
		p.Email,
		p.DisplayName,
		p.GivenName,
		p.Surname,
		p.JobTitle,
		p.Department,
		p.OfficeLocation,
		p.Roles,
		p.IsActive,
	))
	if err != nil {
		return profile.Profile{}, err
	}
	return updated, nil
}

// GetByID implements profile.Repository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

// GetByEmail implements profile.Repository.
func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1)`

	p, err := scanProfile(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

// List implements profile.Repository.
func (r *profileRepositoryImpl) List(ctx context.Context, excludeID string) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id <> $1
		ORDER BY email ASC`

	rows, err := q.Query(ctx, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// AddRole implements profile.Repository. Appending an already-held role is a
// no-op.
func (r *profileRepositoryImpl) AddRole(ctx context.Context, id, role string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET roles = array_append(roles, $1), updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(roles))`

	_, err := q.Exec(ctx, query, role, id)
	return err
}

// RemoveRole implements profile.Repository.
func (r *profileRepositoryImpl) RemoveRole(ctx context.Context, id, role string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET roles = array_remove(roles, $1), updated_at = NOW()
		WHERE id = $2`

	_, err := q.Exec(ctx, query, role, id)
	return err
}

// ReplaceRoles implements profile.Repository.
func (r *profileRepositoryImpl) ReplaceRoles(ctx context.Context, id string, roles []string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET roles = $1, updated_at = NOW()
		WHERE id = $2`

	tag, err := q.Exec(ctx, query, roles, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

// Delete implements profile.Repository.
func (r *profileRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

// IsAdmin implements profile.Repository.
func (r *profileRepositoryImpl) IsAdmin(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var isAdmin bool
	err := q.QueryRow(ctx,
		`SELECT 'admin' = ANY(roles) FROM profiles WHERE id = $1`, id,
	).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return isAdmin, nil
}

// TouchLastSeen implements profile.Repository.
func (r *profileRepositoryImpl) TouchLastSeen(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE profiles SET last_seen = NOW() WHERE id = $1`, id)
	return err
}
