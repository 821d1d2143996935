package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, display_name, birth_date, gender, intention, bio, interests, photos,
	location_enabled, latitude, longitude, location_updated_at,
	search_radius_km, min_age_filter, max_age_filter, gender_filter,
	is_onboarding_complete, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.DisplayName, &p.BirthDate, &p.Gender, &p.Intention, &p.Bio,
		pq.Array(&p.Interests), pq.Array(&p.Photos),
		&p.LocationEnabled, &p.Latitude, &p.Longitude, &p.LocationUpdatedAt,
		&p.SearchRadiusKm, &p.MinAgeFilter, &p.MaxAgeFilter, pq.Array(&p.GenderFilter),
		&p.IsOnboardingComplete, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	query := `
		INSERT INTO profiles (
			id, display_name, birth_date, gender, intention, bio, interests, photos,
			location_enabled, latitude, longitude, location_updated_at,
			search_radius_km, min_age_filter, max_age_filter, gender_filter,
			is_onboarding_complete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.DisplayName, profile.BirthDate, profile.Gender,
		profile.Intention, profile.Bio, pq.Array(profile.Interests), pq.Array(profile.Photos),
		profile.LocationEnabled, profile.Latitude, profile.Longitude, profile.LocationUpdatedAt,
		profile.SearchRadiusKm, profile.MinAgeFilter, profile.MaxAgeFilter, pq.Array(profile.GenderFilter),
		profile.IsOnboardingComplete,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileExists
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, bio = $2, intention = $3, interests = $4, photos = $5,
		    search_radius_km = $6, min_age_filter = $7, max_age_filter = $8,
		    gender_filter = $9, is_onboarding_complete = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.Intention,
		pq.Array(profile.Interests), pq.Array(profile.Photos),
		profile.SearchRadiusKm, profile.MinAgeFilter, profile.MaxAgeFilter,
		pq.Array(profile.GenderFilter), profile.IsOnboardingComplete,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) UpdateLocation(ctx context.Context, id uuid.UUID, enabled bool, lat, lng *float64) error {
	query := `
		UPDATE profiles
		SET location_enabled = $1, latitude = $2, longitude = $3,
		    location_updated_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, enabled, lat, lng, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SearchCandidates(ctx context.Context, q repository.CandidateQuery) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id <> $1 AND is_onboarding_complete = true`
	args := []interface{}{q.ExcludeUserID}
	argCount := 2

	if len(q.Genders) > 0 {
		genders := make([]string, len(q.Genders))
		for i, g := range q.Genders {
			genders[i] = string(g)
		}
		query += fmt.Sprintf(" AND gender = ANY($%d)", argCount)
		args = append(args, pq.Array(genders))
		argCount++
	}

	if len(q.Intentions) > 0 {
		intentions := make([]string, len(q.Intentions))
		for i, in := range q.Intentions {
			intentions[i] = string(in)
		}
		query += fmt.Sprintf(" AND intention = ANY($%d)", argCount)
		args = append(args, pq.Array(intentions))
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount)
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
