package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type availabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityModeRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Upsert(ctx context.Context, mode *domain.AvailabilityMode) error {
	if mode.ID == uuid.Nil {
		mode.ID = uuid.New()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Single upsert keyed on user_id: the previous mode is superseded in
	// the same statement, never deleted first.
	query := `
		INSERT INTO availability_modes (id, user_id, mode_type, duration_hours, activated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET mode_type = EXCLUDED.mode_type,
		    duration_hours = EXCLUDED.duration_hours,
		    activated_at = EXCLUDED.activated_at,
		    expires_at = EXCLUDED.expires_at
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		mode.ID, mode.UserID, mode.ModeType, mode.DurationHours,
		mode.ActivatedAt, mode.ExpiresAt,
	).Scan(&mode.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO availability_mode_activations (id, user_id, mode_type, activated_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), mode.UserID, mode.ModeType, mode.ActivatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *availabilityRepository) GetActive(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.AvailabilityMode, error) {
	var mode domain.AvailabilityMode
	query := `
		SELECT id, user_id, mode_type, duration_hours, activated_at, expires_at
		FROM availability_modes
		WHERE user_id = $1 AND expires_at > $2
	`
	err := r.db.GetContext(ctx, &mode, query, userID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrModeNotFound
		}
		return nil, err
	}
	return &mode, nil
}

func (r *availabilityRepository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability_modes WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrModeNotFound
	}
	return nil
}

func (r *availabilityRepository) ActiveUserIDs(ctx context.Context, modeType domain.AvailabilityModeType, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM availability_modes WHERE mode_type = $1 AND expires_at > $2`
	err := r.db.SelectContext(ctx, &ids, query, modeType, now)
	return ids, err
}

func (r *availabilityRepository) CountActivationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM availability_mode_activations WHERE user_id = $1 AND activated_at >= $2`
	err := r.db.GetContext(ctx, &count, query, userID, since)
	return count, err
}
