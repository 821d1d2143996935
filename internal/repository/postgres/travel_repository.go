package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type travelRepository struct {
	db *sqlx.DB
}

func NewTravelRepository(db *sqlx.DB) repository.TravelModeRepository {
	return &travelRepository{db: db}
}

func (r *travelRepository) Upsert(ctx context.Context, mode *domain.TravelMode) error {
	if mode.ID == uuid.Nil {
		mode.ID = uuid.New()
	}
	query := `
		INSERT INTO travel_modes (id, user_id, city, country, latitude, longitude, arrival_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		ON CONFLICT (user_id) DO UPDATE
		SET city = EXCLUDED.city,
		    country = EXCLUDED.country,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    arrival_date = EXCLUDED.arrival_date,
		    is_active = true
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		mode.ID, mode.UserID, mode.City, mode.Country,
		mode.Latitude, mode.Longitude, mode.ArrivalDate,
	).Scan(&mode.ID, &mode.CreatedAt)
}

func (r *travelRepository) GetActive(ctx context.Context, userID uuid.UUID) (*domain.TravelMode, error) {
	var mode domain.TravelMode
	query := `
		SELECT id, user_id, city, country, latitude, longitude, arrival_date, is_active, created_at
		FROM travel_modes
		WHERE user_id = $1 AND is_active = true
	`
	err := r.db.GetContext(ctx, &mode, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTravelModeNotFound
		}
		return nil, err
	}
	return &mode, nil
}

func (r *travelRepository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE travel_modes SET is_active = false WHERE user_id = $1 AND is_active = true`,
		userID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTravelModeNotFound
	}
	return nil
}
