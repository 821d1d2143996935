package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type limitRepository struct {
	db *sqlx.DB
}

func NewLimitRepository(db *sqlx.DB) repository.DailyLimitRepository {
	return &limitRepository{db: db}
}

func (r *limitRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLimits, error) {
	// ON CONFLICT DO UPDATE with a no-op assignment makes the insert race
	// safe and always returns the row, freshly created or not.
	query := `
		INSERT INTO user_daily_limits (id, user_id, date, likes_used, messages_used, super_likes_used)
		VALUES ($1, $2, $3, 0, 0, 0)
		ON CONFLICT (user_id, date) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, date, likes_used, messages_used, super_likes_used, created_at
	`
	var limits domain.DailyLimits
	err := r.db.QueryRowContext(ctx, query, uuid.New(), userID, date).Scan(
		&limits.ID, &limits.UserID, &limits.Date,
		&limits.LikesUsed, &limits.MessagesUsed, &limits.SuperLikesUsed,
		&limits.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &limits, nil
}

func (r *limitRepository) Increment(ctx context.Context, userID uuid.UUID, date string, action domain.LimitAction) error {
	column, err := counterColumn(action)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE user_daily_limits SET %s = %s + 1 WHERE user_id = $1 AND date = $2`,
		column, column,
	)
	result, err := r.db.ExecContext(ctx, query, userID, date)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func counterColumn(action domain.LimitAction) (string, error) {
	switch action {
	case domain.ActionLike:
		return "likes_used", nil
	case domain.ActionMessage:
		return "messages_used", nil
	case domain.ActionSuperLike:
		return "super_likes_used", nil
	}
	return "", errors.New("unknown limit action")
}
