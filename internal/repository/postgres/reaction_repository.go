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

type reactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) repository.ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) CreateIfAbsent(ctx context.Context, reaction *domain.Reaction) (bool, error) {
	if reaction.ID == uuid.Nil {
		reaction.ID = uuid.New()
	}
	query := `
		INSERT INTO reactions (id, from_user_id, to_user_id, type, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (from_user_id, to_user_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		reaction.ID, reaction.FromUserID, reaction.ToUserID, reaction.Type, reaction.Status,
	).Scan(&reaction.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// A reaction for this pair already exists; duplicate submission.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *reactionRepository) GetPendingBetween(ctx context.Context, fromID, toID uuid.UUID) (*domain.Reaction, error) {
	var reaction domain.Reaction
	query := `
		SELECT id, from_user_id, to_user_id, type, status, created_at, responded_at
		FROM reactions
		WHERE from_user_id = $1 AND to_user_id = $2 AND status = $3 AND type <> $4
	`
	err := r.db.GetContext(ctx, &reaction, query, fromID, toID, domain.ReactionPending, domain.ReactionPass)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReactionNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Accept(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reactions
		SET status = $1, responded_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3
	`
	result, err := r.db.ExecContext(ctx, query, domain.ReactionAccepted, id, domain.ReactionPending)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReactionNotFound
	}
	return nil
}

func (r *reactionRepository) OutgoingTargetIDs(ctx context.Context, fromID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT to_user_id FROM reactions WHERE from_user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, fromID)
	return ids, err
}

func (r *reactionRepository) LikesReceived(ctx context.Context, toID uuid.UUID, limit, offset int) ([]*domain.Reaction, error) {
	var reactions []*domain.Reaction
	query := `
		SELECT id, from_user_id, to_user_id, type, status, created_at, responded_at
		FROM reactions
		WHERE to_user_id = $1 AND status = $2 AND type <> $3
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	err := r.db.SelectContext(ctx, &reactions, query, toID, domain.ReactionPending, domain.ReactionPass, limit, offset)
	return reactions, err
}
