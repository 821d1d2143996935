package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blocks (id, blocker_id, blocked_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (blocker_id, blocked_id) DO NOTHING
	`, uuid.New(), blockerID, blockedID)
	if err != nil {
		return err
	}

	// A block invalidates any existing connection between the pair
	// immediately, conversation included.
	user1, user2 := domain.CanonicalPair(blockerID, blockedID)
	_, err = tx.ExecContext(ctx, `
		DELETE FROM conversations
		WHERE connection_id IN (
			SELECT id FROM connections WHERE user1_id = $1 AND user2_id = $2
		)
	`, user1, user2)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM connections WHERE user1_id = $1 AND user2_id = $2`,
		user1, user2,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *blockRepository) BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT blocked_id FROM blocks WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM blocks WHERE blocked_id = $1
	`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *blockRepository) Exists(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blocks
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	err := r.db.GetContext(ctx, &exists, query, a, b)
	return exists, err
}
