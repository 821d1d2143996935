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

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) CreateWithConversation(ctx context.Context, conn *domain.Connection) (bool, error) {
	user1, user2 := domain.CanonicalPair(conn.User1ID, conn.User2ID)
	conn.User1ID = user1
	conn.User2ID = user2
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO connections (id, user1_id, user2_id, reaction_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query, conn.ID, user1, user2, conn.ReactionID).Scan(&conn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// First writer won; load the row it created so the caller still
		// gets the connection back.
		existing := `
			SELECT id, user1_id, user2_id, reaction_id, created_at
			FROM connections WHERE user1_id = $1 AND user2_id = $2
		`
		if err := tx.QueryRowContext(ctx, existing, user1, user2).
			Scan(&conn.ID, &conn.User1ID, &conn.User2ID, &conn.ReactionID, &conn.CreatedAt); err != nil {
			return false, fmt.Errorf("load existing connection: %w", err)
		}
		return false, tx.Commit()
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversations (id, connection_id) VALUES ($1, $2)`,
		uuid.New(), conn.ID,
	)
	if err != nil {
		return false, fmt.Errorf("create conversation: %w", err)
	}

	return true, tx.Commit()
}

func (r *connectionRepository) GetByUsers(ctx context.Context, a, b uuid.UUID) (*domain.Connection, error) {
	user1, user2 := domain.CanonicalPair(a, b)

	var conn domain.Connection
	query := `
		SELECT id, user1_id, user2_id, reaction_id, created_at
		FROM connections WHERE user1_id = $1 AND user2_id = $2
	`
	err := r.db.GetContext(ctx, &conn, query, user1, user2)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT id, user1_id, user2_id, reaction_id, created_at
		FROM connections
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &conns, query, userID, limit, offset)
	return conns, err
}

func (r *connectionRepository) DeleteByUsers(ctx context.Context, a, b uuid.UUID) error {
	user1, user2 := domain.CanonicalPair(a, b)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

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
