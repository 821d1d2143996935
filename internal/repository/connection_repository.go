package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type ConnectionRepository interface {
	// CreateWithConversation inserts the connection and its conversation in
	// one transaction. The canonical (user1_id, user2_id) pair carries a
	// unique constraint: when another writer got there first the existing
	// row is returned and created is false. First writer wins; the second
	// is a no-op that still succeeds.
	CreateWithConversation(ctx context.Context, conn *domain.Connection) (created bool, err error)
	GetByUsers(ctx context.Context, a, b uuid.UUID) (*domain.Connection, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Connection, error)
	// DeleteByUsers removes the connection and its conversation between a
	// pair, if any. Deleting a missing pair is not an error.
	DeleteByUsers(ctx context.Context, a, b uuid.UUID) error
}
