package repository

import (
	"context"

	"github.com/google/uuid"
)

type BlockRepository interface {
	// Create inserts the block and, in the same transaction, destroys any
	// connection and conversation between the pair.
	Create(ctx context.Context, blockerID, blockedID uuid.UUID) error
	// BlockedIDs returns every user blocked by or blocking the given user.
	// A block excludes both directions from discovery.
	BlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, a, b uuid.UUID) (bool, error)
}
