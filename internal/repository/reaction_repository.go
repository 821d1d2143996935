package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type ReactionRepository interface {
	// CreateIfAbsent inserts the reaction unless a row for the
	// (from_user_id, to_user_id) pair already exists. Duplicate submissions
	// are idempotent: created reports whether a new row was written.
	CreateIfAbsent(ctx context.Context, reaction *domain.Reaction) (created bool, err error)
	// GetPendingBetween returns the pending, match-capable reaction from
	// fromID to toID, or domain.ErrReactionNotFound.
	GetPendingBetween(ctx context.Context, fromID, toID uuid.UUID) (*domain.Reaction, error)
	Accept(ctx context.Context, id uuid.UUID) error
	// OutgoingTargetIDs lists every user the given user has already reacted
	// to, in any way. Used to suppress re-showing profiles in discovery.
	OutgoingTargetIDs(ctx context.Context, fromID uuid.UUID) ([]uuid.UUID, error)
	LikesReceived(ctx context.Context, toID uuid.UUID, limit, offset int) ([]*domain.Reaction, error)
}
