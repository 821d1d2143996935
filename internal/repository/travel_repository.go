package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type TravelModeRepository interface {
	// Upsert activates travel mode as a single atomic write keyed on
	// user_id, superseding any previous destination.
	Upsert(ctx context.Context, mode *domain.TravelMode) error
	// GetActive returns the active travel mode or domain.ErrTravelModeNotFound.
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.TravelMode, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
