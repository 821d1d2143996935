package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type AvailabilityModeRepository interface {
	// Upsert activates a mode as a single atomic write keyed on user_id.
	// An existing mode is superseded, never stacked; there is no window
	// with zero or two active rows. The activation is also appended to the
	// activation history for weekly-limit accounting.
	Upsert(ctx context.Context, mode *domain.AvailabilityMode) error
	// GetActive returns the user's mode when now < expires_at, otherwise
	// domain.ErrModeNotFound.
	GetActive(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.AvailabilityMode, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
	// ActiveUserIDs lists users holding an active mode of the given type.
	ActiveUserIDs(ctx context.Context, modeType domain.AvailabilityModeType, now time.Time) ([]uuid.UUID, error)
	CountActivationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}
