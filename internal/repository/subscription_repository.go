package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type SubscriptionRepository interface {
	// GetByUserID returns the user's subscription row, or nil when the user
	// has never subscribed (effective plan: free).
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
}

// SubscriptionService resolves a user's plan entitlements. Implementations
// may cache; plan changes must become visible within the cache TTL.
type SubscriptionService interface {
	Plan(ctx context.Context, userID uuid.UUID) (domain.Plan, error)
	Features(ctx context.Context, userID uuid.UUID) (domain.PlanFeatures, error)
}
