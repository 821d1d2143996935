package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

// CandidateQuery narrows the raw discovery pool at the store. Age, distance
// and mode gating are applied by the discovery usecase afterwards.
type CandidateQuery struct {
	ExcludeUserID uuid.UUID
	Genders       []domain.Gender
	Intentions    []domain.Intention
	Limit         int
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	UpdateLocation(ctx context.Context, id uuid.UUID, enabled bool, lat, lng *float64) error
	Delete(ctx context.Context, id uuid.UUID) error
	SearchCandidates(ctx context.Context, q CandidateQuery) ([]*domain.Profile, error)
}
