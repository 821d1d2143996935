// Package travel owns the single authoritative location-override rule: the
// effective discovery origin is the travel destination when a tier-permitted
// travel mode is active, the profile's GPS position otherwise.
package travel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

// CitySearcher resolves free-text city queries to destination candidates.
// Consumed as an opaque lookup; the geocoding provider lives behind it.
type CitySearcher interface {
	SearchCities(ctx context.Context, query string) ([]domain.TravelDestination, error)
}

type ActivateRequest struct {
	Destination domain.TravelDestination
	ArrivalDate *time.Time
}

type UseCase struct {
	travelRepo  repository.TravelModeRepository
	profileRepo repository.ProfileRepository
	plans       repository.SubscriptionService
	cities      CitySearcher
	log         *slog.Logger
}

func NewUseCase(
	travelRepo repository.TravelModeRepository,
	profileRepo repository.ProfileRepository,
	plans repository.SubscriptionService,
	cities CitySearcher,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		travelRepo:  travelRepo,
		profileRepo: profileRepo,
		plans:       plans,
		cities:      cities,
		log:         log,
	}
}

// Activate turns travel mode on for the user, superseding any previous
// destination. Plans without the entitlement fail with ErrPermissionDenied
// rather than silently activating.
func (uc *UseCase) Activate(ctx context.Context, userID uuid.UUID, req ActivateRequest) (*domain.TravelMode, error) {
	features, err := uc.plans.Features(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("activate travel mode: %w", err)
	}
	if !features.TravelModeEnabled {
		return nil, domain.ErrPermissionDenied
	}

	mode := &domain.TravelMode{
		UserID:      userID,
		City:        req.Destination.City,
		Country:     req.Destination.Country,
		Latitude:    req.Destination.Latitude,
		Longitude:   req.Destination.Longitude,
		ArrivalDate: req.ArrivalDate,
		IsActive:    true,
	}
	if err := uc.travelRepo.Upsert(ctx, mode); err != nil {
		return nil, fmt.Errorf("activate travel mode: %w", err)
	}

	uc.log.Info("travel mode activated",
		slog.String("user_id", userID.String()),
		slog.String("city", mode.City))
	return mode, nil
}

func (uc *UseCase) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := uc.travelRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	uc.log.Info("travel mode deactivated", slog.String("user_id", userID.String()))
	return nil
}

func (uc *UseCase) Active(ctx context.Context, userID uuid.UUID) (*domain.TravelMode, error) {
	return uc.travelRepo.GetActive(ctx, userID)
}

// ResolveLocation computes the effective coordinates for a discovery query.
// Evaluated fresh on every call: mode and travel state can change between
// calls, so the result is never cached.
func (uc *UseCase) ResolveLocation(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryOrigin, error) {
	mode, err := uc.travelRepo.GetActive(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrTravelModeNotFound) {
		return nil, fmt.Errorf("resolve location: %w", err)
	}
	if mode != nil {
		features, err := uc.plans.Features(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("resolve location: %w", err)
		}
		// A lapsed subscription leaves the row behind but the override no
		// longer applies.
		if features.TravelModeEnabled {
			lat, lng := mode.Latitude, mode.Longitude
			return &domain.DiscoveryOrigin{
				Latitude:  &lat,
				Longitude: &lng,
				Label:     mode.City,
				IsTravel:  true,
			}, nil
		}
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve location: %w", err)
	}
	if !profile.HasLocation() {
		// Location unknown is not an error: discovery degrades to
		// distance-less results.
		return &domain.DiscoveryOrigin{}, nil
	}
	return &domain.DiscoveryOrigin{
		Latitude:  profile.Latitude,
		Longitude: profile.Longitude,
	}, nil
}

// SearchDestinations looks up travel destination candidates for a free-text
// city query.
func (uc *UseCase) SearchDestinations(ctx context.Context, query string) ([]domain.TravelDestination, error) {
	destinations, err := uc.cities.SearchCities(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search destinations: %w", err)
	}
	return destinations, nil
}
