package travel

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

type fakeTravelRepo struct {
	modes map[uuid.UUID]*domain.TravelMode
}

func newFakeTravelRepo() *fakeTravelRepo {
	return &fakeTravelRepo{modes: make(map[uuid.UUID]*domain.TravelMode)}
}

func (f *fakeTravelRepo) Upsert(_ context.Context, mode *domain.TravelMode) error {
	if mode.ID == uuid.Nil {
		mode.ID = uuid.New()
	}
	mode.CreatedAt = time.Now()
	copied := *mode
	f.modes[mode.UserID] = &copied
	return nil
}

func (f *fakeTravelRepo) GetActive(_ context.Context, userID uuid.UUID) (*domain.TravelMode, error) {
	mode, ok := f.modes[userID]
	if !ok || !mode.IsActive {
		return nil, domain.ErrTravelModeNotFound
	}
	copied := *mode
	return &copied, nil
}

func (f *fakeTravelRepo) Deactivate(_ context.Context, userID uuid.UUID) error {
	mode, ok := f.modes[userID]
	if !ok || !mode.IsActive {
		return domain.ErrTravelModeNotFound
	}
	mode.IsActive = false
	return nil
}

type profileStore struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *profileStore) Create(_ context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *profileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *profileStore) Update(context.Context, *domain.Profile) error { return nil }
func (f *profileStore) UpdateLocation(context.Context, uuid.UUID, bool, *float64, *float64) error {
	return nil
}
func (f *profileStore) Delete(context.Context, uuid.UUID) error { return nil }
func (f *profileStore) SearchCandidates(context.Context, repository.CandidateQuery) ([]*domain.Profile, error) {
	return nil, nil
}

type fakePlans struct {
	plan domain.Plan
}

func (f *fakePlans) Plan(context.Context, uuid.UUID) (domain.Plan, error) {
	return f.plan, nil
}

func (f *fakePlans) Features(context.Context, uuid.UUID) (domain.PlanFeatures, error) {
	return domain.PlanCatalog[f.plan], nil
}

type fakeCities struct {
	results []domain.TravelDestination
}

func (f *fakeCities) SearchCities(context.Context, string) ([]domain.TravelDestination, error) {
	return f.results, nil
}

func ptr(v float64) *float64 { return &v }

func newUseCase(plan domain.Plan) (*UseCase, *fakeTravelRepo, *profileStore) {
	travelRepo := newFakeTravelRepo()
	profiles := &profileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
	uc := NewUseCase(travelRepo, profiles, &fakePlans{plan: plan}, &fakeCities{}, slog.Default())
	return uc, travelRepo, profiles
}

var paris = domain.TravelDestination{City: "Paris", Country: "France", Latitude: 48.8566, Longitude: 2.3522}

func TestActivate_RequiresPremium(t *testing.T) {
	for _, plan := range []domain.Plan{domain.PlanFree, domain.PlanPlus} {
		uc, repo, _ := newUseCase(plan)
		userID := uuid.New()

		_, err := uc.Activate(context.Background(), userID, ActivateRequest{Destination: paris})
		require.ErrorIs(t, err, domain.ErrPermissionDenied)
		require.Empty(t, repo.modes)
	}
}

func TestActivate_PremiumSucceedsAndSupersedes(t *testing.T) {
	uc, repo, _ := newUseCase(domain.PlanPremium)
	userID := uuid.New()

	first, err := uc.Activate(context.Background(), userID, ActivateRequest{Destination: paris})
	require.NoError(t, err)
	require.Equal(t, "Paris", first.City)

	lyon := domain.TravelDestination{City: "Lyon", Country: "France", Latitude: 45.7640, Longitude: 4.8357}
	second, err := uc.Activate(context.Background(), userID, ActivateRequest{Destination: lyon})
	require.NoError(t, err)
	require.Equal(t, "Lyon", second.City)

	// Exactly one row per user, holding the new destination.
	require.Len(t, repo.modes, 1)
	require.Equal(t, "Lyon", repo.modes[userID].City)
}

func TestResolveLocation_TravelOverride(t *testing.T) {
	uc, _, profiles := newUseCase(domain.PlanPremium)
	userID := uuid.New()
	profiles.profiles[userID] = &domain.Profile{
		ID:              userID,
		LocationEnabled: true,
		Latitude:        ptr(40.4168),
		Longitude:       ptr(-3.7038),
	}

	_, err := uc.Activate(context.Background(), userID, ActivateRequest{Destination: paris})
	require.NoError(t, err)

	origin, err := uc.ResolveLocation(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, origin.IsTravel)
	require.Equal(t, paris.Latitude, *origin.Latitude)
	require.Equal(t, "Paris", origin.Label)
}

func TestResolveLocation_FallsBackToGPS(t *testing.T) {
	uc, _, profiles := newUseCase(domain.PlanPremium)
	userID := uuid.New()
	profiles.profiles[userID] = &domain.Profile{
		ID:              userID,
		LocationEnabled: true,
		Latitude:        ptr(40.4168),
		Longitude:       ptr(-3.7038),
	}

	origin, err := uc.ResolveLocation(context.Background(), userID)
	require.NoError(t, err)
	require.False(t, origin.IsTravel)
	require.Equal(t, 40.4168, *origin.Latitude)
}

func TestResolveLocation_LapsedTierIgnoresTravelRow(t *testing.T) {
	uc, repo, profiles := newUseCase(domain.PlanFree)
	userID := uuid.New()
	profiles.profiles[userID] = &domain.Profile{
		ID:              userID,
		LocationEnabled: true,
		Latitude:        ptr(40.4168),
		Longitude:       ptr(-3.7038),
	}
	// Row left behind from a subscription that has since lapsed.
	repo.modes[userID] = &domain.TravelMode{
		UserID: userID, City: "Paris", Latitude: paris.Latitude, Longitude: paris.Longitude, IsActive: true,
	}

	origin, err := uc.ResolveLocation(context.Background(), userID)
	require.NoError(t, err)
	require.False(t, origin.IsTravel)
	require.Equal(t, 40.4168, *origin.Latitude)
}

func TestResolveLocation_NoLocationAtAll(t *testing.T) {
	uc, _, profiles := newUseCase(domain.PlanFree)
	userID := uuid.New()
	profiles.profiles[userID] = &domain.Profile{ID: userID, LocationEnabled: false}

	origin, err := uc.ResolveLocation(context.Background(), userID)
	require.NoError(t, err)
	require.False(t, origin.HasCoordinates())
}

func TestDeactivate(t *testing.T) {
	uc, _, _ := newUseCase(domain.PlanPremium)
	userID := uuid.New()

	_, err := uc.Activate(context.Background(), userID, ActivateRequest{Destination: paris})
	require.NoError(t, err)
	require.NoError(t, uc.Deactivate(context.Background(), userID))

	_, err = uc.Active(context.Background(), userID)
	require.ErrorIs(t, err, domain.ErrTravelModeNotFound)

	require.ErrorIs(t, uc.Deactivate(context.Background(), userID), domain.ErrTravelModeNotFound)
}
