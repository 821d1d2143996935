// Package discovery assembles the feed: resolve the viewer's effective
// location, fetch a raw candidate pool, filter it, gate it on availability
// modes, then sort by distance.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/geo"
	"github.com/shyapp/shy-backend/internal/repository"
)

const (
	// MaxPageSize caps a single feed response.
	MaxPageSize = 50

	// poolFetchLimit bounds the raw pool pulled from the store before the
	// in-process filters run.
	poolFetchLimit = 200
)

// LocationResolver yields the effective discovery origin for a viewer. It is
// consulted fresh on every Discover call.
type LocationResolver interface {
	ResolveLocation(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryOrigin, error)
}

// Candidate is one feed entry. DistanceKm is nil when either side lacks
// usable coordinates.
type Candidate struct {
	Profile    *domain.Profile `json:"profile"`
	DistanceKm *float64        `json:"distance_km"`
}

// Feed is the ordered discovery result together with the origin it was
// computed from.
type Feed struct {
	Candidates []Candidate             `json:"candidates"`
	Origin     *domain.DiscoveryOrigin `json:"origin"`
}

type UseCase struct {
	profileRepo  repository.ProfileRepository
	reactionRepo repository.ReactionRepository
	blockRepo    repository.BlockRepository
	modeRepo     repository.AvailabilityModeRepository
	resolver     LocationResolver
	log          *slog.Logger
	now          func() time.Time
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	reactionRepo repository.ReactionRepository,
	blockRepo repository.BlockRepository,
	modeRepo repository.AvailabilityModeRepository,
	resolver LocationResolver,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		profileRepo:  profileRepo,
		reactionRepo: reactionRepo,
		blockRepo:    blockRepo,
		modeRepo:     modeRepo,
		resolver:     resolver,
		log:          log,
		now:          time.Now,
	}
}

// Discover returns the viewer's feed. Read failures degrade to an empty feed
// with the error surfaced, never a partial one.
func (uc *UseCase) Discover(ctx context.Context, viewerID uuid.UUID, filters Filters) (*Feed, error) {
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		return emptyFeed(), fmt.Errorf("discover: %w", err)
	}
	if !viewer.IsOnboardingComplete {
		return emptyFeed(), domain.ErrProfileIncomplete
	}
	filters = uc.applyDefaults(viewer, filters)

	origin, err := uc.resolver.ResolveLocation(ctx, viewerID)
	if err != nil {
		return emptyFeed(), fmt.Errorf("discover: %w", err)
	}

	pool, err := uc.profileRepo.SearchCandidates(ctx, repository.CandidateQuery{
		ExcludeUserID: viewerID,
		Genders:       filters.Genders,
		Intentions:    filters.Intentions,
		Limit:         poolFetchLimit,
	})
	if err != nil {
		return emptyFeed(), fmt.Errorf("discover: %w", err)
	}

	excluded, err := uc.excludedIDs(ctx, viewerID)
	if err != nil {
		return emptyFeed(), fmt.Errorf("discover: %w", err)
	}

	now := uc.now()
	elig := newEligibility(filters, excluded, now)
	eligible := pool[:0]
	for _, p := range pool {
		if elig.admits(p) {
			eligible = append(eligible, p)
		}
	}

	eligible, err = uc.applyModeGate(ctx, viewerID, eligible, now)
	if err != nil {
		return emptyFeed(), fmt.Errorf("discover: %w", err)
	}

	candidates := uc.rank(origin, eligible, filters.SearchRadiusKm)
	if len(candidates) > MaxPageSize {
		candidates = candidates[:MaxPageSize]
	}

	uc.log.Debug("discovery feed built",
		slog.String("viewer_id", viewerID.String()),
		slog.Int("pool", len(pool)),
		slog.Int("returned", len(candidates)),
		slog.Bool("travel", origin.IsTravel))
	return &Feed{Candidates: candidates, Origin: origin}, nil
}

// applyDefaults fills unset filter fields from the viewer's stored
// preferences, then snaps the radius onto the selectable ladder.
func (uc *UseCase) applyDefaults(viewer *domain.Profile, f Filters) Filters {
	if f.MinAge == 0 {
		f.MinAge = viewer.MinAgeFilter
	}
	if f.MaxAge == 0 {
		f.MaxAge = viewer.MaxAgeFilter
	}
	if f.MinAge < domain.MinAge {
		f.MinAge = domain.MinAge
	}
	if f.MaxAge == 0 {
		f.MaxAge = domain.MaxAge
	}
	if len(f.Genders) == 0 {
		for _, g := range viewer.GenderFilter {
			f.Genders = append(f.Genders, domain.Gender(g))
		}
	}
	if f.SearchRadiusKm == 0 {
		f.SearchRadiusKm = viewer.SearchRadiusKm
	}
	if f.SearchRadiusKm == 0 {
		f.SearchRadiusKm = domain.DefaultSearchRadiusKm
	}
	f.SearchRadiusKm = domain.SnapSearchRadius(f.SearchRadiusKm)
	return f
}

// excludedIDs collects the ids never shown to the viewer: blocks in either
// direction and every profile the viewer already reacted to, passes included.
func (uc *UseCase) excludedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	blocked, err := uc.blockRepo.BlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	reacted, err := uc.reactionRepo.OutgoingTargetIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return append(blocked, reacted...), nil
}

// applyModeGate narrows the pool to candidates sharing the viewer's active
// availability mode type. A viewer without an active mode sees everyone.
func (uc *UseCase) applyModeGate(ctx context.Context, viewerID uuid.UUID, pool []*domain.Profile, now time.Time) ([]*domain.Profile, error) {
	mode, err := uc.modeRepo.GetActive(ctx, viewerID, now)
	if err != nil {
		if errors.Is(err, domain.ErrModeNotFound) {
			return pool, nil
		}
		return nil, err
	}

	ids, err := uc.modeRepo.ActiveUserIDs(ctx, mode.ModeType, now)
	if err != nil {
		return nil, err
	}
	inMode := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		inMode[id] = struct{}{}
	}

	gated := pool[:0]
	for _, p := range pool {
		if _, ok := inMode[p.ID]; ok {
			gated = append(gated, p)
		}
	}
	return gated, nil
}

// rank computes per-candidate distances, drops candidates beyond the radius
// and sorts ascending. Candidates without a distance are kept and sorted
// last; ties keep their incoming order.
func (uc *UseCase) rank(origin *domain.DiscoveryOrigin, pool []*domain.Profile, radiusKm int) []Candidate {
	candidates := make([]Candidate, 0, len(pool))
	for _, p := range pool {
		c := Candidate{Profile: p}
		if origin.HasCoordinates() && p.HasLocation() {
			d := geo.DistanceKm(*origin.Latitude, *origin.Longitude, *p.Latitude, *p.Longitude)
			if !geo.WithinRadius(d, float64(radiusKm)) {
				continue
			}
			c.DistanceKm = &d
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].DistanceKm, candidates[j].DistanceKm
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
	return candidates
}

func emptyFeed() *Feed {
	return &Feed{Candidates: []Candidate{}, Origin: &domain.DiscoveryOrigin{}}
}
