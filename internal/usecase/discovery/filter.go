package discovery

import (
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

// Filters are the viewer-supplied discovery criteria. Empty slices mean
// unrestricted, zero ages fall back to the viewer's stored preferences.
type Filters struct {
	MinAge         int                `json:"min_age"`
	MaxAge         int                `json:"max_age"`
	Genders        []domain.Gender    `json:"genders"`
	Intentions     []domain.Intention `json:"intentions"`
	SearchRadiusKm int                `json:"search_radius_km"`
}

// eligibility holds the per-request exclusion state compiled once before the
// candidate pool is walked.
type eligibility struct {
	minAge     int
	maxAge     int
	genders    map[domain.Gender]struct{}
	intentions map[domain.Intention]struct{}
	excluded   map[uuid.UUID]struct{}
	now        time.Time
}

func newEligibility(f Filters, excluded []uuid.UUID, now time.Time) *eligibility {
	e := &eligibility{
		minAge:   f.MinAge,
		maxAge:   f.MaxAge,
		excluded: make(map[uuid.UUID]struct{}, len(excluded)),
		now:      now,
	}
	if len(f.Genders) > 0 {
		e.genders = make(map[domain.Gender]struct{}, len(f.Genders))
		for _, g := range f.Genders {
			e.genders[g] = struct{}{}
		}
	}
	if len(f.Intentions) > 0 {
		e.intentions = make(map[domain.Intention]struct{}, len(f.Intentions))
		for _, i := range f.Intentions {
			e.intentions[i] = struct{}{}
		}
	}
	for _, id := range excluded {
		e.excluded[id] = struct{}{}
	}
	return e
}

// admits reports whether the candidate survives the age, gender, intention
// and exclusion checks. Location is deliberately not checked here: a
// candidate without coordinates stays in the pool with an unknown distance.
func (e *eligibility) admits(p *domain.Profile) bool {
	if _, ok := e.excluded[p.ID]; ok {
		return false
	}
	age := p.Age(e.now)
	if age < e.minAge || age > e.maxAge {
		return false
	}
	if e.genders != nil {
		if _, ok := e.genders[p.Gender]; !ok {
			return false
		}
	}
	if e.intentions != nil {
		if _, ok := e.intentions[p.Intention]; !ok {
			return false
		}
	}
	return true
}
