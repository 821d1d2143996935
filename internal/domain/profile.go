package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderHomme      Gender = "homme"
	GenderFemme      Gender = "femme"
	GenderNonBinaire Gender = "non-binaire"
	GenderAutre      Gender = "autre"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderHomme, GenderFemme, GenderNonBinaire, GenderAutre:
		return true
	}
	return false
}

type Intention string

const (
	IntentionSocial Intention = "social"
	IntentionDating Intention = "dating"
	IntentionAmical Intention = "amical"
	IntentionLocal  Intention = "local"
)

func (i Intention) Valid() bool {
	switch i {
	case IntentionSocial, IntentionDating, IntentionAmical, IntentionLocal:
		return true
	}
	return false
}

const (
	MinAge = 18
	MaxAge = 99

	MaxInterests = 10
	MaxPhotos    = 6

	DefaultSearchRadiusKm = 25
)

// SearchRadiusLadder is the fixed set of selectable search radii, in km.
var SearchRadiusLadder = []int{5, 10, 25, 50, 100}

// SnapSearchRadius maps an arbitrary radius to the nearest rung of the ladder.
func SnapSearchRadius(km int) int {
	best := SearchRadiusLadder[0]
	for _, r := range SearchRadiusLadder {
		if abs(km-r) < abs(km-best) {
			best = r
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type Profile struct {
	ID                   uuid.UUID  `json:"id" db:"id"`
	DisplayName          string     `json:"display_name" db:"display_name"`
	BirthDate            time.Time  `json:"birth_date" db:"birth_date"`
	Gender               Gender     `json:"gender" db:"gender"`
	Intention            Intention  `json:"intention" db:"intention"`
	Bio                  *string    `json:"bio" db:"bio"`
	Interests            []string   `json:"interests" db:"interests"`
	Photos               []string   `json:"photos" db:"photos"`
	LocationEnabled      bool       `json:"location_enabled" db:"location_enabled"`
	Latitude             *float64   `json:"latitude" db:"latitude"`
	Longitude            *float64   `json:"longitude" db:"longitude"`
	LocationUpdatedAt    *time.Time `json:"location_updated_at" db:"location_updated_at"`
	SearchRadiusKm       int        `json:"search_radius_km" db:"search_radius_km"`
	MinAgeFilter         int        `json:"min_age_filter" db:"min_age_filter"`
	MaxAgeFilter         int        `json:"max_age_filter" db:"max_age_filter"`
	GenderFilter         []string   `json:"gender_filter" db:"gender_filter"`
	IsOnboardingComplete bool       `json:"is_onboarding_complete" db:"is_onboarding_complete"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// Age derives the profile's age from its birth date at the given instant.
// Ages are never stored; recompute at read time.
func (p *Profile) Age(at time.Time) int {
	years := at.Year() - p.BirthDate.Year()
	anniversary := time.Date(at.Year(), p.BirthDate.Month(), p.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		years--
	}
	return years
}

// HasLocation reports whether the profile exposes usable coordinates.
func (p *Profile) HasLocation() bool {
	return p.LocationEnabled && p.Latitude != nil && p.Longitude != nil
}

// DiscoveryOrigin is the effective coordinate pair a discovery query runs
// from: the travel destination when travel mode is active, the profile's GPS
// position otherwise. Nil coordinates mean "location unknown".
type DiscoveryOrigin struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Label     string   `json:"label,omitempty"`
	IsTravel  bool     `json:"is_travel"`
}

func (o *DiscoveryOrigin) HasCoordinates() bool {
	return o != nil && o.Latitude != nil && o.Longitude != nil
}
