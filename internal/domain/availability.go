package domain

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityModeType string

const (
	ModeRelaxed     AvailabilityModeType = "relaxed"
	ModeSpontaneous AvailabilityModeType = "spontaneous"
	ModeExplorer    AvailabilityModeType = "explorer"
)

func (t AvailabilityModeType) Valid() bool {
	switch t {
	case ModeRelaxed, ModeSpontaneous, ModeExplorer:
		return true
	}
	return false
}

// ModeDurations are the selectable activation windows, in hours.
var ModeDurations = []int{24, 72}

func ValidModeDuration(hours int) bool {
	for _, d := range ModeDurations {
		if d == hours {
			return true
		}
	}
	return false
}

// AvailabilityMode is a time-boxed "I'm free right now" signal. At most one
// row per user; activating a new mode supersedes the previous one.
type AvailabilityMode struct {
	ID            uuid.UUID            `json:"id" db:"id"`
	UserID        uuid.UUID            `json:"user_id" db:"user_id"`
	ModeType      AvailabilityModeType `json:"mode_type" db:"mode_type"`
	DurationHours int                  `json:"duration_hours" db:"duration_hours"`
	ActivatedAt   time.Time            `json:"activated_at" db:"activated_at"`
	ExpiresAt     time.Time            `json:"expires_at" db:"expires_at"`
}

// Active is derived from the expiry, never stored as a flag that can drift.
func (m *AvailabilityMode) Active(now time.Time) bool {
	return now.Before(m.ExpiresAt)
}

func (m *AvailabilityMode) RemainingMinutes(now time.Time) int {
	if !m.Active(now) {
		return 0
	}
	return int(m.ExpiresAt.Sub(now).Minutes())
}
