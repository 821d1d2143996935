package domain

import (
	"time"

	"github.com/google/uuid"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPlus    Plan = "plus"
	PlanPremium Plan = "premium"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanPlus, PlanPremium:
		return true
	}
	return false
}

// UnlimitedQuota is the sentinel for "no daily cap".
const UnlimitedQuota = -1

// PlanFeatures are the entitlements attached to a subscription plan.
type PlanFeatures struct {
	DailyLikes             int  `json:"daily_likes"`
	DailyMessages          int  `json:"daily_messages"`
	DailySuperLikes        int  `json:"daily_super_likes"`
	TravelModeEnabled      bool `json:"travel_mode_enabled"`
	MaxModeDurationHours   int  `json:"max_mode_duration_hours"`
	ModeActivationsPerWeek int  `json:"mode_activations_per_week"`
}

func (f PlanFeatures) DailyQuota(action LimitAction) int {
	switch action {
	case ActionLike:
		return f.DailyLikes
	case ActionMessage:
		return f.DailyMessages
	case ActionSuperLike:
		return f.DailySuperLikes
	}
	return 0
}

// PlanCatalog maps each plan to its entitlements. Messages are unlimited on
// every plan once a connection exists; likes are the paywalled resource.
var PlanCatalog = map[Plan]PlanFeatures{
	PlanFree: {
		DailyLikes:             10,
		DailyMessages:          UnlimitedQuota,
		DailySuperLikes:        0,
		TravelModeEnabled:      false,
		MaxModeDurationHours:   24,
		ModeActivationsPerWeek: 1,
	},
	PlanPlus: {
		DailyLikes:             40,
		DailyMessages:          UnlimitedQuota,
		DailySuperLikes:        1,
		TravelModeEnabled:      false,
		MaxModeDurationHours:   72,
		ModeActivationsPerWeek: UnlimitedQuota,
	},
	PlanPremium: {
		DailyLikes:             UnlimitedQuota,
		DailyMessages:          UnlimitedQuota,
		DailySuperLikes:        5,
		TravelModeEnabled:      true,
		MaxModeDurationHours:   72,
		ModeActivationsPerWeek: UnlimitedQuota,
	},
}

type Subscription struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Plan      Plan       `json:"plan" db:"plan"`
	ExpiresAt *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// EffectivePlan falls back to free once a paid subscription has lapsed.
func (s *Subscription) EffectivePlan(now time.Time) Plan {
	if s == nil {
		return PlanFree
	}
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return PlanFree
	}
	return s.Plan
}
