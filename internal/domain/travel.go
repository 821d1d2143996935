package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelMode substitutes the user's discovery location with a chosen
// destination ahead of physical arrival. At most one active row per user;
// gated by subscription plan.
type TravelMode struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	City        string     `json:"city" db:"city"`
	Country     string     `json:"country" db:"country"`
	Latitude    float64    `json:"latitude" db:"latitude"`
	Longitude   float64    `json:"longitude" db:"longitude"`
	ArrivalDate *time.Time `json:"arrival_date" db:"arrival_date"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// TravelDestination is a geocoding candidate for travel-mode selection.
type TravelDestination struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
