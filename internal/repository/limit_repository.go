package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
)

type DailyLimitRepository interface {
	// GetOrCreate returns the counter row for (user, date), inserting a
	// zeroed row when none exists yet. Date is a UTC calendar day in
	// YYYY-MM-DD form.
	GetOrCreate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLimits, error)
	Increment(ctx context.Context, userID uuid.UUID, date string, action domain.LimitAction) error
}
