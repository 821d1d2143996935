// Package availability manages time-boxed "I'm free right now" modes. A mode
// partitions discovery: users in a mode only see candidates holding an
// active mode of the same type.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

type UseCase struct {
	modeRepo repository.AvailabilityModeRepository
	plans    repository.SubscriptionService
	log      *slog.Logger

	now func() time.Time
}

func NewUseCase(
	modeRepo repository.AvailabilityModeRepository,
	plans repository.SubscriptionService,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		modeRepo: modeRepo,
		plans:    plans,
		log:      log,
		now:      time.Now,
	}
}

// Activate turns a mode on for the user. Any previously active mode is
// superseded by a single atomic upsert, never stacked. The duration is
// capped by the plan, and the free plan allows one activation per rolling
// week.
func (uc *UseCase) Activate(ctx context.Context, userID uuid.UUID, modeType domain.AvailabilityModeType, durationHours int) (*domain.AvailabilityMode, error) {
	if !modeType.Valid() {
		return nil, domain.ErrInvalidMode
	}
	if !domain.ValidModeDuration(durationHours) {
		return nil, domain.ErrInvalidDuration
	}

	features, err := uc.plans.Features(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("activate mode: %w", err)
	}
	if durationHours > features.MaxModeDurationHours {
		return nil, domain.ErrPermissionDenied
	}
	if features.ModeActivationsPerWeek != domain.UnlimitedQuota {
		weekAgo := uc.now().Add(-7 * 24 * time.Hour)
		count, err := uc.modeRepo.CountActivationsSince(ctx, userID, weekAgo)
		if err != nil {
			return nil, fmt.Errorf("activate mode: %w", err)
		}
		if count >= features.ModeActivationsPerWeek {
			return nil, domain.ErrQuotaExceeded
		}
	}

	now := uc.now()
	mode := &domain.AvailabilityMode{
		UserID:        userID,
		ModeType:      modeType,
		DurationHours: durationHours,
		ActivatedAt:   now,
		ExpiresAt:     now.Add(time.Duration(durationHours) * time.Hour),
	}
	if err := uc.modeRepo.Upsert(ctx, mode); err != nil {
		return nil, fmt.Errorf("activate mode: %w", err)
	}

	uc.log.Info("availability mode activated",
		slog.String("user_id", userID.String()),
		slog.String("mode", string(modeType)),
		slog.Int("duration_hours", durationHours))
	return mode, nil
}

func (uc *UseCase) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := uc.modeRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	uc.log.Info("availability mode deactivated", slog.String("user_id", userID.String()))
	return nil
}

// Active returns the user's current mode, or domain.ErrModeNotFound when
// none is active. Expiry is evaluated against the clock, not a stored flag.
func (uc *UseCase) Active(ctx context.Context, userID uuid.UUID) (*domain.AvailabilityMode, error) {
	return uc.modeRepo.GetActive(ctx, userID, uc.now())
}
