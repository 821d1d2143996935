// Package limits enforces per-day action quotas scaled by subscription plan.
//
// The day boundary is the server's UTC calendar day: one counter row per
// (user, date), created at zero on first read. Quota -1 means unlimited.
package limits

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

// Status is the outcome of a quota check. Remaining is -1 when the plan
// grants unlimited use of the action.
type Status struct {
	Action    domain.LimitAction `json:"action"`
	Allowed   bool               `json:"allowed"`
	Remaining int                `json:"remaining"`
	Quota     int                `json:"quota"`
	Used      int                `json:"used"`
}

type Service struct {
	limitRepo repository.DailyLimitRepository
	plans     repository.SubscriptionService
	log       *slog.Logger

	now func() time.Time
}

func NewService(
	limitRepo repository.DailyLimitRepository,
	plans repository.SubscriptionService,
	log *slog.Logger,
) *Service {
	return &Service{
		limitRepo: limitRepo,
		plans:     plans,
		log:       log,
		now:       time.Now,
	}
}

func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// Check reports whether the action is currently allowed, without consuming
// quota. Callers that want to show a paywall on a rejected attempt use this
// step alone; nothing is counted.
func (s *Service) Check(ctx context.Context, userID uuid.UUID, action domain.LimitAction) (*Status, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("check quota: unknown action %q", action)
	}

	features, err := s.plans.Features(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check quota: %w", err)
	}
	quota := features.DailyQuota(action)

	counters, err := s.limitRepo.GetOrCreate(ctx, userID, s.today())
	if err != nil {
		return nil, fmt.Errorf("check quota: %w", err)
	}
	used := counters.Used(action)

	status := &Status{Action: action, Quota: quota, Used: used}
	if quota == domain.UnlimitedQuota {
		status.Allowed = true
		status.Remaining = domain.UnlimitedQuota
		return status, nil
	}
	status.Allowed = used < quota
	if remaining := quota - used; remaining > 0 {
		status.Remaining = remaining
	}
	return status, nil
}

// Consume increments today's counter. It is the commit half of a
// check-then-commit pair and performs no quota comparison of its own.
func (s *Service) Consume(ctx context.Context, userID uuid.UUID, action domain.LimitAction) error {
	if err := s.limitRepo.Increment(ctx, userID, s.today(), action); err != nil {
		return fmt.Errorf("consume quota: %w", err)
	}
	return nil
}

// CheckAndConsume checks and, when allowed, commits in one call. A denied
// attempt returns the status alongside domain.ErrQuotaExceeded and consumes
// nothing. Unlimited plans are still counted, for usage telemetry.
func (s *Service) CheckAndConsume(ctx context.Context, userID uuid.UUID, action domain.LimitAction) (*Status, error) {
	status, err := s.Check(ctx, userID, action)
	if err != nil {
		return nil, err
	}
	if !status.Allowed {
		s.log.Info("quota exhausted",
			slog.String("user_id", userID.String()),
			slog.String("action", string(action)),
			slog.Int("quota", status.Quota))
		return status, domain.ErrQuotaExceeded
	}

	if err := s.Consume(ctx, userID, action); err != nil {
		return nil, err
	}
	status.Used++
	if status.Remaining > 0 {
		status.Remaining--
	}
	return status, nil
}

// Overview returns today's status for every quota-limited action.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) ([]*Status, error) {
	actions := []domain.LimitAction{domain.ActionLike, domain.ActionMessage, domain.ActionSuperLike}
	statuses := make([]*Status, 0, len(actions))
	for _, action := range actions {
		status, err := s.Check(ctx, userID, action)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
