// Package subscription resolves a user's effective plan, with a short
// read-through Redis cache in front of the subscription store. Every quota
// check hits this path, so the cache keeps discovery and swiping off the
// subscriptions table.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

// cacheTTL bounds how long a plan change can stay invisible.
const cacheTTL = 5 * time.Minute

type Service struct {
	repo  repository.SubscriptionRepository
	cache *redis.Client
	log   *slog.Logger
	now   func() time.Time
}

func NewService(repo repository.SubscriptionRepository, cache *redis.Client, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Plan returns the user's effective plan. Lapsed or absent subscriptions
// resolve to free. Cache failures fall through to the store.
func (s *Service) Plan(ctx context.Context, userID uuid.UUID) (domain.Plan, error) {
	key := cacheKey(userID)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			plan := domain.Plan(cached)
			if plan.Valid() {
				return plan, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("subscription cache read failed", slog.String("error", err.Error()))
		}
	}

	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolve plan: %w", err)
	}
	plan := sub.EffectivePlan(s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(plan), cacheTTL).Err(); err != nil {
			s.log.Warn("subscription cache write failed", slog.String("error", err.Error()))
		}
	}
	return plan, nil
}

// Features returns the entitlements of the user's effective plan.
func (s *Service) Features(ctx context.Context, userID uuid.UUID) (domain.PlanFeatures, error) {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return domain.PlanFeatures{}, err
	}
	return domain.PlanCatalog[plan], nil
}

// Invalidate drops the cached plan, used right after a plan change.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(userID)).Err(); err != nil {
		s.log.Warn("subscription cache invalidation failed", slog.String("error", err.Error()))
	}
}

func cacheKey(userID uuid.UUID) string {
	return "subscription:plan:" + userID.String()
}
