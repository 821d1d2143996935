package limits

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeLimitRepo struct {
	rows map[string]*domain.DailyLimits
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{rows: make(map[string]*domain.DailyLimits)}
}

func (f *fakeLimitRepo) key(userID uuid.UUID, date string) string {
	return userID.String() + "|" + date
}

func (f *fakeLimitRepo) GetOrCreate(_ context.Context, userID uuid.UUID, date string) (*domain.DailyLimits, error) {
	k := f.key(userID, date)
	if row, ok := f.rows[k]; ok {
		copied := *row
		return &copied, nil
	}
	row := &domain.DailyLimits{ID: uuid.New(), UserID: userID, Date: date}
	f.rows[k] = row
	copied := *row
	return &copied, nil
}

func (f *fakeLimitRepo) Increment(_ context.Context, userID uuid.UUID, date string, action domain.LimitAction) error {
	row := f.rows[f.key(userID, date)]
	switch action {
	case domain.ActionLike:
		row.LikesUsed++
	case domain.ActionMessage:
		row.MessagesUsed++
	case domain.ActionSuperLike:
		row.SuperLikesUsed++
	}
	return nil
}

type fakePlans struct {
	plan domain.Plan
}

func (f *fakePlans) Plan(context.Context, uuid.UUID) (domain.Plan, error) {
	return f.plan, nil
}

func (f *fakePlans) Features(context.Context, uuid.UUID) (domain.PlanFeatures, error) {
	return domain.PlanCatalog[f.plan], nil
}

func newService(plan domain.Plan) (*Service, *fakeLimitRepo) {
	repo := newFakeLimitRepo()
	svc := NewService(repo, &fakePlans{plan: plan}, slog.Default())
	return svc, repo
}

func TestCheckAndConsume_WithinQuota(t *testing.T) {
	svc, _ := newService(domain.PlanFree)
	userID := uuid.New()

	status, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
	require.NoError(t, err)
	require.True(t, status.Allowed)
	require.Equal(t, 9, status.Remaining)
	require.Equal(t, 1, status.Used)
}

func TestCheckAndConsume_QuotaExhausted(t *testing.T) {
	svc, repo := newService(domain.PlanFree)
	userID := uuid.New()

	for i := 0; i < 10; i++ {
		_, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
		require.NoError(t, err)
	}

	status, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	require.False(t, status.Allowed)
	require.Equal(t, 0, status.Remaining)

	// The rejected attempt must not increment the counter.
	row, err := repo.GetOrCreate(context.Background(), userID, svc.today())
	require.NoError(t, err)
	require.Equal(t, 10, row.LikesUsed)
}

func TestCheckAndConsume_UnlimitedStillCounts(t *testing.T) {
	svc, repo := newService(domain.PlanPremium)
	userID := uuid.New()

	for i := 0; i < 15; i++ {
		status, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
		require.NoError(t, err)
		require.True(t, status.Allowed)
		require.Equal(t, domain.UnlimitedQuota, status.Remaining)
	}

	row, err := repo.GetOrCreate(context.Background(), userID, svc.today())
	require.NoError(t, err)
	require.Equal(t, 15, row.LikesUsed)
}

func TestCheck_DoesNotConsume(t *testing.T) {
	svc, repo := newService(domain.PlanFree)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		status, err := svc.Check(context.Background(), userID, domain.ActionLike)
		require.NoError(t, err)
		require.True(t, status.Allowed)
		require.Equal(t, 10, status.Remaining)
	}

	row, err := repo.GetOrCreate(context.Background(), userID, svc.today())
	require.NoError(t, err)
	require.Equal(t, 0, row.LikesUsed)
}

func TestNewDayGetsFreshCounters(t *testing.T) {
	svc, _ := newService(domain.PlanFree)
	userID := uuid.New()

	base := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for i := 0; i < 10; i++ {
		_, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
		require.NoError(t, err)
	}
	_, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)

	// Crossing UTC midnight starts a new row; nothing is mutated in place.
	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	status, err := svc.CheckAndConsume(context.Background(), userID, domain.ActionLike)
	require.NoError(t, err)
	require.Equal(t, 1, status.Used)
}

func TestOverview(t *testing.T) {
	svc, _ := newService(domain.PlanPlus)
	userID := uuid.New()

	statuses, err := svc.Overview(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	byAction := make(map[domain.LimitAction]*Status)
	for _, s := range statuses {
		byAction[s.Action] = s
	}
	require.Equal(t, 40, byAction[domain.ActionLike].Quota)
	require.Equal(t, domain.UnlimitedQuota, byAction[domain.ActionMessage].Quota)
	require.Equal(t, 1, byAction[domain.ActionSuperLike].Quota)
}
