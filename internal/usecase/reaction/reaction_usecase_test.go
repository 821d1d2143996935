package reaction

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

type pairKey struct {
	from uuid.UUID
	to   uuid.UUID
}

type fakeReactionRepo struct {
	reactions map[pairKey]*domain.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[pairKey]*domain.Reaction)}
}

func (f *fakeReactionRepo) CreateIfAbsent(_ context.Context, r *domain.Reaction) (bool, error) {
	k := pairKey{r.FromUserID, r.ToUserID}
	if _, ok := f.reactions[k]; ok {
		return false, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	copied := *r
	f.reactions[k] = &copied
	return true, nil
}

func (f *fakeReactionRepo) GetPendingBetween(_ context.Context, fromID, toID uuid.UUID) (*domain.Reaction, error) {
	r, ok := f.reactions[pairKey{fromID, toID}]
	if !ok || r.Status != domain.ReactionPending || !r.Type.CanMatch() {
		return nil, domain.ErrReactionNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReactionRepo) Accept(_ context.Context, id uuid.UUID) error {
	for _, r := range f.reactions {
		if r.ID == id && r.Status == domain.ReactionPending {
			r.Status = domain.ReactionAccepted
			now := time.Now()
			r.RespondedAt = &now
			return nil
		}
	}
	return domain.ErrReactionNotFound
}

func (f *fakeReactionRepo) OutgoingTargetIDs(_ context.Context, fromID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for k := range f.reactions {
		if k.from == fromID {
			ids = append(ids, k.to)
		}
	}
	return ids, nil
}

func (f *fakeReactionRepo) LikesReceived(_ context.Context, toID uuid.UUID, _, _ int) ([]*domain.Reaction, error) {
	var out []*domain.Reaction
	for k, r := range f.reactions {
		if k.to == toID && r.Status == domain.ReactionPending && r.Type.CanMatch() {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeConnRepo struct {
	conns         map[pairKey]*domain.Connection
	conversations int
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{conns: make(map[pairKey]*domain.Connection)}
}

func (f *fakeConnRepo) CreateWithConversation(_ context.Context, conn *domain.Connection) (bool, error) {
	u1, u2 := domain.CanonicalPair(conn.User1ID, conn.User2ID)
	conn.User1ID, conn.User2ID = u1, u2
	k := pairKey{u1, u2}
	if existing, ok := f.conns[k]; ok {
		*conn = *existing
		return false, nil
	}
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	conn.CreatedAt = time.Now()
	copied := *conn
	f.conns[k] = &copied
	f.conversations++
	return true, nil
}

func (f *fakeConnRepo) GetByUsers(_ context.Context, a, b uuid.UUID) (*domain.Connection, error) {
	u1, u2 := domain.CanonicalPair(a, b)
	conn, ok := f.conns[pairKey{u1, u2}]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	copied := *conn
	return &copied, nil
}

func (f *fakeConnRepo) ListForUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for _, conn := range f.conns {
		if conn.HasUser(userID) {
			copied := *conn
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeConnRepo) DeleteByUsers(_ context.Context, a, b uuid.UUID) error {
	u1, u2 := domain.CanonicalPair(a, b)
	k := pairKey{u1, u2}
	if _, ok := f.conns[k]; ok {
		delete(f.conns, k)
		f.conversations--
	}
	return nil
}

type profileStore struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *profileStore) Create(_ context.Context, p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *profileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *profileStore) Update(context.Context, *domain.Profile) error { return nil }
func (f *profileStore) UpdateLocation(context.Context, uuid.UUID, bool, *float64, *float64) error {
	return nil
}
func (f *profileStore) Delete(context.Context, uuid.UUID) error { return nil }
func (f *profileStore) SearchCandidates(context.Context, repository.CandidateQuery) ([]*domain.Profile, error) {
	return nil, nil
}

type fakeBlockRepo struct {
	blocked map[pairKey]bool
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocked: make(map[pairKey]bool)}
}

func (f *fakeBlockRepo) Create(_ context.Context, blockerID, blockedID uuid.UUID) error {
	f.blocked[pairKey{blockerID, blockedID}] = true
	return nil
}

func (f *fakeBlockRepo) BlockedIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for k := range f.blocked {
		if k.from == userID {
			ids = append(ids, k.to)
		}
		if k.to == userID {
			ids = append(ids, k.from)
		}
	}
	return ids, nil
}

func (f *fakeBlockRepo) Exists(_ context.Context, a, b uuid.UUID) (bool, error) {
	return f.blocked[pairKey{a, b}] || f.blocked[pairKey{b, a}], nil
}

type fakeQuota struct {
	consumed map[domain.LimitAction]int
	denied   bool
}

func newFakeQuota() *fakeQuota {
	return &fakeQuota{consumed: make(map[domain.LimitAction]int)}
}

func (f *fakeQuota) CheckAndConsume(_ context.Context, _ uuid.UUID, action domain.LimitAction) error {
	if f.denied {
		return domain.ErrQuotaExceeded
	}
	f.consumed[action]++
	return nil
}

type fixture struct {
	uc        *UseCase
	reactions *fakeReactionRepo
	conns     *fakeConnRepo
	profiles  *profileStore
	blocks    *fakeBlockRepo
	quota     *fakeQuota
}

func newFixture() *fixture {
	f := &fixture{
		reactions: newFakeReactionRepo(),
		conns:     newFakeConnRepo(),
		profiles:  &profileStore{profiles: make(map[uuid.UUID]*domain.Profile)},
		blocks:    newFakeBlockRepo(),
		quota:     newFakeQuota(),
	}
	f.uc = NewUseCase(f.reactions, f.conns, f.profiles, f.blocks, f.quota, slog.Default())
	return f
}

func (f *fixture) addProfile(gender domain.Gender) uuid.UUID {
	id := uuid.New()
	f.profiles.profiles[id] = &domain.Profile{ID: id, DisplayName: "u-" + id.String()[:8], Gender: gender}
	return id
}

func TestReact_RecordsPending(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)

	result, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	require.False(t, result.IsMatch)
	require.False(t, result.AlreadyDone)
	require.Equal(t, domain.ReactionPending, result.Reaction.Status)
	require.Equal(t, 1, f.quota.consumed[domain.ActionLike])
}

func TestReact_DuplicateIsIdempotent(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)

	_, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	result, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	require.True(t, result.AlreadyDone)
	require.Len(t, f.reactions.reactions, 1)
}

func TestReact_ReciprocalCreatesOneConnection(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)

	first, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	require.False(t, first.IsMatch)

	second, err := f.uc.React(context.Background(), b, a, domain.ReactionLike)
	require.NoError(t, err)
	require.True(t, second.IsMatch)
	require.NotNil(t, second.Connection)
	require.NotNil(t, second.MatchedUser)

	require.Len(t, f.conns.conns, 1)
	require.Equal(t, 1, f.conns.conversations)

	// The originating reaction no longer sits pending between the pair.
	_, err = f.reactions.GetPendingBetween(context.Background(), a, b)
	require.ErrorIs(t, err, domain.ErrReactionNotFound)
}

func TestReact_ReciprocalIsOrderIndependent(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderFemme)
	b := f.addProfile(domain.GenderNonBinaire)

	_, err := f.uc.React(context.Background(), b, a, domain.ReactionInvitation)
	require.NoError(t, err)
	result, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	require.True(t, result.IsMatch)

	u1, u2 := domain.CanonicalPair(a, b)
	require.Equal(t, u1, result.Connection.User1ID)
	require.Equal(t, u2, result.Connection.User2ID)
}

func TestReact_ConcurrentSecondWriterIsNoOp(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)

	// Simulate the losing side of the race: the connection already exists
	// when this call tries to create it.
	_, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.NoError(t, err)
	conn := &domain.Connection{User1ID: a, User2ID: b}
	_, err = f.conns.CreateWithConversation(context.Background(), conn)
	require.NoError(t, err)

	result, err := f.uc.React(context.Background(), b, a, domain.ReactionLike)
	require.NoError(t, err)
	require.True(t, result.IsMatch)
	require.True(t, result.AlreadyDone)
	require.Len(t, f.conns.conns, 1)
	require.Equal(t, 1, f.conns.conversations)
}

func TestReact_PassConsumesNoQuotaAndNeverMatches(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)

	_, err := f.uc.React(context.Background(), a, b, domain.ReactionPass)
	require.NoError(t, err)
	require.Empty(t, f.quota.consumed)

	// B liking A back must not turn A's pass into a match.
	result, err := f.uc.React(context.Background(), b, a, domain.ReactionLike)
	require.NoError(t, err)
	require.False(t, result.IsMatch)
	require.Empty(t, f.conns.conns)
}

func TestReact_QuotaExceeded(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)
	f.quota.denied = true

	_, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	require.Empty(t, f.reactions.reactions)
}

func TestReact_SelfRejected(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)

	_, err := f.uc.React(context.Background(), a, a, domain.ReactionLike)
	require.ErrorIs(t, err, domain.ErrCannotReactSelf)
}

func TestReact_BlockedPair(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)
	require.NoError(t, f.blocks.Create(context.Background(), b, a))

	_, err := f.uc.React(context.Background(), a, b, domain.ReactionLike)
	require.ErrorIs(t, err, domain.ErrBlocked)
}

func TestDirectConnect_PrivilegedPair(t *testing.T) {
	f := newFixture()
	femme := f.addProfile(domain.GenderFemme)
	homme := f.addProfile(domain.GenderHomme)

	result, err := f.uc.DirectConnect(context.Background(), femme, homme)
	require.NoError(t, err)
	require.False(t, result.AlreadyDone)
	require.Len(t, f.conns.conns, 1)
	require.Equal(t, 1, f.conns.conversations)
	require.Equal(t, 1, f.quota.consumed[domain.ActionMessage])
}

func TestDirectConnect_UnprivilegedPair(t *testing.T) {
	f := newFixture()
	homme := f.addProfile(domain.GenderHomme)
	femme := f.addProfile(domain.GenderFemme)

	_, err := f.uc.DirectConnect(context.Background(), homme, femme)
	require.ErrorIs(t, err, domain.ErrDirectNotAllowed)
	require.Empty(t, f.conns.conns)
}

func TestDirectConnect_Idempotent(t *testing.T) {
	f := newFixture()
	femme := f.addProfile(domain.GenderFemme)
	homme := f.addProfile(domain.GenderHomme)

	first, err := f.uc.DirectConnect(context.Background(), femme, homme)
	require.NoError(t, err)
	second, err := f.uc.DirectConnect(context.Background(), femme, homme)
	require.NoError(t, err)
	require.True(t, second.AlreadyDone)
	require.Equal(t, first.Connection.ID, second.Connection.ID)
	require.Len(t, f.conns.conns, 1)
}

func TestLikesReceived(t *testing.T) {
	f := newFixture()
	a := f.addProfile(domain.GenderHomme)
	b := f.addProfile(domain.GenderFemme)
	c := f.addProfile(domain.GenderNonBinaire)

	_, err := f.uc.React(context.Background(), b, a, domain.ReactionLike)
	require.NoError(t, err)
	_, err = f.uc.React(context.Background(), c, a, domain.ReactionInvitation)
	require.NoError(t, err)

	profiles, err := f.uc.LikesReceived(context.Background(), a, 20, 0)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
}
