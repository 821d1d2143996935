// Package reaction records one-way expressions of interest and turns a
// reciprocal pair into a durable connection with its conversation.
package reaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shyapp/shy-backend/internal/domain"
	"github.com/shyapp/shy-backend/internal/repository"
)

// QuotaGate is the usage limiter consulted before any reciprocity-affecting
// action. It returns domain.ErrQuotaExceeded when the daily quota is spent.
type QuotaGate interface {
	CheckAndConsume(ctx context.Context, userID uuid.UUID, action domain.LimitAction) error
}

// ReactResult distinguishes "recorded, waiting" from "mutual, connected".
type ReactResult struct {
	IsMatch     bool               `json:"is_match"`
	Reaction    *domain.Reaction   `json:"reaction,omitempty"`
	Connection  *domain.Connection `json:"connection,omitempty"`
	MatchedUser *domain.Profile    `json:"matched_user,omitempty"`
	AlreadyDone bool               `json:"already_done"`
}

type ConnectResult struct {
	Connection  *domain.Connection `json:"connection"`
	AlreadyDone bool               `json:"already_done"`
}

type UseCase struct {
	reactionRepo repository.ReactionRepository
	connRepo     repository.ConnectionRepository
	profileRepo  repository.ProfileRepository
	blockRepo    repository.BlockRepository
	quota        QuotaGate
	log          *slog.Logger
}

func NewUseCase(
	reactionRepo repository.ReactionRepository,
	connRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	blockRepo repository.BlockRepository,
	quota QuotaGate,
	log *slog.Logger,
) *UseCase {
	return &UseCase{
		reactionRepo: reactionRepo,
		connRepo:     connRepo,
		profileRepo:  profileRepo,
		blockRepo:    blockRepo,
		quota:        quota,
		log:          log,
	}
}

// React records a reaction from fromID toward toID and detects reciprocity.
// When a pending reaction already exists in the other direction the pair is
// connected: the reverse reaction is accepted and a connection plus its
// conversation are created. Concurrent reciprocal calls race on the
// canonical-pair unique constraint; the loser still reports the match.
func (uc *UseCase) React(ctx context.Context, fromID, toID uuid.UUID, reactionType domain.ReactionType) (*ReactResult, error) {
	if fromID == toID {
		return nil, domain.ErrCannotReactSelf
	}
	if !reactionType.Valid() {
		return nil, domain.ErrInvalidReaction
	}

	blocked, err := uc.blockRepo.Exists(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("react: %w", err)
	}
	if blocked {
		return nil, domain.ErrBlocked
	}

	// A pass suppresses the profile from discovery and nothing more: no
	// quota, no match detection.
	if !reactionType.CanMatch() {
		return uc.recordPass(ctx, fromID, toID)
	}

	action := domain.ActionLike
	if reactionType == domain.ReactionSuperLike {
		action = domain.ActionSuperLike
	}
	if err := uc.quota.CheckAndConsume(ctx, fromID, action); err != nil {
		return nil, err
	}

	pending, err := uc.reactionRepo.GetPendingBetween(ctx, toID, fromID)
	if err != nil && !errors.Is(err, domain.ErrReactionNotFound) {
		return nil, fmt.Errorf("react: %w", err)
	}

	if pending != nil {
		return uc.completeMatch(ctx, fromID, toID, pending)
	}

	r := &domain.Reaction{
		FromUserID: fromID,
		ToUserID:   toID,
		Type:       reactionType,
		Status:     domain.ReactionPending,
	}
	created, err := uc.reactionRepo.CreateIfAbsent(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("react: %w", err)
	}
	return &ReactResult{IsMatch: false, Reaction: r, AlreadyDone: !created}, nil
}

func (uc *UseCase) recordPass(ctx context.Context, fromID, toID uuid.UUID) (*ReactResult, error) {
	r := &domain.Reaction{
		FromUserID: fromID,
		ToUserID:   toID,
		Type:       domain.ReactionPass,
		Status:     domain.ReactionPending,
	}
	created, err := uc.reactionRepo.CreateIfAbsent(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("record pass: %w", err)
	}
	return &ReactResult{Reaction: r, AlreadyDone: !created}, nil
}

func (uc *UseCase) completeMatch(ctx context.Context, fromID, toID uuid.UUID, pending *domain.Reaction) (*ReactResult, error) {
	if err := uc.reactionRepo.Accept(ctx, pending.ID); err != nil && !errors.Is(err, domain.ErrReactionNotFound) {
		return nil, fmt.Errorf("accept reaction: %w", err)
	}

	conn := &domain.Connection{
		User1ID:    fromID,
		User2ID:    toID,
		ReactionID: &pending.ID,
	}
	created, err := uc.connRepo.CreateWithConversation(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	uc.log.Info("match",
		slog.String("user1_id", conn.User1ID.String()),
		slog.String("user2_id", conn.User2ID.String()),
		slog.Bool("created", created))

	result := &ReactResult{IsMatch: true, Connection: conn, AlreadyDone: !created}
	if matched, err := uc.profileRepo.GetByID(ctx, toID); err == nil {
		result.MatchedUser = matched
	}
	return result, nil
}

// DirectConnect creates the connection and conversation immediately, without
// a prior reaction, for gender pairs holding the direct-message privilege.
// Calling it twice is idempotent: the existing connection comes back with
// AlreadyDone set.
func (uc *UseCase) DirectConnect(ctx context.Context, fromID, toID uuid.UUID) (*ConnectResult, error) {
	if fromID == toID {
		return nil, domain.ErrCannotReactSelf
	}

	sender, err := uc.profileRepo.GetByID(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("direct connect: %w", err)
	}
	receiver, err := uc.profileRepo.GetByID(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("direct connect: %w", err)
	}
	if !CanDirectMessage(sender.Gender, receiver.Gender) {
		return nil, domain.ErrDirectNotAllowed
	}

	blocked, err := uc.blockRepo.Exists(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("direct connect: %w", err)
	}
	if blocked {
		return nil, domain.ErrBlocked
	}

	if err := uc.quota.CheckAndConsume(ctx, fromID, domain.ActionMessage); err != nil {
		return nil, err
	}

	conn := &domain.Connection{User1ID: fromID, User2ID: toID}
	created, err := uc.connRepo.CreateWithConversation(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("direct connect: %w", err)
	}

	uc.log.Info("direct connection",
		slog.String("from_user_id", fromID.String()),
		slog.String("to_user_id", toID.String()),
		slog.Bool("created", created))
	return &ConnectResult{Connection: conn, AlreadyDone: !created}, nil
}

// LikesReceived lists pending incoming reactions with the sender profiles.
func (uc *UseCase) LikesReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Profile, error) {
	reactions, err := uc.reactionRepo.LikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("likes received: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(reactions))
	for _, r := range reactions {
		p, err := uc.profileRepo.GetByID(ctx, r.FromUserID)
		if err != nil {
			// Sender deleted their account since reacting; skip.
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Connections lists the user's connections.
func (uc *UseCase) Connections(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Connection, error) {
	return uc.connRepo.ListForUser(ctx, userID, limit, offset)
}

// Disconnect removes the connection between the user and another user.
func (uc *UseCase) Disconnect(ctx context.Context, userID, otherID uuid.UUID) error {
	if err := uc.connRepo.DeleteByUsers(ctx, userID, otherID); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	uc.log.Info("disconnected",
		slog.String("user_id", userID.String()),
		slog.String("other_id", otherID.String()))
	return nil
}
