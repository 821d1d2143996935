package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionInvitation ReactionType = "invitation"
	ReactionSuperLike  ReactionType = "super_like"
	ReactionPass       ReactionType = "pass"
)

func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionInvitation, ReactionSuperLike, ReactionPass:
		return true
	}
	return false
}

// CanMatch reports whether a reaction of this type participates in
// reciprocity detection. A pass is recorded only to suppress the profile
// from future discovery.
func (t ReactionType) CanMatch() bool {
	return t != ReactionPass
}

type ReactionStatus string

const (
	ReactionPending  ReactionStatus = "pending"
	ReactionAccepted ReactionStatus = "accepted"
)

// Reaction is a one-directional expression of interest. Unique per
// (from_user_id, to_user_id) pair; immutable once accepted.
type Reaction struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	FromUserID  uuid.UUID      `json:"from_user_id" db:"from_user_id"`
	ToUserID    uuid.UUID      `json:"to_user_id" db:"to_user_id"`
	Type        ReactionType   `json:"type" db:"type"`
	Status      ReactionStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	RespondedAt *time.Time     `json:"responded_at" db:"responded_at"`
}
