package domain

import (
	"time"

	"github.com/google/uuid"
)

type LimitAction string

const (
	ActionLike      LimitAction = "like"
	ActionMessage   LimitAction = "message"
	ActionSuperLike LimitAction = "super_like"
)

func (a LimitAction) Valid() bool {
	switch a {
	case ActionLike, ActionMessage, ActionSuperLike:
		return true
	}
	return false
}

// DailyLimits is one counter row per (user, calendar day). A new day gets a
// new row created at zero; rows are never reset in place.
type DailyLimits struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Date           string    `json:"date" db:"date"`
	LikesUsed      int       `json:"likes_used" db:"likes_used"`
	MessagesUsed   int       `json:"messages_used" db:"messages_used"`
	SuperLikesUsed int       `json:"super_likes_used" db:"super_likes_used"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func (l *DailyLimits) Used(action LimitAction) int {
	switch action {
	case ActionLike:
		return l.LikesUsed
	case ActionMessage:
		return l.MessagesUsed
	case ActionSuperLike:
		return l.SuperLikesUsed
	}
	return 0
}
