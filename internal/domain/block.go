package domain

import (
	"time"

	"github.com/google/uuid"
)

// Block excludes both users from each other's discovery and destroys any
// existing Connection/Conversation between the pair.
type Block struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BlockerID uuid.UUID `json:"blocker_id" db:"blocker_id"`
	BlockedID uuid.UUID `json:"blocked_id" db:"blocked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
