package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Connection is the durable mutual relationship between two users. The pair
// is stored in canonical order (user1_id < user2_id) and carries a unique
// constraint, so concurrent reciprocal reactions produce exactly one row.
type Connection struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	User1ID    uuid.UUID  `json:"user1_id" db:"user1_id"`
	User2ID    uuid.UUID  `json:"user2_id" db:"user2_id"`
	ReactionID *uuid.UUID `json:"reaction_id" db:"reaction_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// CanonicalPair orders two user ids lexicographically so that a pair always
// maps to the same (user1, user2) row regardless of who initiated.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}

func (c *Connection) HasUser(userID uuid.UUID) bool {
	return c.User1ID == userID || c.User2ID == userID
}

func (c *Connection) OtherUserID(userID uuid.UUID) (uuid.UUID, bool) {
	if c.User1ID == userID {
		return c.User2ID, true
	}
	if c.User2ID == userID {
		return c.User1ID, true
	}
	return uuid.Nil, false
}

// Conversation is 1:1 with its Connection and created atomically with it.
type Conversation struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ConnectionID  uuid.UUID  `json:"connection_id" db:"connection_id"`
	LastMessageAt *time.Time `json:"last_message_at" db:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
