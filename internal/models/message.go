package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one immutable entry in a conversation's ledger. Seq is assigned
// by the ledger from the parent conversation's counter and breaks ordering
// ties when two server timestamps collide.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Seq            int64     `json:"seq"`
	SenderID       uuid.UUID `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
