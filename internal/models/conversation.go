package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a 1:1 thread keyed by the deterministic ID derived from its
// unordered participant pair. The LastMessage* fields are a denormalized
// summary of the most recent message; LastSeq is the per-conversation message
// counter used for ordering tie-breaks.
type Conversation struct {
	ID            string     `json:"id"`
	ParticipantA  uuid.UUID  `json:"participant_a"`
	ParticipantB  uuid.UUID  `json:"participant_b"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	LastMessageBy *uuid.UUID `json:"last_message_by,omitempty"`
	LastSeq       int64      `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasParticipant reports whether id is one of the two participants.
func (c *Conversation) HasParticipant(id uuid.UUID) bool {
	return c.ParticipantA == id || c.ParticipantB == id
}

// OtherParticipant returns the participant that is not id. Callers must check
// membership first.
func (c *Conversation) OtherParticipant(id uuid.UUID) uuid.UUID {
	if c.ParticipantA == id {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// ConversationView is a conversation joined with the other participant's
// profile summary for display.
type ConversationView struct {
	Conversation
	Other ProfileSummary `json:"other"`
}
