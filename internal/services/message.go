package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

// ConversationReader is the slice of ConversationService the ledger needs for
// participant checks.
type ConversationReader interface {
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
}

// MessageService is the append-only ledger of messages per conversation.
// Messages are immutable once created; order is ascending by server timestamp
// with the per-conversation sequence breaking ties in arrival order.
type MessageService struct {
	db            DB
	conversations ConversationReader
	broker        live.Broker
}

func NewMessageService(db DB, conversations ConversationReader, broker live.Broker) *MessageService {
	return &MessageService{db: db, conversations: conversations, broker: broker}
}

// Send validates and appends a message, then mirrors it into the parent
// conversation's summary fields. The append and the summary update are two
// writes; a failure between them leaves the summary one message behind until
// the next send, which the feed refetch papers over.
func (s *MessageService) Send(ctx context.Context, conversationID string, senderID uuid.UUID, text string) (*models.Message, error) {
	if senderID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	body := strings.TrimSpace(text)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	// Claim the next sequence number from the parent row. The counter is
	// server-side and monotonic, so arrival order at the ledger wins ties
	// regardless of client clocks.
	var seq int64
	err = s.db.QueryRow(ctx,
		`UPDATE conversations SET last_seq = last_seq + 1 WHERE id = $1 RETURNING last_seq`,
		conversationID,
	).Scan(&seq)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, storeError("claiming message sequence", err)
	}

	message := &models.Message{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, seq, sender_id, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, conversation_id, seq, sender_id, body, created_at`,
		conversationID, seq, senderID, body,
	).Scan(&message.ID, &message.ConversationID, &message.Seq, &message.SenderID, &message.Body, &message.CreatedAt)
	if err != nil {
		return nil, storeError("appending message", err)
	}

	// Guarded on the claimed seq: a slower concurrent send with an older
	// message matches zero rows instead of clobbering a newer summary.
	_, err = s.db.Exec(ctx,
		`UPDATE conversations
		 SET last_message = $2, last_message_at = $3, last_message_by = $4, last_message_seq = $5
		 WHERE id = $1 AND last_message_seq < $5`,
		conversationID, message.Body, message.CreatedAt, message.SenderID, seq,
	)
	if err != nil {
		return nil, storeError("updating conversation summary", err)
	}

	s.publish(ctx, live.MessagesTopic(conversationID))
	s.publish(ctx, live.ConversationsTopic(conversation.ParticipantA))
	s.publish(ctx, live.ConversationsTopic(conversation.ParticipantB))
	return message, nil
}

// StreamMessages opens a live feed of the conversation's messages in ledger
// order. Only participants may subscribe.
func (s *MessageService) StreamMessages(ctx context.Context, conversationID string, userID uuid.UUID) (*live.Feed[[]models.Message], error) {
	if err := s.authorize(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return live.Open(ctx, s.broker, live.MessagesTopic(conversationID), func(ctx context.Context) ([]models.Message, error) {
		return s.fetchMessages(ctx, conversationID)
	})
}

// MessagesSnapshot returns the conversation's messages in ledger order. Only
// participants may read.
func (s *MessageService) MessagesSnapshot(ctx context.Context, conversationID string, userID uuid.UUID) ([]models.Message, error) {
	if err := s.authorize(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.fetchMessages(ctx, conversationID)
}

func (s *MessageService) authorize(ctx context.Context, conversationID string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(userID) {
		return ErrNotParticipant
	}
	return nil
}

func (s *MessageService) fetchMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, conversation_id, seq, sender_id, body, created_at
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY created_at ASC, seq ASC`,
		conversationID,
	)
	if err != nil {
		return nil, storeError("listing messages", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Seq, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, storeError("scanning message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("listing messages", err)
	}

	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

func (s *MessageService) publish(ctx context.Context, topic string) {
	_ = s.broker.Publish(ctx, topic)
}
