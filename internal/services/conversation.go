package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

const conversationColumns = `id, participant_a, participant_b, last_message, last_message_at, last_message_by, last_seq, created_at`

// ConversationIDFor derives the canonical conversation ID for an unordered
// user pair: the two IDs sorted lexicographically, joined with "_". Both
// participants compute the same ID independently, so at most one record can
// exist per pair.
func ConversationIDFor(a, b uuid.UUID) string {
	as, bs := a.String(), b.String()
	if bs < as {
		as, bs = bs, as
	}
	return as + "_" + bs
}

// BuddyChecker is the slice of ProfileService the registry needs for the
// creation gate.
type BuddyChecker interface {
	IsBuddy(ctx context.Context, userID, other uuid.UUID) (bool, error)
}

// ConversationService creates and lists 1:1 conversations. Creation is gated
// on the buddy relation; the gate is not re-checked after creation.
type ConversationService struct {
	db       DB
	profiles BuddyChecker
	broker   live.Broker
}

func NewConversationService(db DB, profiles BuddyChecker, broker live.Broker) *ConversationService {
	return &ConversationService{db: db, profiles: profiles, broker: broker}
}

// EnsureConversation returns the conversation between userID and other,
// creating it on first authorized contact. Safe to call concurrently from
// both sides: the deterministic ID plus an insert-if-absent write makes the
// losing creation a harmless no-op.
func (s *ConversationService) EnsureConversation(ctx context.Context, userID, other uuid.UUID) (*models.Conversation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if userID == other {
		return nil, ErrNotBuddies
	}

	id := ConversationIDFor(userID, other)

	conversation, err := s.GetByID(ctx, id)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, ErrConversationNotFound) {
		return nil, err
	}

	isBuddy, err := s.profiles.IsBuddy(ctx, userID, other)
	if err != nil {
		return nil, err
	}
	if !isBuddy {
		return nil, ErrNotBuddies
	}

	// Store participants in the same order the ID sorts them so both racing
	// creators write an identical row.
	a, b := userID, other
	if b.String() < a.String() {
		a, b = b, a
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO conversations (id, participant_a, participant_b)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		id, a, b,
	)
	if err != nil {
		return nil, storeError("creating conversation", err)
	}

	conversation, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, live.ConversationsTopic(userID))
	s.publish(ctx, live.ConversationsTopic(other))
	return conversation, nil
}

func (s *ConversationService) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`,
		id,
	)
	conversation, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, storeError("getting conversation", err)
	}
	return conversation, nil
}

// ListConversationsFor opens a live feed of userID's conversations ordered by
// most recent activity, each joined with the other participant's summary.
func (s *ConversationService) ListConversationsFor(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.ConversationView], error) {
	return live.Open(ctx, s.broker, live.ConversationsTopic(userID), func(ctx context.Context) ([]models.ConversationView, error) {
		return s.fetchConversations(ctx, userID)
	})
}

// ConversationsSnapshot returns the current conversation list for userID.
func (s *ConversationService) ConversationsSnapshot(ctx context.Context, userID uuid.UUID) ([]models.ConversationView, error) {
	return s.fetchConversations(ctx, userID)
}

func (s *ConversationService) fetchConversations(ctx context.Context, userID uuid.UUID) ([]models.ConversationView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT c.id, c.participant_a, c.participant_b, c.last_message, c.last_message_at, c.last_message_by, c.last_seq, c.created_at,
		        u.id, u.display_name, u.location, u.sports, u.avatar_url
		 FROM conversations c
		 JOIN users u ON u.id = CASE WHEN c.participant_a = $1 THEN c.participant_b ELSE c.participant_a END
		 WHERE c.participant_a = $1 OR c.participant_b = $1
		 ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, storeError("listing conversations", err)
	}
	defer rows.Close()

	var views []models.ConversationView
	for rows.Next() {
		var v models.ConversationView
		err := rows.Scan(
			&v.ID, &v.ParticipantA, &v.ParticipantB, &v.LastMessage, &v.LastMessageAt, &v.LastMessageBy, &v.LastSeq, &v.CreatedAt,
			&v.Other.ID, &v.Other.DisplayName, &v.Other.Location, &v.Other.Sports, &v.Other.AvatarURL,
		)
		if err != nil {
			return nil, storeError("scanning conversation", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("listing conversations", err)
	}

	if views == nil {
		views = []models.ConversationView{}
	}
	return views, nil
}

func (s *ConversationService) publish(ctx context.Context, topic string) {
	_ = s.broker.Publish(ctx, topic)
}

func scanConversation(row Row) (*models.Conversation, error) {
	conversation := &models.Conversation{}
	err := row.Scan(
		&conversation.ID, &conversation.ParticipantA, &conversation.ParticipantB,
		&conversation.LastMessage, &conversation.LastMessageAt, &conversation.LastMessageBy,
		&conversation.LastSeq, &conversation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return conversation, nil
}
