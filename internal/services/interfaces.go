package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

// ProfileServiceInterface defines the contract for profile operations.
type ProfileServiceInterface interface {
	Create(ctx context.Context, params models.CreateProfileParams) (*models.UserProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Summary(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error)
	AddBuddy(ctx context.Context, userID, buddyID uuid.UUID) error
	IsBuddy(ctx context.Context, userID, other uuid.UUID) (bool, error)
	ListBuddies(ctx context.Context, userID uuid.UUID) ([]models.ProfileSummary, error)
}

// AuthServiceInterface defines the contract for the identity layer.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSession(ctx context.Context, token string) (*models.UserProfile, error)
	DeleteSession(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (*models.UserProfile, string, error)
}

// ConnectionServiceInterface defines the contract for the buddy request
// lifecycle.
type ConnectionServiceInterface interface {
	SendRequest(ctx context.Context, from, to uuid.UUID) (*models.BuddyRequest, error)
	AcceptRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error)
	RejectRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error)
	ListIncoming(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.IncomingRequest], error)
	IncomingSnapshot(ctx context.Context, userID uuid.UUID) ([]models.IncomingRequest, error)
	ListOutgoingPendingTargets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ConversationServiceInterface defines the contract for the conversation
// registry.
type ConversationServiceInterface interface {
	EnsureConversation(ctx context.Context, userID, other uuid.UUID) (*models.Conversation, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListConversationsFor(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.ConversationView], error)
	ConversationsSnapshot(ctx context.Context, userID uuid.UUID) ([]models.ConversationView, error)
}

// MessageServiceInterface defines the contract for the message ledger.
type MessageServiceInterface interface {
	Send(ctx context.Context, conversationID string, senderID uuid.UUID, text string) (*models.Message, error)
	StreamMessages(ctx context.Context, conversationID string, userID uuid.UUID) (*live.Feed[[]models.Message], error)
	MessagesSnapshot(ctx context.Context, conversationID string, userID uuid.UUID) ([]models.Message, error)
}
