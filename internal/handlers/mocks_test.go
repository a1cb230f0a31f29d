package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

type mockProfileService struct {
	CreateFunc      func(ctx context.Context, params models.CreateProfileParams) (*models.UserProfile, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*models.UserProfile, error)
	SummaryFunc     func(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error)
	AddBuddyFunc    func(ctx context.Context, userID, buddyID uuid.UUID) error
	IsBuddyFunc     func(ctx context.Context, userID, other uuid.UUID) (bool, error)
	ListBuddiesFunc func(ctx context.Context, userID uuid.UUID) ([]models.ProfileSummary, error)
}

func (m *mockProfileService) Create(ctx context.Context, params models.CreateProfileParams) (*models.UserProfile, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileService) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileService) Summary(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, id)
	}
	return models.ProfileSummary{}, nil
}

func (m *mockProfileService) AddBuddy(ctx context.Context, userID, buddyID uuid.UUID) error {
	if m.AddBuddyFunc != nil {
		return m.AddBuddyFunc(ctx, userID, buddyID)
	}
	return nil
}

func (m *mockProfileService) IsBuddy(ctx context.Context, userID, other uuid.UUID) (bool, error) {
	if m.IsBuddyFunc != nil {
		return m.IsBuddyFunc(ctx, userID, other)
	}
	return false, nil
}

func (m *mockProfileService) ListBuddies(ctx context.Context, userID uuid.UUID) ([]models.ProfileSummary, error) {
	if m.ListBuddiesFunc != nil {
		return m.ListBuddiesFunc(ctx, userID)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	VerifyPasswordFunc  func(hash, password string) bool
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.UserProfile, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
	LoginFunc           func(ctx context.Context, email, password string) (*models.UserProfile, string, error)
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed", nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return false
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.UserProfile, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, "", nil
}

type mockConnectionService struct {
	SendRequestFunc                func(ctx context.Context, from, to uuid.UUID) (*models.BuddyRequest, error)
	AcceptRequestFunc              func(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error)
	RejectRequestFunc              func(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error)
	ListIncomingFunc               func(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.IncomingRequest], error)
	IncomingSnapshotFunc           func(ctx context.Context, userID uuid.UUID) ([]models.IncomingRequest, error)
	ListOutgoingPendingTargetsFunc func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockConnectionService) SendRequest(ctx context.Context, from, to uuid.UUID) (*models.BuddyRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockConnectionService) AcceptRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, requestID, userID)
	}
	return nil, nil
}

func (m *mockConnectionService) RejectRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error) {
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(ctx, requestID, userID)
	}
	return nil, nil
}

func (m *mockConnectionService) ListIncoming(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.IncomingRequest], error) {
	if m.ListIncomingFunc != nil {
		return m.ListIncomingFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConnectionService) IncomingSnapshot(ctx context.Context, userID uuid.UUID) ([]models.IncomingRequest, error) {
	if m.IncomingSnapshotFunc != nil {
		return m.IncomingSnapshotFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConnectionService) ListOutgoingPendingTargets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.ListOutgoingPendingTargetsFunc != nil {
		return m.ListOutgoingPendingTargetsFunc(ctx, userID)
	}
	return nil, nil
}

type mockConversationService struct {
	EnsureConversationFunc    func(ctx context.Context, userID, other uuid.UUID) (*models.Conversation, error)
	GetByIDFunc               func(ctx context.Context, id string) (*models.Conversation, error)
	ListConversationsForFunc  func(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.ConversationView], error)
	ConversationsSnapshotFunc func(ctx context.Context, userID uuid.UUID) ([]models.ConversationView, error)
}

func (m *mockConversationService) EnsureConversation(ctx context.Context, userID, other uuid.UUID) (*models.Conversation, error) {
	if m.EnsureConversationFunc != nil {
		return m.EnsureConversationFunc(ctx, userID, other)
	}
	return nil, nil
}

func (m *mockConversationService) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockConversationService) ListConversationsFor(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.ConversationView], error) {
	if m.ListConversationsForFunc != nil {
		return m.ListConversationsForFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockConversationService) ConversationsSnapshot(ctx context.Context, userID uuid.UUID) ([]models.ConversationView, error) {
	if m.ConversationsSnapshotFunc != nil {
		return m.ConversationsSnapshotFunc(ctx, userID)
	}
	return nil, nil
}

type mockMessageService struct {
	SendFunc             func(ctx context.Context, conversationID string, senderID uuid.UUID, text string) (*models.Message, error)
	StreamMessagesFunc   func(ctx context.Context, conversationID string, userID uuid.UUID) (*live.Feed[[]models.Message], error)
	MessagesSnapshotFunc func(ctx context.Context, conversationID string, userID uuid.UUID) ([]models.Message, error)
}

func (m *mockMessageService) Send(ctx context.Context, conversationID string, senderID uuid.UUID, text string) (*models.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, conversationID, senderID, text)
	}
	return nil, nil
}

func (m *mockMessageService) StreamMessages(ctx context.Context, conversationID string, userID uuid.UUID) (*live.Feed[[]models.Message], error) {
	if m.StreamMessagesFunc != nil {
		return m.StreamMessagesFunc(ctx, conversationID, userID)
	}
	return nil, nil
}

func (m *mockMessageService) MessagesSnapshot(ctx context.Context, conversationID string, userID uuid.UUID) ([]models.Message, error) {
	if m.MessagesSnapshotFunc != nil {
		return m.MessagesSnapshotFunc(ctx, conversationID, userID)
	}
	return nil, nil
}
