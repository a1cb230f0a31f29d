package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

type ConversationHandler struct {
	conversationService services.ConversationServiceInterface
}

func NewConversationHandler(conversationService services.ConversationServiceInterface) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

type EnsureConversationRequest struct {
	With string `json:"with"`
}

type ConversationResponse struct {
	Conversation *models.Conversation `json:"conversation"`
}

type ConversationListResponse struct {
	Conversations []models.ConversationView `json:"conversations"`
}

// EnsureConversation opens the conversation with another buddy, creating it
// on first use. Calling it again returns the same conversation untouched.
func (h *ConversationHandler) EnsureConversation(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req EnsureConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	with, err := uuid.Parse(req.With)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	conversation, err := h.conversationService.EnsureConversation(r.Context(), user.ID, with)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConversationResponse{Conversation: conversation})
}

func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conversations, err := h.conversationService.ConversationsSnapshot(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConversationListResponse{Conversations: conversations})
}

// StreamConversations delivers the caller's conversation list as a live SSE
// feed, re-sent whenever any of their conversations changes.
func (h *ConversationHandler) StreamConversations(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	feed, err := h.conversationService.ListConversationsFor(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	streamFeed(w, r, feed)
}
