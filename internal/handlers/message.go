package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

type MessageHandler struct {
	messageService services.MessageServiceInterface
}

func NewMessageHandler(messageService services.MessageServiceInterface) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	Message *models.Message `json:"message"`
}

type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.messageService.Send(r.Context(), r.PathValue("id"), user.ID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: message})
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	messages, err := h.messageService.MessagesSnapshot(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageListResponse{Messages: messages})
}

// StreamMessages delivers the full ordered transcript as a live SSE feed,
// re-sent after every append.
func (h *MessageHandler) StreamMessages(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	feed, err := h.messageService.StreamMessages(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	streamFeed(w, r, feed)
}
