package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courtside/sportsbuddy/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors become 500 without leaking internals; store outages become
// 503 so clients know the call is retryable.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, services.ErrCannotBuddySelf):
		writeError(w, http.StatusBadRequest, "Cannot send a buddy request to yourself")
	case errors.Is(err, services.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "A pending buddy request already exists")
	case errors.Is(err, services.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Buddy request not found")
	case errors.Is(err, services.ErrRequestResolved):
		writeError(w, http.StatusConflict, "Buddy request is already resolved")
	case errors.Is(err, services.ErrNotBuddies):
		writeError(w, http.StatusForbidden, "You are not buddies with this user")
	case errors.Is(err, services.ErrConversationNotFound):
		writeError(w, http.StatusNotFound, "Conversation not found")
	case errors.Is(err, services.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "You are not a participant of this conversation")
	case errors.Is(err, services.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "Message text is empty")
	case errors.Is(err, services.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, services.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
