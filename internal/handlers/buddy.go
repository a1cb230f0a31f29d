package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

type BuddyHandler struct {
	connectionService services.ConnectionServiceInterface
}

func NewBuddyHandler(connectionService services.ConnectionServiceInterface) *BuddyHandler {
	return &BuddyHandler{connectionService: connectionService}
}

type SendRequestRequest struct {
	To string `json:"to"`
}

type RequestResponse struct {
	Request *models.BuddyRequest `json:"request"`
}

type IncomingRequestsResponse struct {
	Requests []models.IncomingRequest `json:"requests"`
}

type OutgoingTargetsResponse struct {
	Targets []uuid.UUID `json:"targets"`
}

func (h *BuddyHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	to, err := uuid.Parse(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	request, err := h.connectionService.SendRequest(r.Context(), user.ID, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RequestResponse{Request: request})
}

func (h *BuddyHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.connectionService.AcceptRequest)
}

func (h *BuddyHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.connectionService.RejectRequest)
}

func (h *BuddyHandler) resolveRequest(w http.ResponseWriter, r *http.Request, resolve func(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error)) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	request, err := resolve(r.Context(), requestID, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RequestResponse{Request: request})
}

func (h *BuddyHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.connectionService.IncomingSnapshot(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IncomingRequestsResponse{Requests: requests})
}

// StreamIncoming delivers the pending-request list as a live SSE feed: one
// full snapshot immediately, then a fresh one after every change.
func (h *BuddyHandler) StreamIncoming(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	feed, err := h.connectionService.ListIncoming(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	streamFeed(w, r, feed)
}

func (h *BuddyHandler) ListOutgoingTargets(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targets, err := h.connectionService.ListOutgoingPendingTargets(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OutgoingTargetsResponse{Targets: targets})
}
