package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileServiceInterface
}

func NewProfileHandler(profileService services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type SummaryResponse struct {
	Profile models.ProfileSummary `json:"profile"`
}

type BuddyListResponse struct {
	Buddies []models.ProfileSummary `json:"buddies"`
}

// GetSummary returns the display summary for any user. Read-only; full
// profiles stay private to their owner.
func (h *ProfileHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	summary, err := h.profileService.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Profile: summary})
}

// ListBuddies returns the caller's accepted buddies with display summaries.
func (h *ProfileHandler) ListBuddies(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	buddies, err := h.profileService.ListBuddies(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuddyListResponse{Buddies: buddies})
}
