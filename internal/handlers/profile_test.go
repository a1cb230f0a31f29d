package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

func TestProfileHandler_GetSummary(t *testing.T) {
	targetID := uuid.New()
	service := &mockProfileService{
		SummaryFunc: func(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error) {
			if id != targetID {
				t.Fatalf("expected %v, got %v", targetID, id)
			}
			return models.ProfileSummary{ID: id, DisplayName: "Sam", Sports: []string{"padel"}}, nil
		},
	}
	handler := NewProfileHandler(service)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/profiles/"+targetID.String(), nil), testUser(uuid.New()))
	req.SetPathValue("id", targetID.String())
	rr := httptest.NewRecorder()

	handler.GetSummary(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response SummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Profile.DisplayName != "Sam" {
		t.Fatalf("unexpected summary: %+v", response.Profile)
	}
}

func TestProfileHandler_GetSummary_NotFound(t *testing.T) {
	service := &mockProfileService{
		SummaryFunc: func(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error) {
			return models.ProfileSummary{}, services.ErrProfileNotFound
		},
	}
	handler := NewProfileHandler(service)

	targetID := uuid.New()
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/profiles/"+targetID.String(), nil), testUser(uuid.New()))
	req.SetPathValue("id", targetID.String())
	rr := httptest.NewRecorder()

	handler.GetSummary(rr, req)
	assertErrorResponse(t, rr, http.StatusNotFound, "Profile not found")
}

func TestProfileHandler_GetSummary_InvalidID(t *testing.T) {
	handler := NewProfileHandler(&mockProfileService{})

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/profiles/nope", nil), testUser(uuid.New()))
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()

	handler.GetSummary(rr, req)
	assertErrorResponse(t, rr, http.StatusBadRequest, "Invalid profile ID")
}

func TestProfileHandler_ListBuddies(t *testing.T) {
	userID := uuid.New()
	service := &mockProfileService{
		ListBuddiesFunc: func(ctx context.Context, uid uuid.UUID) ([]models.ProfileSummary, error) {
			if uid != userID {
				t.Fatalf("expected %v, got %v", userID, uid)
			}
			return []models.ProfileSummary{{ID: uuid.New(), DisplayName: "Sam"}}, nil
		},
	}
	handler := NewProfileHandler(service)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/buddies", nil), testUser(userID))
	rr := httptest.NewRecorder()

	handler.ListBuddies(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var response BuddyListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(response.Buddies) != 1 {
		t.Fatalf("expected 1 buddy, got %d", len(response.Buddies))
	}
}

func TestProfileHandler_ListBuddies_Unauthenticated(t *testing.T) {
	handler := NewProfileHandler(&mockProfileService{})
	req := httptest.NewRequest(http.MethodGet, "/api/buddies", nil)
	rr := httptest.NewRecorder()

	handler.ListBuddies(rr, req)
	assertErrorResponse(t, rr, http.StatusUnauthorized, "Authentication required")
}
