package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/courtside/sportsbuddy/internal/models"
)

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d", status, rr.Code)
	}
	if ct := rr.Result().Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected content type application/json, got %q", ct)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Error != message {
		t.Fatalf("expected error %q, got %q", message, response.Error)
	}
}

func testUser(id uuid.UUID) *models.UserProfile {
	return &models.UserProfile{
		ID:          id,
		Email:       "user@example.com",
		DisplayName: "Test User",
	}
}

// withUser attaches an authenticated user to the request, the way the auth
// middleware would.
func withUser(r *http.Request, user *models.UserProfile) *http.Request {
	return r.WithContext(SetUserInContext(r.Context(), user))
}
