package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestAssertHelpers(t *testing.T) {
	AssertEqual(t, 1, 1, "equal")
	AssertTrue(t, true, "true")
	AssertNoError(t, nil, "no error")
	AssertError(t, http.ErrAbortHandler, "error")
	AssertContains(t, "hello", "ell", "contains")
}

func TestNewTestRequestWithJSON(t *testing.T) {
	req := NewTestRequestWithJSON(t, http.MethodPost, "/path", map[string]string{"ok": "yes"})
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type json, got %q", ct)
	}
}

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodPost, "/path", bytes.NewBufferString("{}"))
	if req.Method != http.MethodPost {
		t.Fatalf("expected method POST, got %s", req.Method)
	}
}

func TestAssertStatusCode(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteHeader(http.StatusCreated)
	AssertStatusCode(t, rr, http.StatusCreated)
}

func TestDecodeJSON(t *testing.T) {
	var dest struct {
		OK bool `json:"ok"`
	}
	DecodeJSON(t, []byte(`{"ok":true}`), &dest)
	if !dest.OK {
		t.Fatal("expected ok=true")
	}

	got := ParseJSONResponse(t, []byte(`{"ok":"yes"}`))
	if got["ok"] != "yes" {
		t.Fatalf("expected ok=yes, got %v", got["ok"])
	}
}

func TestRandomHelpers(t *testing.T) {
	if RandomUUID() == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if RandomEmail() == "" {
		t.Fatal("expected email")
	}
}
