package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/courtside/sportsbuddy/internal/models"
	"github.com/courtside/sportsbuddy/internal/services"
)

const sessionCookieName = "session_token"

type AuthHandler struct {
	profileService services.ProfileServiceInterface
	authService    services.AuthServiceInterface
	secureCookies  bool
}

func NewAuthHandler(profileService services.ProfileServiceInterface, authService services.AuthServiceInterface, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		profileService: profileService,
		authService:    authService,
		secureCookies:  secureCookies,
	}
}

type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	DisplayName string   `json:"display_name"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Sports      []string `json:"sports"`
	AvatarURL   string   `json:"avatar_url"`
}

type AuthResponse struct {
	Profile *models.UserProfile `json:"profile"`
	Token   string              `json:"token,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "Email and display name are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	profile, err := h.profileService.Create(r.Context(), models.CreateProfileParams{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		Location:     req.Location,
		Bio:          req.Bio,
		Sports:       req.Sports,
		AvatarURL:    req.AvatarURL,
		PasswordHash: hash,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.authService.CreateSession(r.Context(), profile.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, AuthResponse{Profile: profile, Token: token})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, token, err := h.authService.Login(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, AuthResponse{Profile: profile, Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		_ = h.authService.DeleteSession(r.Context(), cookie.Value)
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		_ = h.authService.DeleteSession(r.Context(), strings.TrimPrefix(auth, "Bearer "))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Profile: user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
