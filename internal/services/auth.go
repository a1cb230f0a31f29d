package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/sportsbuddy/internal/models"
)

const (
	bcryptCost       = 12
	sessionDuration  = 30 * 24 * time.Hour
	sessionKeyPrefix = "session:"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// SessionStore is the key/value surface sessions live behind. RedisAdapter is
// the production implementation.
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RedisAdapter adapts a go-redis client to the SessionStore interface.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.client.Set(ctx, key, value, ttl).Err()
}

func (a *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	value, err := a.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return value, err
}

func (a *RedisAdapter) Del(ctx context.Context, key string) error {
	return a.client.Del(ctx, key).Err()
}

func (a *RedisAdapter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return a.client.Expire(ctx, key, ttl).Err()
}

// AuthService is the identity layer: it verifies credentials and turns opaque
// session tokens into a current user ID. Everything downstream trusts only
// the ID it resolves, never a caller-supplied one.
type AuthService struct {
	profiles *ProfileService
	sessions SessionStore
}

func NewAuthService(profiles *ProfileService, sessions SessionStore) *AuthService {
	return &AuthService{profiles: profiles, sessions: sessions}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken returns a fresh token and its sha256 hex digest. Only
// the digest is ever stored.
func (s *AuthService) GenerateSessionToken() (token string, hash string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(bytes)
	return token, hashToken(token), nil
}

func (s *AuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	token, tokenHash, err := s.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Set(ctx, sessionKeyPrefix+tokenHash, userID.String(), sessionDuration); err != nil {
		return "", storeError("creating session", err)
	}
	return token, nil
}

// ValidateSession resolves a session token to the profile it belongs to and
// slides the session expiry forward.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.UserProfile, error) {
	key := sessionKeyPrefix + hashToken(token)

	userIDStr, err := s.sessions.Get(ctx, key)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, storeError("looking up session", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session user id: %w", err)
	}

	_ = s.sessions.Expire(ctx, key, sessionDuration)
	return s.profiles.GetByID(ctx, userID)
}

func (s *AuthService) DeleteSession(ctx context.Context, token string) error {
	if err := s.sessions.Del(ctx, sessionKeyPrefix+hashToken(token)); err != nil {
		return storeError("deleting session", err)
	}
	return nil
}

// Login verifies email/password and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !s.VerifyPassword(profile.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.CreateSession(ctx, profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func hashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
