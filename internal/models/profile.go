package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserProfile is the per-user record backing the buddy relation. The Buddies
// slice is a grow-only set: it is only ever mutated through conditional
// add-if-absent writes, never overwritten wholesale.
type UserProfile struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name"`
	Location     string      `json:"location"`
	Bio          string      `json:"bio"`
	Sports       []string    `json:"sports"`
	AvatarURL    string      `json:"avatar_url"`
	Buddies      []uuid.UUID `json:"buddies"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// HasBuddy reports whether other is in the profile's buddy set.
func (p *UserProfile) HasBuddy(other uuid.UUID) bool {
	for _, id := range p.Buddies {
		if id == other {
			return true
		}
	}
	return false
}

// ProfileSummary is the read-only decoration attached to requests and
// conversations for display.
type ProfileSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Location    string    `json:"location"`
	Sports      []string  `json:"sports"`
	AvatarURL   string    `json:"avatar_url"`
}

type CreateProfileParams struct {
	DisplayName  string
	Location     string
	Bio          string
	Sports       []string
	AvatarURL    string
	Email        string
	PasswordHash string
}

// Validate enforces the schema at the store boundary so nothing untyped or
// half-filled travels further up.
func (p *CreateProfileParams) Validate() error {
	if p.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if p.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}
