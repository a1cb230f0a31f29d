package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/courtside/sportsbuddy/internal/models"
)

const profileColumns = `id, email, display_name, location, bio, sports, avatar_url, buddies, password_hash, created_at, updated_at`

// ProfileService owns the user profile records, including the grow-only
// buddies set. The buddy set is only ever mutated through AddBuddy's
// conditional union write.
type ProfileService struct {
	db DB
}

func NewProfileService(db DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Create(ctx context.Context, params models.CreateProfileParams) (*models.UserProfile, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", params.Email).Scan(&exists)
	if err != nil {
		return nil, storeError("checking email existence", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	sports := params.Sports
	if sports == nil {
		sports = []string{}
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO users (email, display_name, location, bio, sports, avatar_url, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+profileColumns,
		params.Email, params.DisplayName, params.Location, params.Bio, sports, params.AvatarURL, params.PasswordHash,
	)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, storeError("creating profile", err)
	}
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	row := s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, id)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storeError("getting profile", err)
	}
	return profile, nil
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	row := s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE email = $1`, email)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storeError("getting profile by email", err)
	}
	return profile, nil
}

// Summary returns the display decoration for one user.
func (s *ProfileService) Summary(ctx context.Context, id uuid.UUID) (models.ProfileSummary, error) {
	var summary models.ProfileSummary
	err := s.db.QueryRow(ctx,
		`SELECT id, display_name, location, sports, avatar_url FROM users WHERE id = $1`,
		id,
	).Scan(&summary.ID, &summary.DisplayName, &summary.Location, &summary.Sports, &summary.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProfileSummary{}, ErrProfileNotFound
	}
	if err != nil {
		return models.ProfileSummary{}, storeError("getting profile summary", err)
	}
	return summary, nil
}

// AddBuddy adds buddyID to userID's buddy set if absent. The write is a
// conditional array union, so retries and concurrent accepts are no-ops
// rather than duplicate entries or lost updates.
func (s *ProfileService) AddBuddy(ctx context.Context, userID, buddyID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users
		 SET buddies = array_append(buddies, $2), updated_at = now()
		 WHERE id = $1 AND NOT ($2 = ANY(buddies))`,
		userID, buddyID,
	)
	if err != nil {
		return storeError("adding buddy", err)
	}
	return nil
}

// IsBuddy reports whether other is in userID's buddy set.
func (s *ProfileService) IsBuddy(ctx context.Context, userID, other uuid.UUID) (bool, error) {
	var isBuddy bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND $2 = ANY(buddies))`,
		userID, other,
	).Scan(&isBuddy)
	if err != nil {
		return false, storeError("checking buddy relation", err)
	}
	return isBuddy, nil
}

// ListBuddies returns profile summaries for every user in userID's buddy set,
// ordered by display name.
func (s *ProfileService) ListBuddies(ctx context.Context, userID uuid.UUID) ([]models.ProfileSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT b.id, b.display_name, b.location, b.sports, b.avatar_url
		 FROM users u
		 JOIN users b ON b.id = ANY(u.buddies)
		 WHERE u.id = $1
		 ORDER BY b.display_name`,
		userID,
	)
	if err != nil {
		return nil, storeError("listing buddies", err)
	}
	defer rows.Close()

	var buddies []models.ProfileSummary
	for rows.Next() {
		var b models.ProfileSummary
		if err := rows.Scan(&b.ID, &b.DisplayName, &b.Location, &b.Sports, &b.AvatarURL); err != nil {
			return nil, storeError("scanning buddy", err)
		}
		buddies = append(buddies, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("listing buddies", err)
	}

	if buddies == nil {
		buddies = []models.ProfileSummary{}
	}
	return buddies, nil
}

func scanProfile(row Row) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.DisplayName, &profile.Location, &profile.Bio,
		&profile.Sports, &profile.AvatarURL, &profile.Buddies, &profile.PasswordHash,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
