package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthenticated      = errors.New("caller has no valid identity")
	ErrCannotBuddySelf      = errors.New("cannot send a buddy request to yourself")
	ErrDuplicateRequest     = errors.New("a pending buddy request already exists")
	ErrRequestNotFound      = errors.New("buddy request not found")
	ErrRequestResolved      = errors.New("buddy request is no longer pending")
	ErrNotBuddies           = errors.New("users are not buddies")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("sender is not a participant of the conversation")
	ErrEmptyMessage         = errors.New("message text is empty")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")

	// ErrStoreUnavailable marks failures of the underlying store. Unlike the
	// validation errors above it is retryable with backoff by the caller; the
	// services themselves never retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeError tags a store failure as retryable while keeping the cause in the
// message. errors.Is(err, ErrStoreUnavailable) holds for the result.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}

// isForeignKeyViolation reports whether Postgres rejected a write because a
// referenced row does not exist (SQLSTATE 23503). Unlike an outage this fails
// the same way on every retry, so callers must not tag it ErrStoreUnavailable.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
