package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/models"
)

const requestColumns = `id, from_user, to_user, status, created_at, accepted_at, rejected_at`

// BuddyWriter is the slice of ProfileService the connection manager needs to
// establish the symmetric relation.
type BuddyWriter interface {
	AddBuddy(ctx context.Context, userID, buddyID uuid.UUID) error
}

// ConnectionService owns the buddy request lifecycle: pending requests move
// exactly once to accepted or rejected, and an accept unions each user into
// the other's buddy set.
type ConnectionService struct {
	db       DB
	profiles BuddyWriter
	broker   live.Broker
}

func NewConnectionService(db DB, profiles BuddyWriter, broker live.Broker) *ConnectionService {
	return &ConnectionService{db: db, profiles: profiles, broker: broker}
}

// SendRequest creates a pending request from one user to another. The
// duplicate check and the insert are two separate store operations; two
// near-simultaneous sends can both pass the check, which is why accept and
// reject resolve strictly by request ID and never assume pair uniqueness.
func (s *ConnectionService) SendRequest(ctx context.Context, from, to uuid.UUID) (*models.BuddyRequest, error) {
	if from == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if from == to {
		return nil, ErrCannotBuddySelf
	}

	var pending bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM buddy_requests
			WHERE from_user = $1 AND to_user = $2 AND status = 'pending'
		)`,
		from, to,
	).Scan(&pending)
	if err != nil {
		return nil, storeError("checking pending request", err)
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO buddy_requests (from_user, to_user, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING `+requestColumns,
		from, to,
	)
	request, err := scanRequest(row)
	if isForeignKeyViolation(err) {
		// The to_user reference failed: no such profile.
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, storeError("creating buddy request", err)
	}

	s.publish(ctx, live.IncomingRequestsTopic(to))
	return request, nil
}

// AcceptRequest flips the request to accepted, then adds each user to the
// other's buddy set. The two profile writes are independent; if the second
// fails the call reports the failure even though the status flip already
// stuck. That window is a documented limitation, not silently patched.
func (s *ConnectionService) AcceptRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error) {
	request, err := s.getForRecipient(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	if request.Resolved() {
		return nil, ErrRequestResolved
	}

	// Conditional write: a concurrent resolve leaves zero rows affected.
	row := s.db.QueryRow(ctx,
		`UPDATE buddy_requests
		 SET status = 'accepted', accepted_at = now()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+requestColumns,
		requestID,
	)
	request, err = scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestResolved
	}
	if err != nil {
		return nil, storeError("accepting buddy request", err)
	}

	if err := s.profiles.AddBuddy(ctx, request.To, request.From); err != nil {
		return nil, err
	}
	if err := s.profiles.AddBuddy(ctx, request.From, request.To); err != nil {
		return nil, err
	}

	s.publish(ctx, live.IncomingRequestsTopic(request.To))
	return request, nil
}

// RejectRequest flips the request to rejected. No profile mutation.
func (s *ConnectionService) RejectRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error) {
	request, err := s.getForRecipient(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	if request.Resolved() {
		return nil, ErrRequestResolved
	}

	row := s.db.QueryRow(ctx,
		`UPDATE buddy_requests
		 SET status = 'rejected', rejected_at = now()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+requestColumns,
		requestID,
	)
	request, err = scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestResolved
	}
	if err != nil {
		return nil, storeError("rejecting buddy request", err)
	}

	s.publish(ctx, live.IncomingRequestsTopic(request.To))
	return request, nil
}

// ListIncoming opens a live feed of the pending requests addressed to userID,
// each joined with the sender's profile summary. The caller owns the feed and
// must Close it on every exit path.
func (s *ConnectionService) ListIncoming(ctx context.Context, userID uuid.UUID) (*live.Feed[[]models.IncomingRequest], error) {
	return live.Open(ctx, s.broker, live.IncomingRequestsTopic(userID), func(ctx context.Context) ([]models.IncomingRequest, error) {
		return s.fetchIncoming(ctx, userID)
	})
}

// IncomingSnapshot returns the current pending requests addressed to userID.
func (s *ConnectionService) IncomingSnapshot(ctx context.Context, userID uuid.UUID) ([]models.IncomingRequest, error) {
	return s.fetchIncoming(ctx, userID)
}

func (s *ConnectionService) fetchIncoming(ctx context.Context, userID uuid.UUID) ([]models.IncomingRequest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.from_user, r.to_user, r.status, r.created_at, r.accepted_at, r.rejected_at,
		        u.id, u.display_name, u.location, u.sports, u.avatar_url
		 FROM buddy_requests r
		 JOIN users u ON u.id = r.from_user
		 WHERE r.to_user = $1 AND r.status = 'pending'
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, storeError("listing incoming requests", err)
	}
	defer rows.Close()

	var requests []models.IncomingRequest
	for rows.Next() {
		var r models.IncomingRequest
		err := rows.Scan(
			&r.ID, &r.From, &r.To, &r.Status, &r.CreatedAt, &r.AcceptedAt, &r.RejectedAt,
			&r.Sender.ID, &r.Sender.DisplayName, &r.Sender.Location, &r.Sender.Sports, &r.Sender.AvatarURL,
		)
		if err != nil {
			return nil, storeError("scanning incoming request", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("listing incoming requests", err)
	}

	if requests == nil {
		requests = []models.IncomingRequest{}
	}
	return requests, nil
}

// ListOutgoingPendingTargets returns the user IDs that userID currently has a
// pending outbound request toward. The UI uses it to render "request sent";
// the authoritative duplicate check stays in SendRequest.
func (s *ConnectionService) ListOutgoingPendingTargets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT to_user FROM buddy_requests
		 WHERE from_user = $1 AND status = 'pending'`,
		userID,
	)
	if err != nil {
		return nil, storeError("listing outgoing targets", err)
	}
	defer rows.Close()

	var targets []uuid.UUID
	for rows.Next() {
		var target uuid.UUID
		if err := rows.Scan(&target); err != nil {
			return nil, storeError("scanning outgoing target", err)
		}
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("listing outgoing targets", err)
	}

	if targets == nil {
		targets = []uuid.UUID{}
	}
	return targets, nil
}

func (s *ConnectionService) getForRecipient(ctx context.Context, requestID, userID uuid.UUID) (*models.BuddyRequest, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	row := s.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM buddy_requests WHERE id = $1`,
		requestID,
	)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, storeError("getting buddy request", err)
	}

	// Recipient-only visibility: anyone else gets not-found, not forbidden.
	if request.To != userID {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

func (s *ConnectionService) publish(ctx context.Context, topic string) {
	// Fan-out is best effort: a missed signal only delays the next snapshot,
	// it does not lose data.
	_ = s.broker.Publish(ctx, topic)
}

func scanRequest(row Row) (*models.BuddyRequest, error) {
	request := &models.BuddyRequest{}
	err := row.Scan(
		&request.ID, &request.From, &request.To, &request.Status,
		&request.CreatedAt, &request.AcceptedAt, &request.RejectedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}
