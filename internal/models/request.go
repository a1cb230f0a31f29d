package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// BuddyRequest is a directed proposal from one user to another. It transitions
// exactly once from pending to a terminal state and is never reopened or
// deleted.
type BuddyRequest struct {
	ID         uuid.UUID     `json:"id"`
	From       uuid.UUID     `json:"from"`
	To         uuid.UUID     `json:"to"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	AcceptedAt *time.Time    `json:"accepted_at,omitempty"`
	RejectedAt *time.Time    `json:"rejected_at,omitempty"`
}

// Resolved reports whether the request has reached a terminal state.
func (r *BuddyRequest) Resolved() bool {
	return r.Status != RequestStatusPending
}

// IncomingRequest is a pending request joined with the sender's profile
// summary for display.
type IncomingRequest struct {
	BuddyRequest
	Sender ProfileSummary `json:"sender"`
}
