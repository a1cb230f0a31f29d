// Package live provides the push-style subscription primitive the stateful
// services use to deliver query snapshots to observers. A Broker carries
// change signals on named topics; a Feed turns a topic plus a snapshot query
// into a stream of full result sets.
package live

import (
	"context"

	"github.com/google/uuid"
)

// Broker fans change signals out to topic subscribers. Signals carry no
// payload: subscribers re-run their snapshot query on every signal.
type Broker interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(ctx context.Context, topic string) (Listener, error)
}

// Listener receives change signals for one topic. Notify is closed when the
// listener shuts down. Close is idempotent.
type Listener interface {
	Notify() <-chan struct{}
	Close() error
}

// IncomingRequestsTopic signals changes to the pending requests addressed to
// a user.
func IncomingRequestsTopic(userID uuid.UUID) string {
	return "live:requests:" + userID.String()
}

// ConversationsTopic signals changes to a user's conversation list, including
// summary updates from new messages.
func ConversationsTopic(userID uuid.UUID) string {
	return "live:conversations:" + userID.String()
}

// MessagesTopic signals appends to one conversation's ledger.
func MessagesTopic(conversationID string) string {
	return "live:messages:" + conversationID
}
