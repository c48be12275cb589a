// Package audit captures compliance-relevant actions: consent changes and
// account erasure lifecycle. Events are appended synchronously on the
// critical path; an erasure that cannot be audited must not proceed.
package audit

import (
	"context"
	"time"

	id "vorsorge/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	UserID    id.UserID
	Action    Action
	// Subject qualifies the action, e.g. the consent category or the owned
	// collection affected.
	Subject string
	// Decision and Reason capture the outcome for actions that can fail
	// partially, such as erasure stages.
	Decision string
	Reason   string
	// RequestID correlates the event with the HTTP request that caused it.
	RequestID string
}

// Action enumerates the audited actions.
type Action string

const (
	ActionConsentRecorded      Action = "consent_recorded"
	ActionErasureRequested     Action = "erasure_requested"
	ActionErasurePurgeFailed   Action = "erasure_purge_failed"
	ActionErasureCompleted     Action = "erasure_completed"
	ActionErasurePartialFailed Action = "erasure_partially_failed"
)

// Store persists audit events. Implementations must be safe for concurrent
// use.
type Store interface {
	Append(ctx context.Context, event Event) error
}
