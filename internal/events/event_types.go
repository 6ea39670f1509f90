package events

import (
	"time"

	"github.com/spec-kit/mentor-match-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMatchRequestCreated       EventType = "match_request_created"
	EventMatchRequestStatusChanged EventType = "match_request_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MatchRequestCreatedPayload payload.
type MatchRequestCreatedPayload struct {
	MentorID       string `json:"mentor_id"`
	MenteeID       string `json:"mentee_id"`
	MessagePreview string `json:"message_preview"`
}

// MatchRequestStatusChangedPayload payload.
type MatchRequestStatusChangedPayload struct {
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}
