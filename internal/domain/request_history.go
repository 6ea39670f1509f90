package domain

import "time"

// RequestHistory is an immutable audit entry recorded for every status
// transition of a match request.
type RequestHistory struct {
	ID        string
	RequestID string
	ActorID   string
	ActorRole Role
	OldStatus RequestStatus
	NewStatus RequestStatus
	CreatedAt time.Time
}
