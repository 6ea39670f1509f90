package dto

import (
	"time"

	"github.com/spec-kit/mentor-match-service/internal/domain"
)

// CreateMatchRequestRequest payload. The mentee is always the authenticated
// caller; there is deliberately no mentee id field.
type CreateMatchRequestRequest struct {
	MentorID string `json:"mentorId"`
	Message  string `json:"message"`
}

// MatchRequestResponse response body for a single request.
type MatchRequestResponse struct {
	ID        string               `json:"id"`
	MentorID  string               `json:"mentorId"`
	MenteeID  string               `json:"menteeId"`
	Message   string               `json:"message"`
	Status    domain.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// RequestHistoryResponse is one audit entry of a request.
type RequestHistoryResponse struct {
	ID        string               `json:"id"`
	ActorID   string               `json:"actor_id"`
	ActorRole domain.Role          `json:"actor_role"`
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
	CreatedAt time.Time            `json:"created_at"`
}
