package domain

import "time"

// RequestStatus enumerates the lifecycle states of a match request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// allowedTransitions is the single transition table for the lifecycle.
// Every state other than pending is terminal.
var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusAccepted, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusAccepted:  {},
	RequestStatusRejected:  {},
	RequestStatusCancelled: {},
}

// Valid reports whether the status is a known lifecycle state.
func (s RequestStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is permitted.
func (s RequestStatus) IsTerminal() bool {
	return s.Valid() && len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition is legal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// MatchRequest is the unit of negotiation between a mentee and a mentor.
// It is owned exclusively by the (MentorID, MenteeID) pair and is never
// deleted, only state-transitioned.
type MatchRequest struct {
	ID        string
	MentorID  string
	MenteeID  string
	Message   string
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
