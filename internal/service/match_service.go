package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/events"
	"github.com/spec-kit/mentor-match-service/internal/repository"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// MatchService owns the match request lifecycle: creation, the three
// terminal transitions and the per-caller listings. All permission checks go
// through the gate; all transitions go through the repository's conditional
// update so concurrent actors cannot both win.
type MatchService struct {
	requests   repository.MatchRequestRepository
	profiles   repository.ProfileRepository
	history    repository.RequestHistoryRepository
	gate       *auth.Gate
	dispatcher events.Dispatcher
}

// MatchDependencies bundles collaborators for the match service.
type MatchDependencies struct {
	RequestRepo repository.MatchRequestRepository
	ProfileRepo repository.ProfileRepository
	HistoryRepo repository.RequestHistoryRepository
	Gate        *auth.Gate
	Dispatcher  events.Dispatcher
}

// NewMatchService constructs the service.
func NewMatchService(deps MatchDependencies) *MatchService {
	return &MatchService{
		requests:   deps.RequestRepo,
		profiles:   deps.ProfileRepo,
		history:    deps.HistoryRepo,
		gate:       deps.Gate,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new pending request from the acting mentee to the mentor.
// The mentee id always comes from the verified identity, never the payload.
func (s *MatchService) Create(ctx context.Context, identity domain.Identity, mentorID, message string) (*domain.MatchRequest, error) {
	if err := s.gate.Authorize(identity, auth.ActionCreateRequest, auth.Target{}); err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message must not be empty", nil)
	}

	if _, err := s.profiles.GetMentor(ctx, mentorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("mentor", map[string]any{"mentor_id": mentorID})
		}
		return nil, apperrors.MapError(err)
	}

	// At most one open pending request per (mentor, mentee) pair. The
	// partial unique index backs this up against racing creates.
	pending, err := s.requests.HasPendingForPair(ctx, mentorID, identity.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if pending {
		return nil, apperrors.NewConflict("a pending request for this mentor already exists", nil)
	}

	request := &domain.MatchRequest{
		MentorID: mentorID,
		MenteeID: identity.UserID,
		Message:  message,
		Status:   domain.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("a pending request for this mentor already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMatchRequestCreated,
		RequestID: request.ID,
		Actor:     events.Actor{UserID: identity.UserID, Role: identity.Role},
		Payload: events.MatchRequestCreatedPayload{
			MentorID:       request.MentorID,
			MenteeID:       request.MenteeID,
			MessagePreview: stringPreview(request.Message, 120),
		},
	})
	return request, nil
}

// Accept transitions a pending request to accepted on behalf of its mentor.
func (s *MatchService) Accept(ctx context.Context, identity domain.Identity, requestID string) (*domain.MatchRequest, error) {
	return s.transition(ctx, identity, requestID, auth.ActionAcceptRequest, domain.RequestStatusAccepted)
}

// Reject transitions a pending request to rejected on behalf of its mentor.
func (s *MatchService) Reject(ctx context.Context, identity domain.Identity, requestID string) (*domain.MatchRequest, error) {
	return s.transition(ctx, identity, requestID, auth.ActionRejectRequest, domain.RequestStatusRejected)
}

// Cancel transitions a pending request to cancelled on behalf of its mentee.
// Cancellation is a soft terminal state; the row is never deleted.
func (s *MatchService) Cancel(ctx context.Context, identity domain.Identity, requestID string) (*domain.MatchRequest, error) {
	return s.transition(ctx, identity, requestID, auth.ActionCancelRequest, domain.RequestStatusCancelled)
}

// ListIncoming returns the caller's requests as mentor, most recent first.
func (s *MatchService) ListIncoming(ctx context.Context, identity domain.Identity) ([]domain.MatchRequest, error) {
	if err := s.gate.Authorize(identity, auth.ActionViewIncoming, auth.Target{UserID: identity.UserID}); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByMentor(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// ListOutgoing returns the caller's requests as mentee, most recent first.
func (s *MatchService) ListOutgoing(ctx context.Context, identity domain.Identity) ([]domain.MatchRequest, error) {
	if err := s.gate.Authorize(identity, auth.ActionViewOutgoing, auth.Target{UserID: identity.UserID}); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByMentee(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// History returns the transition audit trail for a request the caller owns.
func (s *MatchService) History(ctx context.Context, identity domain.Identity, requestID string) ([]domain.RequestHistory, error) {
	if s.history == nil {
		return []domain.RequestHistory{}, nil
	}
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.MentorID != identity.UserID && request.MenteeID != identity.UserID {
		return nil, apperrors.NewForbidden("not a party to this request")
	}
	entries, err := s.history.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *MatchService) transition(ctx context.Context, identity domain.Identity, requestID string, action auth.Action, to domain.RequestStatus) (*domain.MatchRequest, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Authorize(identity, action, auth.Target{Request: request}); err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(to) {
		return nil, apperrors.NewInvalidState("request is not pending", map[string]any{"status": request.Status})
	}

	updated, err := s.requests.TransitionStatus(ctx, requestID, request.Status, to)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// another transition won between our read and the write
			return nil, apperrors.NewConflict("request was updated concurrently", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.recordTransition(ctx, identity, updated.ID, request.Status, updated.Status)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventMatchRequestStatusChanged,
		RequestID: updated.ID,
		Actor:     events.Actor{UserID: identity.UserID, Role: identity.Role},
		Payload: events.MatchRequestStatusChangedPayload{
			OldStatus: request.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *MatchService) getRequest(ctx context.Context, requestID string) (*domain.MatchRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("match request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	return request, nil
}

func (s *MatchService) recordTransition(ctx context.Context, identity domain.Identity, requestID string, from, to domain.RequestStatus) {
	if s.history == nil {
		return
	}
	entry := &domain.RequestHistory{
		RequestID: requestID,
		ActorID:   identity.UserID,
		ActorRole: identity.Role,
		OldStatus: from,
		NewStatus: to,
	}
	_ = s.history.Create(ctx, entry)
}

func (s *MatchService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
