package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

var (
	mentorIdentity = domain.Identity{UserID: "mentor-1", Role: domain.RoleMentor}
	menteeIdentity = domain.Identity{UserID: "mentee-1", Role: domain.RoleMentee}
)

func newMatchFixture() (*MatchService, *fakeRequestRepo, *fakeProfileRepo, *fakeHistoryRepo) {
	requests := newFakeRequestRepo()
	profiles := newFakeProfileRepo()
	profiles.addMentor(domain.MentorProfile{UserID: "mentor-1", Name: "Kim", Skills: []string{"go"}})
	history := &fakeHistoryRepo{}
	svc := NewMatchService(MatchDependencies{
		RequestRepo: requests,
		ProfileRepo: profiles,
		HistoryRepo: history,
		Gate:        auth.NewGate(),
	})
	return svc, requests, profiles, history
}

func TestCreateMatchRequest(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	request, err := svc.Create(context.Background(), menteeIdentity, "mentor-1", "  Hi there  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if request.Status != domain.RequestStatusPending {
		t.Fatalf("expected pending status, got %s", request.Status)
	}
	if request.MenteeID != menteeIdentity.UserID {
		t.Fatalf("mentee id must come from identity, got %s", request.MenteeID)
	}
	if request.Message != "Hi there" {
		t.Fatalf("expected trimmed message, got %q", request.Message)
	}
}

func TestCreateMatchRequestEmptyMessage(t *testing.T) {
	svc, requests, _, _ := newMatchFixture()

	_, err := svc.Create(context.Background(), menteeIdentity, "mentor-1", "   ")
	if !apperrors.IsCode(err, "INVALID_ARGUMENT") {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	if len(requests.requests) != 0 {
		t.Fatalf("no request should be persisted, found %d", len(requests.requests))
	}
}

func TestCreateMatchRequestUnknownMentor(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.Create(context.Background(), menteeIdentity, "nobody", "Hi")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCreateMatchRequestByMentorForbidden(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.Create(context.Background(), mentorIdentity, "mentor-1", "Hi")
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestCreateMatchRequestDuplicatePending(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, menteeIdentity, "mentor-1", "first"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.Create(ctx, menteeIdentity, "mentor-1", "second")
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected CONFLICT for duplicate pending, got %v", err)
	}
}

func TestCreateAllowedAfterPreviousResolved(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, menteeIdentity, "mentor-1", "first")
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Reject(ctx, mentorIdentity, first.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Create(ctx, menteeIdentity, "mentor-1", "second"); err != nil {
		t.Fatalf("create after rejection failed: %v", err)
	}
}

func TestAcceptRejectCancelLifecycle(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	request, err := svc.Create(ctx, menteeIdentity, "mentor-1", "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rejected, err := svc.Reject(ctx, mentorIdentity, request.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != domain.RequestStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	// terminal state, no resurrection
	_, err = svc.Accept(ctx, mentorIdentity, request.ID)
	if !apperrors.IsCode(err, "INVALID_STATE") {
		t.Fatalf("expected INVALID_STATE after terminal transition, got %v", err)
	}
}

func TestCancelOnlyByOwningMentee(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	request, err := svc.Create(ctx, menteeIdentity, "mentor-1", "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	otherMentee := domain.Identity{UserID: "mentee-2", Role: domain.RoleMentee}
	if _, err := svc.Cancel(ctx, otherMentee, request.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN for foreign mentee, got %v", err)
	}
	if _, err := svc.Cancel(ctx, mentorIdentity, request.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN for mentor cancel, got %v", err)
	}

	cancelled, err := svc.Cancel(ctx, menteeIdentity, request.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.RequestStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestAcceptByForeignMentorForbidden(t *testing.T) {
	svc, _, profiles, _ := newMatchFixture()
	profiles.addMentor(domain.MentorProfile{UserID: "mentor-2", Name: "Lee"})
	ctx := context.Background()

	request, err := svc.Create(ctx, menteeIdentity, "mentor-1", "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	foreign := domain.Identity{UserID: "mentor-2", Role: domain.RoleMentor}
	if _, err := svc.Accept(ctx, foreign, request.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.Accept(ctx, menteeIdentity, request.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN for mentee accept, got %v", err)
	}
}

func TestAcceptUnknownRequestNotFound(t *testing.T) {
	svc, _, _, _ := newMatchFixture()

	_, err := svc.Accept(context.Background(), mentorIdentity, "missing")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestConcurrentAcceptRejectExactlyOneWins(t *testing.T) {
	svc, _, _, _ := newMatchFixture()
	ctx := context.Background()

	request, err := svc.Create(ctx, menteeIdentity, "mentor-1", "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = svc.Accept(ctx, mentorIdentity, request.ID)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = svc.Reject(ctx, mentorIdentity, request.ID)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !apperrors.IsCode(err, "CONFLICT") && !apperrors.IsCode(err, "INVALID_STATE") {
			t.Fatalf("loser must fail with CONFLICT or INVALID_STATE, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one transition must win, got %d", succeeded)
	}
}

func TestListIncomingOutgoingOrdering(t *testing.T) {
	svc, requests, _, _ := newMatchFixture()
	ctx := context.Background()

	base := time.Now()
	requests.seed(domain.MatchRequest{
		ID: "req-a", MentorID: "mentor-1", MenteeID: "mentee-1",
		Message: "oldest", Status: domain.RequestStatusRejected, CreatedAt: base.Add(-2 * time.Hour),
	})
	requests.seed(domain.MatchRequest{
		ID: "req-b", MentorID: "mentor-1", MenteeID: "mentee-1",
		Message: "middle", Status: domain.RequestStatusCancelled, CreatedAt: base.Add(-time.Hour),
	})
	requests.seed(domain.MatchRequest{
		ID: "req-c", MentorID: "mentor-1", MenteeID: "mentee-1",
		Message: "newest", Status: domain.RequestStatusPending, CreatedAt: base,
	})

	incoming, err := svc.ListIncoming(ctx, mentorIdentity)
	if err != nil {
		t.Fatalf("list incoming failed: %v", err)
	}
	if len(incoming) != 3 {
		t.Fatalf("expected all statuses listed, got %d", len(incoming))
	}
	if incoming[0].ID != "req-c" || incoming[2].ID != "req-a" {
		t.Fatalf("expected most recent first, got %s..%s", incoming[0].ID, incoming[2].ID)
	}

	outgoing, err := svc.ListOutgoing(ctx, menteeIdentity)
	if err != nil {
		t.Fatalf("list outgoing failed: %v", err)
	}
	if len(outgoing) != 3 || outgoing[0].ID != "req-c" {
		t.Fatalf("unexpected outgoing listing")
	}

	if _, err := svc.ListIncoming(ctx, menteeIdentity); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("mentee must not list incoming, got %v", err)
	}
	if _, err := svc.ListOutgoing(ctx, mentorIdentity); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("mentor must not list outgoing, got %v", err)
	}
}

func TestTransitionHistoryRecorded(t *testing.T) {
	svc, _, _, history := newMatchFixture()
	ctx := context.Background()

	request, err := svc.Create(ctx, menteeIdentity, "mentor-1", "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Accept(ctx, mentorIdentity, request.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	entries, err := svc.History(ctx, mentorIdentity, request.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(entries))
	}
	if entries[0].OldStatus != domain.RequestStatusPending || entries[0].NewStatus != domain.RequestStatusAccepted {
		t.Fatalf("unexpected history entry: %+v", entries[0])
	}

	stranger := domain.Identity{UserID: "mentee-9", Role: domain.RoleMentee}
	if _, err := svc.History(ctx, stranger, request.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN for non-party, got %v", err)
	}
	_ = history
}
