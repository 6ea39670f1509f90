package service

import (
	"context"
	"testing"

	"github.com/spec-kit/mentor-match-service/internal/config"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeProfileRepo) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTLHours: 24,
		BcryptCost:          4, // keep hashing fast under test
	}}
	return NewAuthService(cfg, users, profiles), users, profiles
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	svc, _, profiles := newAuthFixture()

	user, token, _, err := svc.Signup(context.Background(), "Kim", "kim@example.com", "hunter22", domain.RoleMentor)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned user id")
	}

	identity, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatalf("token verify failed: %v", err)
	}
	if identity.UserID != user.ID || identity.Role != domain.RoleMentor {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := profiles.GetMentor(context.Background(), user.ID); err != nil {
		t.Fatalf("mentor profile row must exist after signup: %v", err)
	}
}

func TestSignupMenteeCreatesMenteeProfile(t *testing.T) {
	svc, _, profiles := newAuthFixture()

	user, _, _, err := svc.Signup(context.Background(), "Lee", "lee@example.com", "hunter22", domain.RoleMentee)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, err := profiles.GetMentee(context.Background(), user.ID); err != nil {
		t.Fatalf("mentee profile row must exist after signup: %v", err)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, _, err := svc.Signup(context.Background(), "Kim", "kim@example.com", "hunter22", domain.Role("admin"))
	if !apperrors.IsCode(err, "INVALID_ARGUMENT") {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Signup(ctx, "Kim", "kim@example.com", "hunter22", domain.RoleMentee); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, _, _, err := svc.Signup(ctx, "Other", "kim@example.com", "hunter23", domain.RoleMentee)
	if !apperrors.IsCode(err, "INVALID_ARGUMENT") {
		t.Fatalf("expected INVALID_ARGUMENT for duplicate email, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	created, _, _, err := svc.Signup(ctx, "Kim", "kim@example.com", "hunter22", domain.RoleMentee)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, token, _, err := svc.Login(ctx, "kim@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
	if _, err := svc.TokenManager().Verify(token); err != nil {
		t.Fatalf("token verify failed: %v", err)
	}
}

func TestLoginFailsUniformly(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Signup(ctx, "Kim", "kim@example.com", "hunter22", domain.RoleMentee); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// unknown email and wrong password fail identically
	_, _, _, unknownErr := svc.Login(ctx, "nobody@example.com", "hunter22")
	_, _, _, wrongErr := svc.Login(ctx, "kim@example.com", "wrong")
	for _, err := range []error{unknownErr, wrongErr} {
		if !apperrors.IsCode(err, "UNAUTHENTICATED") {
			t.Fatalf("expected UNAUTHENTICATED, got %v", err)
		}
		if err.Error() != unknownErr.Error() {
			t.Fatalf("failure messages must not differ: %q vs %q", err, unknownErr)
		}
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := svc.Signup(ctx, "Kim", "kim@example.com", "hunter22", domain.RoleMentee)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	identity := domain.Identity{UserID: user.ID, Role: user.Role}

	if err := svc.ChangePassword(ctx, identity, "wrong", "new-password"); !apperrors.IsCode(err, "UNAUTHENTICATED") {
		t.Fatalf("expected UNAUTHENTICATED for wrong current password, got %v", err)
	}
	if err := svc.ChangePassword(ctx, identity, "hunter22", "new-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "kim@example.com", "hunter22"); err == nil {
		t.Fatalf("old password must stop working")
	}
	if _, _, _, err := svc.Login(ctx, "kim@example.com", "new-password"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
