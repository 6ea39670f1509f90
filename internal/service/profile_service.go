package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/repository"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// AccountProfile is the composite view of an account: the shared user row
// plus whichever role-specific profile applies.
type AccountProfile struct {
	User   *domain.User
	Mentor *domain.MentorProfile
	Mentee *domain.MenteeProfile
}

// ProfileUpdateInput carries optional profile fields; nil means unchanged.
type ProfileUpdateInput struct {
	Name            *string
	Bio             *string
	ImageRef        *string
	Skills          []string // mentors only
	ExperienceYears *int     // mentors only
	Interests       *string  // mentees only
	Goals           *string  // mentees only
}

// ProfileService reads and updates account profiles.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	gate     *auth.Gate
}

// NewProfileService constructs the service.
func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository, gate *auth.Gate) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, gate: gate}
}

// Get returns the caller's composite profile.
func (s *ProfileService) Get(ctx context.Context, identity domain.Identity) (*AccountProfile, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return s.compose(ctx, user)
}

// Update applies profile changes for the caller's own account.
func (s *ProfileService) Update(ctx context.Context, identity domain.Identity, input ProfileUpdateInput) (*AccountProfile, error) {
	if err := s.gate.Authorize(identity, auth.ActionUpdateProfile, auth.Target{UserID: identity.UserID}); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.ImageRef != nil {
		user.ImageRef = *input.ImageRef
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	switch user.Role {
	case domain.RoleMentor:
		if input.Skills != nil || input.ExperienceYears != nil {
			if err := s.updateMentor(ctx, user.ID, input); err != nil {
				return nil, err
			}
		}
	case domain.RoleMentee:
		if input.Interests != nil || input.Goals != nil {
			if err := s.updateMentee(ctx, user.ID, input); err != nil {
				return nil, err
			}
		}
	}

	return s.compose(ctx, user)
}

func (s *ProfileService) updateMentor(ctx context.Context, userID string, input ProfileUpdateInput) error {
	current, err := s.profiles.GetMentor(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}

	skills := input.Skills
	if skills == nil && current != nil {
		skills = current.Skills
	}
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	years := 0
	if current != nil {
		years = current.ExperienceYears
	}
	if input.ExperienceYears != nil {
		if *input.ExperienceYears < 0 {
			return apperrors.NewValidationError("experience_years must not be negative", nil)
		}
		years = *input.ExperienceYears
	}

	if err := s.profiles.UpsertMentor(ctx, userID, cleaned, years); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProfileService) updateMentee(ctx context.Context, userID string, input ProfileUpdateInput) error {
	profile, err := s.profiles.GetMentee(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
		profile = &domain.MenteeProfile{UserID: userID}
	}
	if input.Interests != nil {
		profile.Interests = *input.Interests
	}
	if input.Goals != nil {
		profile.Goals = *input.Goals
	}
	if err := s.profiles.UpsertMentee(ctx, profile); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProfileService) compose(ctx context.Context, user *domain.User) (*AccountProfile, error) {
	result := &AccountProfile{User: user}
	switch user.Role {
	case domain.RoleMentor:
		mentor, err := s.profiles.GetMentor(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		result.Mentor = mentor
	case domain.RoleMentee:
		mentee, err := s.profiles.GetMentee(ctx, user.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		result.Mentee = mentee
	}
	return result, nil
}
