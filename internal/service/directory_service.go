package service

import (
	"context"
	"strings"

	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/repository"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// DirectoryService exposes the read-only mentor directory to mentees.
type DirectoryService struct {
	profiles repository.ProfileRepository
	gate     *auth.Gate
}

// NewDirectoryService constructs the service.
func NewDirectoryService(profiles repository.ProfileRepository, gate *auth.Gate) *DirectoryService {
	return &DirectoryService{profiles: profiles, gate: gate}
}

// SearchMentors returns mentors matching the optional skill filter in the
// requested order. Each call is independent; no cursor state is kept.
func (s *DirectoryService) SearchMentors(ctx context.Context, identity domain.Identity, skill, orderBy string) ([]domain.MentorProfile, error) {
	if err := s.gate.Authorize(identity, auth.ActionSearchMentors, auth.Target{}); err != nil {
		return nil, err
	}

	order, err := parseMentorOrder(orderBy)
	if err != nil {
		return nil, err
	}

	mentors, err := s.profiles.SearchMentors(ctx, repository.MentorSearchFilter{
		Skill:   strings.TrimSpace(skill),
		OrderBy: order,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return mentors, nil
}

func parseMentorOrder(orderBy string) (repository.MentorOrder, error) {
	switch repository.MentorOrder(strings.ToLower(strings.TrimSpace(orderBy))) {
	case repository.MentorOrderDefault:
		return repository.MentorOrderDefault, nil
	case repository.MentorOrderByName:
		return repository.MentorOrderByName, nil
	case repository.MentorOrderBySkill:
		return repository.MentorOrderBySkill, nil
	default:
		return "", apperrors.NewValidationError("order_by must be one of name, skill", map[string]any{"order_by": orderBy})
	}
}
