package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentor-match-service/internal/api/dto"
	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/service"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// MentorsHandler exposes the mentor directory.
type MentorsHandler struct {
	directory *service.DirectoryService
}

// NewMentorsHandler constructs handler.
func NewMentorsHandler(directoryService *service.DirectoryService) *MentorsHandler {
	return &MentorsHandler{directory: directoryService}
}

// Search handles GET /api/mentors?skill=&order_by=.
func (h *MentorsHandler) Search(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	mentors, err := h.directory.SearchMentors(c.Context(), identity, c.Query("skill"), c.Query("order_by"))
	if err != nil {
		return err
	}

	items := make([]dto.MentorResponse, 0, len(mentors))
	for i := range mentors {
		items = append(items, mentorResponse(&mentors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func mentorResponse(mentor *domain.MentorProfile) dto.MentorResponse {
	skills := mentor.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.MentorResponse{
		ID:    mentor.UserID,
		Email: mentor.Email,
		Role:  string(domain.RoleMentor),
		Profile: dto.MentorProfileBody{
			Name:            mentor.Name,
			Bio:             mentor.Bio,
			ImageRef:        mentor.ImageRef,
			Skills:          skills,
			ExperienceYears: mentor.ExperienceYears,
			Rating:          mentor.Rating,
		},
	}
}
