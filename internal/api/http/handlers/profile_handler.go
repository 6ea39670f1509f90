package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentor-match-service/internal/api/dto"
	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/service"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// ProfileHandler exposes the current-user profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profileService}
}

// Me handles GET /api/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	account, err := h.profiles.Get(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(account)})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.profiles.Update(c.Context(), identity, service.ProfileUpdateInput{
		Name:            req.Name,
		Bio:             req.Bio,
		ImageRef:        req.ImageRef,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		Interests:       req.Interests,
		Goals:           req.Goals,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(account)})
}

func userResponse(account *service.AccountProfile) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    account.User.ID,
		Email: account.User.Email,
		Role:  string(account.User.Role),
		Profile: dto.ProfileBody{
			Name:     account.User.Name,
			Bio:      account.User.Bio,
			ImageRef: account.User.ImageRef,
		},
	}
	if account.Mentor != nil {
		skills := account.Mentor.Skills
		if skills == nil {
			skills = []string{}
		}
		years := account.Mentor.ExperienceYears
		resp.Profile.Skills = skills
		resp.Profile.ExperienceYears = &years
		resp.Profile.Rating = account.Mentor.Rating
	}
	if account.Mentee != nil {
		interests := account.Mentee.Interests
		goals := account.Mentee.Goals
		resp.Profile.Interests = &interests
		resp.Profile.Goals = &goals
	}
	return resp
}
