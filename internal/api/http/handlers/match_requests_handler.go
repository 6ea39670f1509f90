package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/mentor-match-service/internal/api/dto"
	"github.com/spec-kit/mentor-match-service/internal/auth"
	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/service"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// MatchRequestsHandler exposes the match request lifecycle endpoints.
type MatchRequestsHandler struct {
	matches *service.MatchService
}

// NewMatchRequestsHandler constructs handler.
func NewMatchRequestsHandler(matchService *service.MatchService) *MatchRequestsHandler {
	return &MatchRequestsHandler{matches: matchService}
}

// Create handles POST /api/match-requests.
func (h *MatchRequestsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateMatchRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.MentorID == "" {
		return apperrors.NewValidationError("mentorId required", nil)
	}

	request, err := h.matches.Create(c.Context(), identity, req.MentorID, req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": matchRequestResponse(request)})
}

// Incoming handles GET /api/match-requests/incoming.
func (h *MatchRequestsHandler) Incoming(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.matches.ListIncoming(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matchRequestResponses(requests)})
}

// Outgoing handles GET /api/match-requests/outgoing.
func (h *MatchRequestsHandler) Outgoing(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.matches.ListOutgoing(c.Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matchRequestResponses(requests)})
}

// Accept handles PUT /api/match-requests/:id/accept.
func (h *MatchRequestsHandler) Accept(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.matches.Accept(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matchRequestResponse(request)})
}

// Reject handles PUT /api/match-requests/:id/reject.
func (h *MatchRequestsHandler) Reject(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.matches.Reject(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matchRequestResponse(request)})
}

// Cancel handles DELETE /api/match-requests/:id.
func (h *MatchRequestsHandler) Cancel(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.matches.Cancel(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": matchRequestResponse(request)})
}

// History handles GET /api/match-requests/:id/history.
func (h *MatchRequestsHandler) History(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	entries, err := h.matches.History(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.RequestHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.RequestHistoryResponse{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			ActorRole: entry.ActorRole,
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func matchRequestResponse(request *domain.MatchRequest) dto.MatchRequestResponse {
	return dto.MatchRequestResponse{
		ID:        request.ID,
		MentorID:  request.MentorID,
		MenteeID:  request.MenteeID,
		Message:   request.Message,
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}
}

func matchRequestResponses(requests []domain.MatchRequest) []dto.MatchRequestResponse {
	items := make([]dto.MatchRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, matchRequestResponse(&requests[i]))
	}
	return items
}
