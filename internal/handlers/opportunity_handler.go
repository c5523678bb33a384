package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/talentbridge/intake-backend/internal/apperr"
	"github.com/talentbridge/intake-backend/internal/dto"
	"github.com/talentbridge/intake-backend/internal/middleware"
	"github.com/talentbridge/intake-backend/internal/services"
	"gorm.io/datatypes"
)

type OpportunityHandler struct {
	opportunities *services.OpportunityService
}

func NewOpportunityHandler(opportunities *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

// Create records a partner-submitted opportunity. Scope-gated.
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.Identity(c)
	if !ok {
		return apperr.Unauthenticated()
	}

	var req dto.CreateOpportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	submittedBy := ""
	if ident.Claims != nil {
		submittedBy = ident.Claims.Subject
	}

	opp, err := h.opportunities.Create(c.UserContext(), req.Organization, req.Title, datatypes.JSON(req.Details), submittedBy)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OpportunityResponse{
		ID:           opp.ID,
		Organization: opp.Organization,
		Title:        opp.Title,
	})
}
