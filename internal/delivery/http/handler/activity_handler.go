package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/pkg/utils"
	"github.com/activity-portal/internal/usecase"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

// ActivityHandler - activity wizard step endpoints.
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

func NewActivityHandler(activityUC *usecase.ActivityUseCase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUC: activityUC,
		logger:     logger,
	}
}

// Hydrate returns the snapshot a step renders on (re)entry. The step index
// comes from the address path, so bookmarked and resumed addresses land here
// directly.
func (h *ActivityHandler) Hydrate(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid step index"})
	}

	result, err := h.activityUC.Hydrate(c.Context(), wizardParams(c, step))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Create commits the category step and creates the draft.
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.Create(c.Context(), wizardParams(c, wizard.StepCategory), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitTitle(c *fiber.Ctx) error {
	var req dto.TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitTitle(c.Context(), wizardParams(c, wizard.StepTitle), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitDescription(c *fiber.Ctx) error {
	var req dto.DescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitDescription(c.Context(), wizardParams(c, wizard.StepDescription), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitRecommendations(c *fiber.Ctx) error {
	var req dto.RecommendationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitRecommendations(c.Context(), wizardParams(c, wizard.StepRecommendations), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitRestrictions(c *fiber.Ctx) error {
	var req dto.RestrictionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitRestrictions(c.Context(), wizardParams(c, wizard.StepRestrictions), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitInclusions(c *fiber.Ctx) error {
	var req dto.InclusionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitInclusions(c.Context(), wizardParams(c, wizard.StepInclusions), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *ActivityHandler) CommitExclusions(c *fiber.Ctx) error {
	var req dto.ExclusionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitExclusions(c.Context(), wizardParams(c, wizard.StepExclusions), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ContinueFromOptions moves past the booking options step once at least one
// complete option exists.
func (h *ActivityHandler) ContinueFromOptions(c *fiber.Ctx) error {
	result, err := h.activityUC.ContinueFromOptions(c.Context(), wizardParams(c, wizard.StepBookingOptions))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CommitItinerary finishes the wizard with an ordered stop list.
func (h *ActivityHandler) CommitItinerary(c *fiber.Ctx) error {
	var req dto.ItineraryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.activityUC.CommitItinerary(c.Context(), wizardParams(c, wizard.StepItinerary), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// SkipItinerary finishes the wizard without an itinerary.
func (h *ActivityHandler) SkipItinerary(c *fiber.Ctx) error {
	result, err := h.activityUC.SkipItinerary(c.Context(), wizardParams(c, wizard.StepItinerary))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
