package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/pkg/utils"
	"github.com/activity-portal/internal/usecase"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

// OptionHandler - booking option sub-wizard endpoints.
type OptionHandler struct {
	optionUC *usecase.OptionUseCase
	logger   *zap.Logger
}

func NewOptionHandler(optionUC *usecase.OptionUseCase, logger *zap.Logger) *OptionHandler {
	return &OptionHandler{
		optionUC: optionUC,
		logger:   logger,
	}
}

// Hydrate returns the option step snapshot with the derived option state and,
// once schedules exist, the aggregated weekly calendar.
func (h *OptionHandler) Hydrate(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid step index"})
	}

	result, err := h.optionUC.Hydrate(c.Context(), wizardParams(c, step))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CommitSetup creates the option on first commit and updates it afterwards;
// the option query parameter distinguishes the two.
func (h *OptionHandler) CommitSetup(c *fiber.Ctx) error {
	var req dto.OptionSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.optionUC.CommitSetup(c.Context(), wizardParams(c, wizard.OptionStepSetup), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *OptionHandler) CommitMeetingPickup(c *fiber.Ctx) error {
	var req dto.MeetingPickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.optionUC.CommitMeetingPickup(c.Context(), wizardParams(c, wizard.OptionStepMeeting), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *OptionHandler) CommitAvailability(c *fiber.Ctx) error {
	var req dto.AvailabilityPricingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.optionUC.CommitAvailability(c.Context(), wizardParams(c, wizard.OptionStepAvailability), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ContinueFromAvailability moves to the cut-off step once the supplier
// confirms the option's availability and pricing are complete.
func (h *OptionHandler) ContinueFromAvailability(c *fiber.Ctx) error {
	result, err := h.optionUC.ContinueFromAvailability(c.Context(), wizardParams(c, wizard.OptionStepAvailability))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *OptionHandler) CommitCutOff(c *fiber.Ctx) error {
	var req dto.CutOffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.optionUC.CommitCutOff(c.Context(), wizardParams(c, wizard.OptionStepCutOff), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetCutOff renders the effective per-slot cut-off configuration.
func (h *OptionHandler) GetCutOff(c *fiber.Ctx) error {
	result, err := h.optionUC.CutOffView(c.Context(), wizardParams(c, wizard.OptionStepCutOff))
	if err != nil {
		return respondError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// MirrorStep stores in-progress, uncommitted step input so a reopened step
// can restore what was typed. Best effort, never an error.
func (h *OptionHandler) MirrorStep(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid step index"})
	}
	optionID := c.Query("option")
	if optionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Option ID required"})
	}

	h.optionUC.MirrorStep(c.Context(), optionID, step, json.RawMessage(c.Body()))
	return utils.SendSuccess(c, fiber.Map{"stored": true}, nil)
}

// ReadMirror returns the mirrored input for a step, or an empty payload when
// nothing was mirrored.
func (h *OptionHandler) ReadMirror(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid step index"})
	}
	optionID := c.Query("option")
	if optionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Option ID required"})
	}

	var payload json.RawMessage
	if !h.optionUC.ReadMirror(c.Context(), optionID, step, &payload) {
		return utils.SendSuccess(c, nil, nil)
	}
	return utils.SendSuccess(c, payload, nil)
}
