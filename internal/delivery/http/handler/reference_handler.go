package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/utils"
)

// ReferenceHandler - read-only reference lists for the wizard's pickers.
type ReferenceHandler struct {
	refs   repository.ReferenceRepository
	logger *zap.Logger
}

func NewReferenceHandler(refs repository.ReferenceRepository, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		refs:   refs,
		logger: logger,
	}
}

// Categories lists the activity categories in the requested language.
func (h *ReferenceHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.refs.Categories(c.Context(), c.Query("lang", "en"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, categories, &utils.Meta{Total: len(categories)})
}

// Destinations lists the destinations an activity can be attached to.
func (h *ReferenceHandler) Destinations(c *fiber.Ctx) error {
	destinations, err := h.refs.Destinations(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, destinations, &utils.Meta{Total: len(destinations)})
}

// TransportModes lists the pickup transport modes in the requested language.
func (h *ReferenceHandler) TransportModes(c *fiber.Ctx) error {
	modes, err := h.refs.TransportModes(c.Context(), c.Query("lang", "en"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, modes, &utils.Meta{Total: len(modes)})
}
