package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/pkg/utils"
	"github.com/activity-portal/internal/usecase"
)

// PlacesHandler - place lookup endpoints backing the POI picker.
type PlacesHandler struct {
	selector *usecase.POISelector
	logger   *zap.Logger
}

func NewPlacesHandler(selector *usecase.POISelector, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		selector: selector,
		logger:   logger,
	}
}

// Search performs a text lookup around a center. Stale results, superseded by
// a newer search, come back empty so the client never renders them.
func (h *PlacesHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "Query must be at least 2 characters"})
	}

	center := domain.LatLng{
		Lat: c.QueryFloat("lat"),
		Lng: c.QueryFloat("lng"),
	}
	radius := c.QueryInt("radius", 5000)

	places, stale, err := h.selector.Search(c.Context(), query, center, radius)
	if err != nil {
		return utils.SendError(c, err)
	}
	if stale {
		return utils.SendSuccess(c, []domain.Place{}, nil)
	}

	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// Nearby lists places around a center to suggest POIs for a destination.
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	center := domain.LatLng{
		Lat: c.QueryFloat("lat"),
		Lng: c.QueryFloat("lng"),
	}
	radius := c.QueryInt("radius", 5000)

	places, err := h.selector.Nearby(c.Context(), center, radius)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, places, &utils.Meta{Total: len(places)})
}

// Details resolves a single place by its external reference.
func (h *PlacesHandler) Details(c *fiber.Ctx) error {
	ref := c.Params("ref")
	if ref == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Place reference required"})
	}

	place, err := h.selector.Details(c.Context(), ref)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, place, nil)
}
