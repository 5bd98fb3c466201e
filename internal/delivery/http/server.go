package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/config"
	"github.com/activity-portal/internal/delivery/http/handler"
	"github.com/activity-portal/internal/delivery/http/middleware"
)

// Server - HTTP server built on Fiber.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	activityHandler  *handler.ActivityHandler
	optionHandler    *handler.OptionHandler
	mediaHandler     *handler.MediaHandler
	placesHandler    *handler.PlacesHandler
	referenceHandler *handler.ReferenceHandler
}

// NewServer - creates the HTTP server with all routes wired.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	activityHandler *handler.ActivityHandler,
	optionHandler *handler.OptionHandler,
	mediaHandler *handler.MediaHandler,
	placesHandler *handler.PlacesHandler,
	referenceHandler *handler.ReferenceHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Activity Portal",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    40 * 1024 * 1024, // image step posts up to five files
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		activityHandler:  activityHandler,
		optionHandler:    optionHandler,
		mediaHandler:     mediaHandler,
		placesHandler:    placesHandler,
		referenceHandler: referenceHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Step hydration. The address scheme is shared: an option query parameter
	// means the address points into the booking option sub-wizard.
	api.Get("/activities/:id/steps/:step", func(c *fiber.Ctx) error {
		if c.Query("option") != "" {
			return s.optionHandler.Hydrate(c)
		}
		return s.activityHandler.Hydrate(c)
	})

	// Activity wizard commits
	api.Post("/activities", s.activityHandler.Create)
	api.Put("/activities/:id/title", s.activityHandler.CommitTitle)
	api.Put("/activities/:id/description", s.activityHandler.CommitDescription)
	api.Put("/activities/:id/recommendations", s.activityHandler.CommitRecommendations)
	api.Put("/activities/:id/restrictions", s.activityHandler.CommitRestrictions)
	api.Put("/activities/:id/inclusions", s.activityHandler.CommitInclusions)
	api.Put("/activities/:id/exclusions", s.activityHandler.CommitExclusions)
	api.Post("/activities/:id/options/continue", s.activityHandler.ContinueFromOptions)
	api.Put("/activities/:id/itinerary", s.activityHandler.CommitItinerary)
	api.Post("/activities/:id/itinerary/skip", s.activityHandler.SkipItinerary)

	// Image step
	api.Post("/activities/:id/images/validate", s.mediaHandler.ValidateImages)
	api.Post("/activities/:id/images", s.mediaHandler.CommitImages)
	api.Post("/activities/:id/images/remove", s.mediaHandler.RemoveImage)

	// Booking option sub-wizard
	api.Put("/activities/:id/options/setup", s.optionHandler.CommitSetup)
	api.Put("/activities/:id/options/meeting", s.optionHandler.CommitMeetingPickup)
	api.Put("/activities/:id/options/availability", s.optionHandler.CommitAvailability)
	api.Post("/activities/:id/options/availability/continue", s.optionHandler.ContinueFromAvailability)
	api.Get("/activities/:id/options/cutoff", s.optionHandler.GetCutOff)
	api.Put("/activities/:id/options/cutoff", s.optionHandler.CommitCutOff)
	api.Put("/activities/:id/options/mirror/:step", s.optionHandler.MirrorStep)
	api.Get("/activities/:id/options/mirror/:step", s.optionHandler.ReadMirror)

	// Place lookup for the POI picker
	api.Get("/places/search", s.placesHandler.Search)
	api.Get("/places/nearby", s.placesHandler.Nearby)
	api.Get("/places/:ref", s.placesHandler.Details)

	// Reference lists
	api.Get("/reference/categories", s.referenceHandler.Categories)
	api.Get("/reference/destinations", s.referenceHandler.Destinations)
	api.Get("/reference/transport-modes", s.referenceHandler.TransportModes)
}

// Start - starts the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
