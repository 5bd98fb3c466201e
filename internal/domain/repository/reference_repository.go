package repository

import (
	"context"

	"github.com/activity-portal/internal/domain"
)

// ReferenceRepository - read-only reference lists from the supplier service.
type ReferenceRepository interface {
	Categories(ctx context.Context, lang string) ([]domain.Category, error)
	Destinations(ctx context.Context) ([]domain.Destination, error)
	TransportModes(ctx context.Context, lang string) ([]domain.TransportMode, error)
}
