package repository

import (
	"context"

	"github.com/activity-portal/internal/domain"
)

// PlacesRepository - read-only lookups against the geospatial place-search
// collaborator, keyed by the external place reference that is later persisted
// alongside each point of interest.
type PlacesRepository interface {
	SearchNearby(ctx context.Context, center domain.LatLng, radiusMeters int) ([]domain.Place, error)
	SearchByText(ctx context.Context, query string, center domain.LatLng, radiusMeters int) ([]domain.Place, error)
	PlaceDetails(ctx context.Context, placeRef string) (*domain.Place, error)
}
