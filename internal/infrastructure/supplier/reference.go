package supplier

import (
	"context"
	"net/url"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
)

// referenceRepository serves the read-only lists the wizard forms are built
// from: categories, destinations and transport modes.
type referenceRepository struct {
	*Client
}

func NewReferenceRepository(client *Client) repository.ReferenceRepository {
	return &referenceRepository{Client: client}
}

func (r *referenceRepository) Categories(ctx context.Context, lang string) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.fetch(ctx, "/reference/categories?lang="+url.QueryEscape(lang), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *referenceRepository) Destinations(ctx context.Context) ([]domain.Destination, error) {
	var destinations []domain.Destination
	if err := r.fetch(ctx, "/reference/destinations", &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *referenceRepository) TransportModes(ctx context.Context, lang string) ([]domain.TransportMode, error) {
	var modes []domain.TransportMode
	if err := r.fetch(ctx, "/reference/transport-modes?lang="+url.QueryEscape(lang), &modes); err != nil {
		return nil, err
	}
	return modes, nil
}
