package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	"github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/pkg/utils"
)

// POISelector manages the points of interest attached to one activity draft.
// The main designation is stored once, as an optional place reference at the
// selector level; the per-destination grouping is a derived index over the
// flat list, so the two can never disagree.
type POISelector struct {
	places repository.PlacesRepository
	logger *zap.Logger

	mu      sync.Mutex
	mainRef string
	pois    []domain.PointOfInterest

	// seq orders search-as-you-type lookups: a response whose sequence
	// number is no longer the latest issued is stale and gets discarded.
	seq atomic.Int64
}

func NewPOISelector(places repository.PlacesRepository, logger *zap.Logger) *POISelector {
	return &POISelector{
		places: places,
		logger: logger,
	}
}

// Load hydrates the selection from a draft snapshot.
func (s *POISelector) Load(draft *domain.ActivityDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pois = append([]domain.PointOfInterest(nil), draft.POIs...)
	s.mainRef = draft.MainPOIRef
	if s.mainRef == "" {
		// Older snapshots may only carry per-POI flags
		for _, poi := range s.pois {
			if poi.IsMain {
				s.mainRef = poi.PlaceRef
				break
			}
		}
	}
}

// Add appends a POI to its destination's subset. The first POI added anywhere
// becomes main automatically.
func (s *POISelector) Add(poi domain.PointOfInterest) error {
	if !utils.ValidateCoordinates(poi.Location.Lat, poi.Location.Lng) {
		return errors.ErrInvalidCoordinates
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.pois {
		if existing.PlaceRef == poi.PlaceRef {
			s.pois[i] = poi
			return nil
		}
	}

	s.pois = append(s.pois, poi)
	if s.mainRef == "" {
		s.mainRef = poi.PlaceRef
	}
	return nil
}

// Remove drops a POI by place reference. Removing the main POI promotes the
// first remaining one across any destination, or clears the designation when
// it was the last.
func (s *POISelector) Remove(placeRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pois[:0]
	for _, poi := range s.pois {
		if poi.PlaceRef != placeRef {
			kept = append(kept, poi)
		}
	}
	s.pois = kept

	if s.mainRef != placeRef {
		return
	}
	if len(s.pois) > 0 {
		s.mainRef = s.pois[0].PlaceRef
	} else {
		s.mainRef = ""
	}
}

// MainRef returns the current main POI's place reference, or "".
func (s *POISelector) MainRef() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mainRef
}

// ForDestination returns the POIs of one destination, main flag derived.
func (s *POISelector) ForDestination(destinationID string) []domain.PointOfInterest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.PointOfInterest
	for _, poi := range s.pois {
		if poi.DestinationID == destinationID {
			poi.IsMain = poi.PlaceRef == s.mainRef
			out = append(out, poi)
		}
	}
	return out
}

// Selection returns the whole selection with the main flag derived, ready to
// be committed with the description step.
func (s *POISelector) Selection() []domain.PointOfInterest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PointOfInterest, len(s.pois))
	for i, poi := range s.pois {
		poi.IsMain = poi.PlaceRef == s.mainRef
		out[i] = poi
	}
	return out
}

// Search performs a text lookup against the place-search collaborator. The
// returned stale flag is true when a newer lookup was issued while this one
// was in flight; stale results must be dropped, not applied.
func (s *POISelector) Search(ctx context.Context, query string, center domain.LatLng, radiusMeters int) ([]domain.Place, bool, error) {
	seq := s.seq.Add(1)

	places, err := s.places.SearchByText(ctx, query, center, radiusMeters)
	if err != nil {
		return nil, false, err
	}

	if seq != s.seq.Load() {
		s.logger.Debug("Discarding stale place search result",
			zap.String("query", query),
			zap.Int64("seq", seq))
		return nil, true, nil
	}
	return places, false, nil
}

// Nearby lists places around a center, used to suggest POIs for a
// destination.
func (s *POISelector) Nearby(ctx context.Context, center domain.LatLng, radiusMeters int) ([]domain.Place, error) {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	return s.places.SearchNearby(ctx, center, radiusMeters)
}

// Details resolves a single place by its external reference.
func (s *POISelector) Details(ctx context.Context, placeRef string) (*domain.Place, error) {
	return s.places.PlaceDetails(ctx, placeRef)
}
