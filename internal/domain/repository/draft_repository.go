package repository

import (
	"context"

	"github.com/activity-portal/internal/domain"
)

// DescriptionSlice - the fields the description step commits in one call.
type DescriptionSlice struct {
	Presentation string
	Description  string
	POIs         []domain.PointOfInterest
}

// DraftRepository - per-step remote persistence contract for activity drafts.
// The remote service is the source of truth; every method is one round trip.
type DraftRepository interface {
	// CreateActivity creates a draft from a category selection and returns
	// the new draft ID.
	CreateActivity(ctx context.Context, categoryID int) (*domain.CommitResult, error)

	// GetActivity loads the full current snapshot for resuming a wizard step.
	GetActivity(ctx context.Context, id, lang, currency string) (*domain.ActivityDraft, error)

	UpdateTitle(ctx context.Context, id, title string) (*domain.CommitResult, error)
	UpdateDescription(ctx context.Context, id string, slice DescriptionSlice) (*domain.CommitResult, error)
	UpdateRecommendations(ctx context.Context, id string, items []string) (*domain.CommitResult, error)
	UpdateRestrictions(ctx context.Context, id string, items []string) (*domain.CommitResult, error)
	UpdateInclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error)
	UpdateExclusions(ctx context.Context, id string, items []string) (*domain.CommitResult, error)
	UpdateImages(ctx context.Context, id string, images []domain.ImageAsset) (*domain.CommitResult, error)

	// UpdateItinerary commits the ordered stop list and finalizes the
	// activity; the server reports the created-with-itinerary outcome message.
	UpdateItinerary(ctx context.Context, id, lang string, stops []domain.ItineraryStop) (*domain.CommitResult, error)

	// SkipItinerary finalizes the activity without an itinerary; the server
	// reports a distinct outcome message for this path.
	SkipItinerary(ctx context.Context, id, lang string) (*domain.CommitResult, error)
}
