package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/usecase"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

// TestCreateActivityEndToEnd walks a full draft from category selection to
// the final redirect: every step commit, one booking option configured end
// to end, and the itinerary skipped.
func TestCreateActivityEndToEnd(t *testing.T) {
	ctx := context.Background()

	drafts := new(MockDraftRepository)
	options := new(MockOptionRepository)
	cache := new(MockCacheRepository)
	storage := new(MockStorageRepository)
	streams := new(MockStreamRepository)

	activityUC := usecase.NewActivityUseCase(drafts, options, cache, zap.NewNop(), time.Minute)
	optionUC := usecase.NewOptionUseCase(options, cache, zap.NewNop(), time.Minute, time.Hour)
	mediaUC := usecase.NewMediaUseCase(storage, drafts, streams, zap.NewNop(), mediaConfig())

	cache.On("DeleteActivitySnapshot", mock.Anything, "act-1").Return(nil)
	cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

	ok := &domain.CommitResult{Success: true}

	// Category
	drafts.On("CreateActivity", mock.Anything, 7).
		Return(&domain.CommitResult{Success: true, CreatedID: "act-1"}, nil)
	created, err := activityUC.Create(ctx, wizard.Params{Lang: "en", Currency: "USD"}, dto.CreateActivityRequest{CategoryID: 7})
	require.NoError(t, err)
	require.Equal(t, "act-1", created.CreatedID)

	p := func(step int) wizard.Params {
		return wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: step}
	}

	// Title
	drafts.On("UpdateTitle", mock.Anything, "act-1", "City Walking Tour").Return(ok, nil)
	resp, err := activityUC.CommitTitle(ctx, p(wizard.StepTitle), dto.TitleRequest{Title: "City Walking Tour"})
	require.NoError(t, err)
	assert.Contains(t, resp.NextAddress, "steps/2")

	// Description with one main point of interest
	drafts.On("UpdateDescription", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	_, err = activityUC.CommitDescription(ctx, p(wizard.StepDescription), dto.DescriptionRequest{
		Presentation: "A guided stroll through the old town",
		Description:  "Three hours of history, squares and hidden courtyards.",
		POIs: []dto.POIInput{{
			PlaceRef: "pl-1", Name: "Old Town Square",
			Lat: 50.087, Lng: 14.42, DestinationID: "dst-1", IsMain: true,
		}},
	})
	require.NoError(t, err)

	// Recommendations (3), restrictions (0), inclusions (3), exclusions (0)
	drafts.On("UpdateRecommendations", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	_, err = activityUC.CommitRecommendations(ctx, p(wizard.StepRecommendations),
		dto.RecommendationsRequest{Items: []string{"Comfortable shoes", "Water bottle", "Sunscreen"}})
	require.NoError(t, err)

	drafts.On("UpdateRestrictions", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	_, err = activityUC.CommitRestrictions(ctx, p(wizard.StepRestrictions), dto.RestrictionsRequest{})
	require.NoError(t, err)

	drafts.On("UpdateInclusions", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	_, err = activityUC.CommitInclusions(ctx, p(wizard.StepInclusions),
		dto.InclusionsRequest{Items: []string{"Guide", "Headsets", "Map"}})
	require.NoError(t, err)

	drafts.On("UpdateExclusions", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	_, err = activityUC.CommitExclusions(ctx, p(wizard.StepExclusions), dto.ExclusionsRequest{})
	require.NoError(t, err)

	// Images: three fresh uploads
	img := pngBytes(t, 1600, 900)
	working := make([]domain.ImageAsset, 0, 3)
	for _, name := range []string{"square.png", "bridge.png", "tower.png"} {
		asset, err := mediaUC.ValidateImage(ctx, dto.ImageUpload{FileName: name, ContentType: "image/png", Data: img})
		require.NoError(t, err)
		working, err = mediaUC.AddToWorkingSet(working, *asset)
		require.NoError(t, err)
	}
	storage.On("Upload", mock.Anything, mock.Anything, "image/png", mock.Anything, mock.Anything).
		Return("https://media.example.com/act-1/x.png", nil).Times(3)
	drafts.On("UpdateImages", mock.Anything, "act-1", mock.Anything).Return(ok, nil)
	committed, err := mediaUC.CommitImages(ctx, "act-1", working, nil)
	require.NoError(t, err)
	require.Len(t, committed, 3)
	assert.True(t, committed[0].IsCover)

	// Booking option: setup, meeting point, availability, cut-off
	options.On("Create", mock.Anything, "act-1").
		Return(&domain.CommitResult{Success: true, CreatedID: "opt-1"}, nil)
	options.On("UpdateSetup", mock.Anything, "opt-1", mock.Anything).Return(ok, nil)
	setupResp, err := optionUC.CommitSetup(ctx,
		wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.OptionStepSetup},
		dto.OptionSetupRequest{
			Title: "Standard", Unlimited: true, Languages: []string{"en"},
			DurationMode: "fixed", DurationHours: 3,
		})
	require.NoError(t, err)
	require.Equal(t, "opt-1", setupResp.CreatedID)

	op := func(step int) wizard.Params {
		return wizard.Params{EntityID: "act-1", OptionID: "opt-1", Lang: "en", Currency: "USD", StepIndex: step}
	}

	options.On("UpdateMeetingPickup", mock.Anything, "opt-1", mock.Anything).Return(ok, nil)
	_, err = optionUC.CommitMeetingPickup(ctx, op(wizard.OptionStepMeeting), dto.MeetingPickupRequest{
		ArrivalMethod: "meeting_point",
		MeetingPoint:  &dto.MeetingPointInput{Address: "Old Town Square 1", Lat: 50.087, Lng: 14.42},
	})
	require.NoError(t, err)

	cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
		Return(&domain.BookingOptionDraft{ID: "opt-1", Title: "Standard"}, nil)
	options.On("UpdateAvailabilityPricing", mock.Anything, "opt-1", mock.Anything).Return(ok, nil)
	_, err = optionUC.CommitAvailability(ctx, op(wizard.OptionStepAvailability), dto.AvailabilityPricingRequest{
		AvailabilityMode: "time_slots",
		PricingMode:      "per_person",
		Schedules: []dto.ScheduleInput{{
			Weekday: 0, StartTime: "09:00", EndTime: "12:00", Active: true,
			Tiers: []dto.PriceTierInput{{Currency: "USD", PerParticipant: 40, MinParticipants: 1, MaxParticipants: 15}},
		}},
	})
	require.NoError(t, err)

	options.On("ListTimeSlots", mock.Anything, "opt-1").Return([]string{"09:00 - 12:00"}, nil)
	options.On("UpdateCutOff", mock.Anything, "opt-1", mock.Anything).Return(ok, nil)
	cutoffResp, err := optionUC.CommitCutOff(ctx, op(wizard.OptionStepCutOff), dto.CutOffRequest{DefaultMinutes: 30})
	require.NoError(t, err)
	assert.Contains(t, cutoffResp.NextAddress, "steps/8")

	// The configured option unblocks the booking-options gate
	cache.On("GetActivitySnapshot", mock.Anything, "act-1").
		Return(&domain.ActivityDraft{ID: "act-1", OptionIDs: []string{"opt-1"}}, nil)
	options.On("CompletenessCheck", mock.Anything, "opt-1").Return(true, nil)
	gate, err := activityUC.ContinueFromOptions(ctx, p(wizard.StepBookingOptions))
	require.NoError(t, err)
	assert.Contains(t, gate.NextAddress, "steps/9")

	// Skip the itinerary: a distinct outcome message and the final redirect
	drafts.On("SkipItinerary", mock.Anything, "act-1", "en").
		Return(&domain.CommitResult{Success: true, Message: "Your activity was created without an itinerary"}, nil)
	final, err := activityUC.SkipItinerary(ctx, p(wizard.StepItinerary))
	require.NoError(t, err)
	assert.Equal(t, "Your activity was created without an itinerary", final.Message)
	assert.Equal(t, wizard.ActivityListAddress("en", "USD"), final.NextAddress)

	drafts.AssertExpectations(t)
	options.AssertExpectations(t)
}
