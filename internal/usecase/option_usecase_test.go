package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/domain/repository"
	apperrors "github.com/activity-portal/internal/pkg/errors"
	"github.com/activity-portal/internal/usecase"
	"github.com/activity-portal/internal/usecase/dto"
	"github.com/activity-portal/internal/wizard"
)

func newOptionUseCase(options *MockOptionRepository, cache *MockCacheRepository) *usecase.OptionUseCase {
	return usecase.NewOptionUseCase(options, cache, zap.NewNop(), time.Minute, time.Hour)
}

func optionParams(step int) wizard.Params {
	return wizard.Params{EntityID: "act-1", OptionID: "opt-1", Lang: "en", Currency: "USD", StepIndex: step}
}

func setupRequest() dto.OptionSetupRequest {
	return dto.OptionSetupRequest{
		Title:         "Standard",
		Unlimited:     true,
		Languages:     []string{"en"},
		DurationMode:  "fixed",
		DurationHours: 3,
	}
}

func TestOptionUseCase_CommitSetup(t *testing.T) {
	t.Run("without an option id creates the option first", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		options.On("Create", mock.Anything, "act-1").
			Return(&domain.CommitResult{Success: true, CreatedID: "opt-1"}, nil)
		options.On("UpdateSetup", mock.Anything, "opt-1", mock.MatchedBy(func(s repository.OptionSetup) bool {
			return s.Title == "Standard" &&
				s.MaxGroupSize == domain.UnlimitedGroupSize &&
				s.Duration.Mode == domain.DurationFixed &&
				s.Duration.Hours == 3
		})).Return(&domain.CommitResult{Success: true, Message: "Saved"}, nil)
		cache.On("DeleteActivitySnapshot", mock.Anything, "act-1").Return(nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		p := optionParams(wizard.OptionStepSetup)
		p.OptionID = ""
		resp, err := uc.CommitSetup(context.Background(), p, setupRequest())
		require.NoError(t, err)
		assert.Equal(t, "opt-1", resp.CreatedID)
		assert.Contains(t, resp.NextAddress, "option=opt-1")
		assert.Contains(t, resp.NextAddress, "steps/1")
		options.AssertExpectations(t)
	})

	t.Run("with an option id only updates", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		options.On("UpdateSetup", mock.Anything, "opt-1", mock.Anything).
			Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		resp, err := uc.CommitSetup(context.Background(), optionParams(wizard.OptionStepSetup), setupRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.CreatedID)
		options.AssertNotCalled(t, "Create")
	})

	t.Run("validity mode zeroes fixed fields", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		options.On("UpdateSetup", mock.Anything, "opt-1", mock.MatchedBy(func(s repository.OptionSetup) bool {
			return s.Duration.Mode == domain.DurationValidity &&
				s.Duration.ValidityDays == 14 &&
				s.Duration.Hours == 0
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		req := setupRequest()
		req.DurationMode = "validity"
		req.ValidityDays = 14
		// Stale fixed-mode values from the form toggle
		req.DurationHours = 3

		_, err := uc.CommitSetup(context.Background(), optionParams(wizard.OptionStepSetup), req)
		require.NoError(t, err)
		options.AssertExpectations(t)
	})

	t.Run("zero fixed duration rejected locally", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		req := setupRequest()
		req.DurationHours = 0
		_, err := uc.CommitSetup(context.Background(), optionParams(wizard.OptionStepSetup), req)
		require.Error(t, err)
		options.AssertNotCalled(t, "UpdateSetup")
	})

	t.Run("limited group needs a positive size", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		req := setupRequest()
		req.Unlimited = false
		req.MaxGroupSize = 0
		_, err := uc.CommitSetup(context.Background(), optionParams(wizard.OptionStepSetup), req)
		require.Error(t, err)
		options.AssertNotCalled(t, "UpdateSetup")
	})
}

func TestOptionUseCase_CommitMeetingPickup(t *testing.T) {
	params := optionParams(wizard.OptionStepMeeting)

	t.Run("meeting point requires a resolved address", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		_, err := uc.CommitMeetingPickup(context.Background(), params, dto.MeetingPickupRequest{
			ArrivalMethod: "meeting_point",
			MeetingPoint:  &dto.MeetingPointInput{Lat: 50, Lng: 14},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resolved address")
		options.AssertNotCalled(t, "UpdateMeetingPickup")
	})

	t.Run("pickup rules fail in fixed order, first wins", func(t *testing.T) {
		uc := newOptionUseCase(new(MockOptionRepository), new(MockCacheRepository))

		// No points, custom timing unset and missing return addresses: the
		// missing points are reported first.
		_, err := uc.CommitMeetingPickup(context.Background(), params, dto.MeetingPickupRequest{
			ArrivalMethod: "pickup_service",
			PickupTiming:  "custom",
			DropOff:       "other_location",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pickup point")

		_, err = uc.CommitMeetingPickup(context.Background(), params, dto.MeetingPickupRequest{
			ArrivalMethod: "pickup_service",
			PickupPoints:  []dto.PickupPointInput{{City: "Prague", Name: "Hotel Europa"}},
			PickupTiming:  "custom",
			DropOff:       "other_location",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "custom pickup timing")

		_, err = uc.CommitMeetingPickup(context.Background(), params, dto.MeetingPickupRequest{
			ArrivalMethod: "pickup_service",
			PickupPoints:  []dto.PickupPointInput{{City: "Prague", Name: "Hotel Europa"}},
			PickupTiming:  "custom",
			CustomTiming:  "45 minutes before departure",
			DropOff:       "other_location",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "return address")
	})

	t.Run("valid pickup service commits", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		options.On("UpdateMeetingPickup", mock.Anything, "opt-1", mock.MatchedBy(func(s domain.MeetingSpec) bool {
			return s.Method == domain.ArrivalPickupService &&
				s.Pickup != nil && len(s.Pickup.Points) == 1 &&
				s.Pickup.DropOff == domain.DropOffSameAsPickup
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		resp, err := uc.CommitMeetingPickup(context.Background(), params, dto.MeetingPickupRequest{
			ArrivalMethod: "pickup_service",
			PickupPoints:  []dto.PickupPointInput{{City: "Prague", Name: "Hotel Europa", Lat: 50.08, Lng: 14.43}},
			PickupTiming:  "standard",
			DropOff:       "same_as_pickup",
		})
		require.NoError(t, err)
		assert.Contains(t, resp.NextAddress, "steps/2")
	})
}

func TestOptionUseCase_CommitAvailability(t *testing.T) {
	params := optionParams(wizard.OptionStepAvailability)

	request := dto.AvailabilityPricingRequest{
		AvailabilityMode: "time_slots",
		PricingMode:      "per_person",
		Schedules: []dto.ScheduleInput{{
			Weekday:   0,
			StartTime: "09:00",
			EndTime:   "12:00",
			Active:    true,
			Tiers:     []dto.PriceTierInput{{Currency: "USD", PerParticipant: 40, MinParticipants: 1, MaxParticipants: 10}},
		}},
	}

	t.Run("first commit needs no confirmation", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1"}, nil)
		options.On("UpdateAvailabilityPricing", mock.Anything, "opt-1", mock.MatchedBy(func(ap repository.AvailabilityPricing) bool {
			return ap.PricingMode == domain.PricingPerPerson &&
				len(ap.Schedules) == 1 &&
				ap.Schedules[0].Weekday == domain.Monday &&
				ap.Schedules[0].StartTime == "09:00"
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		_, err := uc.CommitAvailability(context.Background(), params, request)
		require.NoError(t, err)
		options.AssertExpectations(t)
	})

	t.Run("recommit over existing schedules demands confirmation", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1", Schedules: []domain.Schedule{{Weekday: domain.Monday}}}, nil)

		_, err := uc.CommitAvailability(context.Background(), params, request)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrResetConfirmationRequired.Code, appCode(t, err))
		options.AssertNotCalled(t, "UpdateAvailabilityPricing")
		options.AssertNotCalled(t, "ResetAvailabilityPricing")
	})

	t.Run("confirmed recommit resets then updates", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1", Schedules: []domain.Schedule{{Weekday: domain.Monday}}}, nil)
		options.On("ResetAvailabilityPricing", mock.Anything, "opt-1").
			Return(&domain.CommitResult{Success: true}, nil)
		options.On("UpdateAvailabilityPricing", mock.Anything, "opt-1", mock.Anything).
			Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		confirmed := request
		confirmed.ConfirmReset = true
		_, err := uc.CommitAvailability(context.Background(), params, confirmed)
		require.NoError(t, err)
		options.AssertExpectations(t)
	})

	t.Run("malformed season date rejected locally", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		bad := request
		bad.Schedules = []dto.ScheduleInput{{
			Weekday: 0, StartTime: "09:00", EndTime: "12:00", Active: true,
			SeasonStart: "10/01/2025",
		}}
		_, err := uc.CommitAvailability(context.Background(), params, bad)
		require.Error(t, err)
		options.AssertNotCalled(t, "UpdateAvailabilityPricing")
	})
}

func TestOptionUseCase_ContinueFromAvailability(t *testing.T) {
	params := optionParams(wizard.OptionStepAvailability)

	t.Run("incomplete blocks", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		options.On("CompletenessCheck", mock.Anything, "opt-1").Return(false, nil)

		_, err := uc.ContinueFromAvailability(context.Background(), params)
		assert.Equal(t, apperrors.ErrAvailabilityIncomplete.Code, appCode(t, err))
	})

	t.Run("complete advances to cutoff", func(t *testing.T) {
		options := new(MockOptionRepository)
		uc := newOptionUseCase(options, new(MockCacheRepository))

		options.On("CompletenessCheck", mock.Anything, "opt-1").Return(true, nil)

		resp, err := uc.ContinueFromAvailability(context.Background(), params)
		require.NoError(t, err)
		assert.Contains(t, resp.NextAddress, "steps/3")
	})
}

func TestOptionUseCase_CommitCutOff(t *testing.T) {
	params := optionParams(wizard.OptionStepCutOff)

	t.Run("finishing returns to the booking options step", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1"}, nil)
		options.On("ListTimeSlots", mock.Anything, "opt-1").
			Return([]string{"09:00 - 12:00"}, nil)
		options.On("UpdateCutOff", mock.Anything, "opt-1", mock.MatchedBy(func(s domain.CutOffSpec) bool {
			return s.Configured && s.DefaultMinutes == 30 && !s.DifferentTimes
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		resp, err := uc.CommitCutOff(context.Background(), params, dto.CutOffRequest{DefaultMinutes: 30})
		require.NoError(t, err)
		assert.Equal(t, "/activities/act-1/steps/8?currency=USD&lang=en", resp.NextAddress)
	})

	t.Run("apply to all broadcasts one slot's override", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1"}, nil)
		options.On("ListTimeSlots", mock.Anything, "opt-1").
			Return([]string{"09:00 - 12:00", "14:00 - 17:00"}, nil)
		options.On("UpdateCutOff", mock.Anything, "opt-1", mock.MatchedBy(func(s domain.CutOffSpec) bool {
			return s.Overrides["09:00 - 12:00"] == 120 && s.Overrides["14:00 - 17:00"] == 120
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		_, err := uc.CommitCutOff(context.Background(), params, dto.CutOffRequest{
			DefaultMinutes: 30,
			DifferentTimes: true,
			Overrides:      map[string]int{"09:00 - 12:00": 120},
			ApplyToAllFrom: "09:00 - 12:00",
		})
		require.NoError(t, err)
		options.AssertExpectations(t)
	})

	t.Run("turning different times off resets stored overrides", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1", CutOff: domain.CutOffSpec{
				DefaultMinutes: 30,
				DifferentTimes: true,
				Overrides:      map[string]int{"09:00 - 12:00": 240},
				Configured:     true,
			}}, nil)
		options.On("ListTimeSlots", mock.Anything, "opt-1").
			Return([]string{"09:00 - 12:00"}, nil)
		options.On("UpdateCutOff", mock.Anything, "opt-1", mock.MatchedBy(func(s domain.CutOffSpec) bool {
			return !s.DifferentTimes && s.Overrides["09:00 - 12:00"] == 60
		})).Return(&domain.CommitResult{Success: true}, nil)
		cache.On("DeleteOptionSnapshot", mock.Anything, "opt-1").Return(nil)

		_, err := uc.CommitCutOff(context.Background(), params, dto.CutOffRequest{DefaultMinutes: 60})
		require.NoError(t, err)
		options.AssertExpectations(t)
	})

	t.Run("off-list cut-off rejected locally", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{ID: "opt-1"}, nil)
		options.On("ListTimeSlots", mock.Anything, "opt-1").
			Return([]string{"09:00 - 12:00"}, nil)

		_, err := uc.CommitCutOff(context.Background(), params, dto.CutOffRequest{DefaultMinutes: 25})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidCutOff.Code, appCode(t, err))
		options.AssertNotCalled(t, "UpdateCutOff")
	})
}

func TestOptionUseCase_Hydrate(t *testing.T) {
	t.Run("without schedules skips the completeness check", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{
				ID: "opt-1", Title: "Standard",
				Meeting: domain.MeetingSpec{Method: domain.ArrivalMeetingPoint},
			}, nil)

		resp, err := uc.Hydrate(context.Background(), optionParams(wizard.OptionStepAvailability))
		require.NoError(t, err)
		assert.Equal(t, domain.OptionMeetingConfigured, resp.State)
		assert.Nil(t, resp.Summary)
		options.AssertNotCalled(t, "CompletenessCheck")
	})

	t.Run("with schedules derives state from the supplier verdict", func(t *testing.T) {
		options := new(MockOptionRepository)
		cache := new(MockCacheRepository)
		uc := newOptionUseCase(options, cache)

		cache.On("GetOptionSnapshot", mock.Anything, "opt-1").
			Return(&domain.BookingOptionDraft{
				ID: "opt-1", Title: "Standard",
				Meeting:     domain.MeetingSpec{Method: domain.ArrivalMeetingPoint},
				PricingMode: domain.PricingPerPerson,
				Schedules: []domain.Schedule{{
					Weekday: domain.Monday, StartTime: "09:00", EndTime: "12:00", Active: true,
					Tiers: []domain.PriceTier{{Currency: "USD", PerParticipant: 40}},
				}},
			}, nil)
		options.On("CompletenessCheck", mock.Anything, "opt-1").Return(true, nil)

		resp, err := uc.Hydrate(context.Background(), optionParams(wizard.OptionStepCutOff))
		require.NoError(t, err)
		assert.Equal(t, domain.OptionAvailabilityComplete, resp.State)
		require.NotNil(t, resp.Summary)
		assert.Equal(t, "40.00 USD", resp.Summary.PriceRange)
	})

	t.Run("missing option id on a deep step redirects", func(t *testing.T) {
		uc := newOptionUseCase(new(MockOptionRepository), new(MockCacheRepository))

		p := optionParams(wizard.OptionStepMeeting)
		p.OptionID = ""
		_, err := uc.Hydrate(context.Background(), p)
		var redirect *wizard.RedirectError
		require.True(t, stderrors.As(err, &redirect))
		assert.Equal(t, wizard.StepBookingOptions, redirect.To.StepIndex)
	})
}

func TestOptionUseCase_StepMirror(t *testing.T) {
	cache := new(MockCacheRepository)
	uc := newOptionUseCase(new(MockOptionRepository), cache)

	payload := dto.OptionSetupRequest{Title: "Half-typed title"}
	cache.On("SetStepMirror", mock.Anything, "opt-1", wizard.OptionStepSetup, mock.Anything, time.Hour).Return(nil)
	uc.MirrorStep(context.Background(), "opt-1", wizard.OptionStepSetup, payload)

	stored := cache.Calls[0].Arguments.Get(3).([]byte)
	cache.On("GetStepMirror", mock.Anything, "opt-1", wizard.OptionStepSetup).Return(stored, nil)

	var restored dto.OptionSetupRequest
	require.True(t, uc.ReadMirror(context.Background(), "opt-1", wizard.OptionStepSetup, &restored))
	assert.Equal(t, "Half-typed title", restored.Title)
}
