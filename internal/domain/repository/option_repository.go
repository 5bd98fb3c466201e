package repository

import (
	"context"

	"github.com/activity-portal/internal/domain"
)

// OptionSetup - the fields the setup step commits.
type OptionSetup struct {
	Title        string
	MaxGroupSize int
	Languages    []string
	Private      bool
	Duration     domain.DurationSpec
}

// AvailabilityPricing - the fields the availability & pricing step commits.
type AvailabilityPricing struct {
	AvailabilityMode domain.AvailabilityMode
	PricingMode      domain.PricingMode
	Schedules        []domain.Schedule
}

// OptionRepository - per-step remote persistence contract for booking
// options.
type OptionRepository interface {
	Create(ctx context.Context, activityID string) (*domain.CommitResult, error)
	Get(ctx context.Context, activityID, optionID, lang, currency string) (*domain.BookingOptionDraft, error)

	UpdateSetup(ctx context.Context, optionID string, setup OptionSetup) (*domain.CommitResult, error)
	UpdateMeetingPickup(ctx context.Context, optionID string, meeting domain.MeetingSpec) (*domain.CommitResult, error)
	UpdateAvailabilityPricing(ctx context.Context, optionID string, ap AvailabilityPricing) (*domain.CommitResult, error)
	UpdateCutOff(ctx context.Context, optionID string, cutoff domain.CutOffSpec) (*domain.CommitResult, error)

	// CompletenessCheck asks the supplier whether availability and pricing
	// are fully configured. The rule itself lives server-side; the client
	// only gates navigation on the returned boolean.
	CompletenessCheck(ctx context.Context, optionID string) (bool, error)

	// ResetAvailabilityPricing discards the option's existing schedule
	// configuration. Destructive, requires explicit user confirmation
	// upstream.
	ResetAvailabilityPricing(ctx context.Context, optionID string) (*domain.CommitResult, error)

	// ListTimeSlots returns the flat list of departure times, used by the
	// cut-off step to seed per-slot overrides.
	ListTimeSlots(ctx context.Context, optionID string) ([]string, error)
}
