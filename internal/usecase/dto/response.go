package dto

import "github.com/activity-portal/internal/domain"

// CommitResponse - outcome of a successful step commit: where to go next,
// plus the server message and any created entity ID.
type CommitResponse struct {
	Message     string `json:"message,omitempty"`
	CreatedID   string `json:"created_id,omitempty"`
	NextAddress string `json:"next_address"`
}

// ActivityHydrateResponse - the snapshot a step renders when (re)entered.
type ActivityHydrateResponse struct {
	Draft   *domain.ActivityDraft `json:"draft,omitempty"`
	Step    int                   `json:"step"`
	Address string                `json:"address"`
}

// OptionHydrateResponse - sub-wizard step snapshot with derived state and,
// once schedules exist, the aggregated calendar view.
type OptionHydrateResponse struct {
	Option  *domain.BookingOptionDraft `json:"option,omitempty"`
	State   domain.OptionState         `json:"state"`
	Step    int                        `json:"step"`
	Address string                     `json:"address"`
	Summary *ScheduleSummary           `json:"summary,omitempty"`
}

// DaySlots - one weekday's ordered schedule entries for the weekly grid.
// Days with no active schedule carry the fixed placeholder slot.
type DaySlots struct {
	Weekday   string            `json:"weekday"`
	Slots     []string          `json:"slots"`
	Schedules []domain.Schedule `json:"-"`
}

// ScheduleSummary - the weekly calendar view of an option's schedules with
// merged date and price ranges.
type ScheduleSummary struct {
	Week       []DaySlots `json:"week"`
	DateRange  string     `json:"date_range"`
	PriceRange string     `json:"price_range"`
}

// CutOffView - effective cut-off per slot, as rendered by the cut-off step.
type CutOffView struct {
	DefaultMinutes int            `json:"default_minutes"`
	DifferentTimes bool           `json:"different_times"`
	Effective      map[string]int `json:"effective"`
	AllowedValues  []int          `json:"allowed_values"`
}

// ImageValidationResult - per-file outcome of the image step's validation.
type ImageValidationResult struct {
	FileName string `json:"file_name"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
	Width    int    `json:"width,omitempty"`
}

// CompletenessResponse - the supplier's availability/pricing completeness
// verdict for an option.
type CompletenessResponse struct {
	IsComplete bool `json:"is_complete"`
}
