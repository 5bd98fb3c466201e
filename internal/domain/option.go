package domain

// Field limits for the booking option sub-wizard.
const (
	MaxOptionTitleLen        = 60
	MaxMeetingDescriptionLen = 1000

	MaxFixedDurationDays    = 30
	MaxValidityDays         = 365

	// UnlimitedGroupSize is the sentinel for "no group size limit".
	UnlimitedGroupSize = 0
)

// DurationMode selects between a fixed activity duration and an open validity
// window. The two are mutually exclusive server-side.
type DurationMode string

const (
	DurationFixed    DurationMode = "fixed"
	DurationValidity DurationMode = "validity"
)

// DurationSpec carries both mode's fields; only the fields of the selected
// mode may be non-zero when committed.
type DurationSpec struct {
	Mode         DurationMode `json:"mode"`
	Days         int          `json:"days,omitempty"`
	Hours        int          `json:"hours,omitempty"`
	Minutes      int          `json:"minutes,omitempty"`
	ValidityDays int          `json:"validity_days,omitempty"`
}

// ClearUnselected zeroes the fields of whichever mode is not active, so a
// toggle in the setup form never leaks stale values into the commit.
func (d *DurationSpec) ClearUnselected() {
	switch d.Mode {
	case DurationFixed:
		d.ValidityDays = 0
	case DurationValidity:
		d.Days, d.Hours, d.Minutes = 0, 0, 0
	}
}

// ArrivalMethod - how customers join the activity.
type ArrivalMethod string

const (
	ArrivalMeetingPoint  ArrivalMethod = "meeting_point"
	ArrivalPickupService ArrivalMethod = "pickup_service"
)

// MeetingPoint - a single fixed meeting location with a resolved address.
type MeetingPoint struct {
	Address     string `json:"address"`
	Location    LatLng `json:"location"`
	Description string `json:"description,omitempty"`
}

// PickupTiming - when customers are picked up relative to departure.
type PickupTiming string

const (
	PickupTimingStandard PickupTiming = "standard"
	PickupTimingCustom   PickupTiming = "custom"
)

// DropOffPolicy - where customers are returned after the activity.
type DropOffPolicy string

const (
	DropOffSameAsPickup  DropOffPolicy = "same_as_pickup"
	DropOffOtherLocation DropOffPolicy = "other_location"
)

type PickupPoint struct {
	City     string `json:"city"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location LatLng `json:"location"`
	Note     string `json:"note,omitempty"`
}

type PickupService struct {
	Points          []PickupPoint `json:"points"`
	Timing          PickupTiming  `json:"timing"`
	CustomTiming    string        `json:"custom_timing,omitempty"`
	TransportMode   string        `json:"transport_mode,omitempty"`
	DropOff         DropOffPolicy `json:"drop_off"`
	ReturnAddresses []string      `json:"return_addresses,omitempty"`
}

// MeetingSpec branches on Method: exactly one of Point or Pickup is set.
type MeetingSpec struct {
	Method ArrivalMethod  `json:"method"`
	Point  *MeetingPoint  `json:"point,omitempty"`
	Pickup *PickupService `json:"pickup,omitempty"`
}

// OptionState - progress of a booking option through the sub-wizard.
// AvailabilityComplete is never derived locally: the supplier's completeness
// check is the only authority, because schedule/price-tier validity rules
// live server-side.
type OptionState string

const (
	OptionCreated              OptionState = "created"
	OptionSetupComplete        OptionState = "setup_complete"
	OptionMeetingConfigured    OptionState = "meeting_configured"
	OptionAvailabilityPending  OptionState = "availability_pending"
	OptionAvailabilityComplete OptionState = "availability_complete"
	OptionCutOffConfigured     OptionState = "cutoff_configured"
)

// AvailabilityMode - explicit departure time slots vs. opening hours.
type AvailabilityMode string

const (
	AvailabilityTimeSlots    AvailabilityMode = "time_slots"
	AvailabilityOpeningHours AvailabilityMode = "opening_hours"
)

// BookingOptionDraft - one sellable configuration of an activity, owned by
// exactly one ActivityDraft.
type BookingOptionDraft struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`

	Title        string   `json:"title"`
	MaxGroupSize int      `json:"max_group_size"` // UnlimitedGroupSize means no limit
	Languages    []string `json:"languages,omitempty"`
	Private      bool     `json:"private"`

	Duration DurationSpec `json:"duration"`
	Meeting  MeetingSpec  `json:"meeting"`

	AvailabilityMode AvailabilityMode `json:"availability_mode,omitempty"`
	PricingMode      PricingMode      `json:"pricing_mode,omitempty"`
	Schedules        []Schedule       `json:"schedules,omitempty"`

	CutOff CutOffSpec `json:"cutoff"`
}

// DeriveState walks the sub-wizard progression from the fields that are
// populated. availabilityComplete must come from the supplier completeness
// check.
func (o *BookingOptionDraft) DeriveState(availabilityComplete bool) OptionState {
	if o.Title == "" {
		return OptionCreated
	}
	if o.Meeting.Method == "" {
		return OptionSetupComplete
	}
	if len(o.Schedules) == 0 && !availabilityComplete {
		return OptionMeetingConfigured
	}
	if !availabilityComplete {
		return OptionAvailabilityPending
	}
	if o.CutOff.DefaultMinutes == 0 && !o.CutOff.Configured {
		return OptionAvailabilityComplete
	}
	return OptionCutOffConfigured
}
