package domain

import "time"

// Weekday follows the wizard convention 0=Monday .. 6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "Unknown"
	}
	return weekdayNames[w]
}

// PricingMode - per-person vs. per-group pricing for an option's schedules.
type PricingMode string

const (
	PricingPerPerson PricingMode = "per_person"
	PricingPerGroup  PricingMode = "per_group"
)

// PriceTier - one price point attached to a schedule. PerParticipant is used
// in per-person mode, Total in per-group mode; the other stays zero.
type PriceTier struct {
	Currency        string  `json:"currency"`
	PerParticipant  float64 `json:"per_participant,omitempty"`
	Total           float64 `json:"total,omitempty"`
	MinParticipants int     `json:"min_participants,omitempty"`
	MaxParticipants int     `json:"max_participants,omitempty"`
}

// Schedule - a recurring weekly time slot with an optional seasonal validity
// window and its own price tiers. Several schedules may share a weekday
// (distinct time slots) or overlap in date range (distinct pricing seasons).
type Schedule struct {
	ID          string      `json:"id,omitempty"`
	Weekday     Weekday     `json:"weekday"`
	StartTime   string      `json:"start_time"` // "15:04"
	EndTime     string      `json:"end_time"`
	Active      bool        `json:"active"`
	SeasonStart *time.Time  `json:"season_start,omitempty"`
	SeasonEnd   *time.Time  `json:"season_end,omitempty"`
	Tiers       []PriceTier `json:"tiers,omitempty"`
}

// TimeSlot renders the schedule's slot as "09:00 - 12:00".
func (s Schedule) TimeSlot() string {
	return s.StartTime + " - " + s.EndTime
}
