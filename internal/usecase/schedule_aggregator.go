package usecase

import (
	"fmt"
	"time"

	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/usecase/dto"
)

// Display constants for the aggregated calendar view. Dates are always
// rendered in one fixed regional convention (day/month/year), independent of
// the viewer's locale. This is a deliberate display policy.
const (
	displayDateLayout = "02/01/2006"

	// OpenEnded is rendered when no schedule carries a season end.
	OpenEnded = "open-ended"

	// PriceUndefined is rendered when no price tier exists.
	PriceUndefined = "undefined"

	// placeholderSlot fills weekdays that have no active schedule.
	placeholderSlot = "-"
)

// seasonStartPlaceholder is the fixed date shown when a schedule has no
// season start of its own.
var seasonStartPlaceholder = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// AggregateSchedules turns a flat schedule list into the weekly grid plus
// merged date and price ranges. Pure: no I/O, referentially transparent.
func AggregateSchedules(schedules []domain.Schedule, mode domain.PricingMode) dto.ScheduleSummary {
	return dto.ScheduleSummary{
		Week:       weeklyGrid(schedules),
		DateRange:  mergedDateRange(schedules),
		PriceRange: mergedPriceRange(schedules, mode),
	}
}

// weeklyGrid maps each of the 7 weekdays to the ordered list of active
// schedules on that day. Input order is preserved within a day.
func weeklyGrid(schedules []domain.Schedule) []dto.DaySlots {
	week := make([]dto.DaySlots, 7)
	for wd := domain.Monday; wd <= domain.Sunday; wd++ {
		day := dto.DaySlots{Weekday: wd.String()}
		for _, s := range schedules {
			if s.Weekday == wd && s.Active {
				day.Schedules = append(day.Schedules, s)
				day.Slots = append(day.Slots, s.TimeSlot())
			}
		}
		if len(day.Slots) == 0 {
			day.Slots = []string{placeholderSlot}
		}
		week[wd] = day
	}
	return week
}

// mergedDateRange merges the schedules' season windows. A single schedule
// keeps its own window; multiple schedules merge to [min(starts), max(ends)].
// A schedule without a season end never ends, so the merged range is
// open-ended as soon as one end is absent.
func mergedDateRange(schedules []domain.Schedule) string {
	if len(schedules) == 0 {
		return seasonStartPlaceholder.Format(displayDateLayout) + " - " + OpenEnded
	}

	minStart := seasonStart(schedules[0])
	openEnd := schedules[0].SeasonEnd == nil
	var maxEnd time.Time
	if !openEnd {
		maxEnd = *schedules[0].SeasonEnd
	}

	for _, s := range schedules[1:] {
		if start := seasonStart(s); start.Before(minStart) {
			minStart = start
		}
		if s.SeasonEnd == nil {
			openEnd = true
			continue
		}
		if s.SeasonEnd.After(maxEnd) {
			maxEnd = *s.SeasonEnd
		}
	}

	end := OpenEnded
	if !openEnd {
		end = maxEnd.Format(displayDateLayout)
	}
	return minStart.Format(displayDateLayout) + " - " + end
}

func seasonStart(s domain.Schedule) time.Time {
	if s.SeasonStart == nil {
		return seasonStartPlaceholder
	}
	return *s.SeasonStart
}

// mergedPriceRange merges all price tiers across all schedules. Per-person
// mode compares the per-participant price, per-group mode the total price.
// Tiers are not assumed to share a currency: each bound renders with its own.
func mergedPriceRange(schedules []domain.Schedule, mode domain.PricingMode) string {
	var tiers []domain.PriceTier
	for _, s := range schedules {
		tiers = append(tiers, s.Tiers...)
	}
	if len(tiers) == 0 {
		return PriceUndefined
	}

	value := func(t domain.PriceTier) float64 {
		if mode == domain.PricingPerGroup {
			return t.Total
		}
		return t.PerParticipant
	}

	lo, hi := tiers[0], tiers[0]
	for _, t := range tiers[1:] {
		if value(t) < value(lo) {
			lo = t
		}
		if value(t) > value(hi) {
			hi = t
		}
	}

	if len(tiers) == 1 {
		return formatPrice(value(lo), lo.Currency)
	}
	return formatPrice(value(lo), lo.Currency) + " - " + formatPrice(value(hi), hi.Currency)
}

func formatPrice(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}
