package domain

// CutOffSpec - booking cut-off configuration for an option. A global default
// applies to every time slot unless DifferentTimes is enabled, in which case
// Overrides (keyed by departure time slot) take effect. Stored overrides are
// ignored, not deleted, while the toggle is off.
type CutOffSpec struct {
	DefaultMinutes int            `json:"default_minutes"`
	DifferentTimes bool           `json:"different_times"`
	Overrides      map[string]int `json:"overrides,omitempty"`
	Configured     bool           `json:"configured"`
}
