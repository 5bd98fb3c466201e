package usecase

import (
	"github.com/activity-portal/internal/domain"
	"github.com/activity-portal/internal/pkg/errors"
)

// AllowedCutOffMinutes - the fixed discrete cut-off choices, 0 minutes to
// 10 hours. Values outside this set are rejected by construction.
var AllowedCutOffMinutes = []int{0, 15, 30, 45, 60, 90, 120, 180, 240, 300, 360, 420, 480, 540, 600}

// IsAllowedCutOff reports whether minutes is a member of the allowed set.
func IsAllowedCutOff(minutes int) bool {
	for _, v := range AllowedCutOffMinutes {
		if v == minutes {
			return true
		}
	}
	return false
}

// CutOffConfig reconciles the global default cut-off with per-slot overrides
// for one booking option's departure slots.
type CutOffConfig struct {
	slots []string
	spec  domain.CutOffSpec
}

// NewCutOffConfig builds a config over the option's time slots from a stored
// spec. Stored overrides are kept even while DifferentTimes is off: they are
// superseded, not deleted.
func NewCutOffConfig(slots []string, spec domain.CutOffSpec) (*CutOffConfig, error) {
	if !IsAllowedCutOff(spec.DefaultMinutes) {
		return nil, errors.ErrInvalidCutOff.WithDetails(map[string]interface{}{"minutes": spec.DefaultMinutes})
	}
	overrides := make(map[string]int, len(spec.Overrides))
	for slot, m := range spec.Overrides {
		if !IsAllowedCutOff(m) {
			return nil, errors.ErrInvalidCutOff.WithDetails(map[string]interface{}{"slot": slot, "minutes": m})
		}
		overrides[slot] = m
	}
	spec.Overrides = overrides

	c := &CutOffConfig{slots: append([]string(nil), slots...), spec: spec}
	if spec.DifferentTimes {
		c.seedMissing()
	}
	return c, nil
}

// SetDefault changes the global default. Effective values of slots without
// an override follow immediately.
func (c *CutOffConfig) SetDefault(minutes int) error {
	if !IsAllowedCutOff(minutes) {
		return errors.ErrInvalidCutOff.WithDetails(map[string]interface{}{"minutes": minutes})
	}
	c.spec.DefaultMinutes = minutes
	return nil
}

// SetDifferentTimes toggles per-slot overrides. Enabling seeds each slot
// from the current global default exactly once; slots that already carry an
// override keep it. Disabling resets every override back to the global
// default. The reset is destructive to overrides, matching the product
// behavior.
func (c *CutOffConfig) SetDifferentTimes(enabled bool) {
	if enabled == c.spec.DifferentTimes {
		return
	}
	c.spec.DifferentTimes = enabled
	if enabled {
		c.seedMissing()
		return
	}
	for slot := range c.spec.Overrides {
		c.spec.Overrides[slot] = c.spec.DefaultMinutes
	}
}

func (c *CutOffConfig) seedMissing() {
	if c.spec.Overrides == nil {
		c.spec.Overrides = make(map[string]int, len(c.slots))
	}
	for _, slot := range c.slots {
		if _, ok := c.spec.Overrides[slot]; !ok {
			c.spec.Overrides[slot] = c.spec.DefaultMinutes
		}
	}
}

// SetSlot sets one slot's override. Only meaningful while DifferentTimes is
// enabled.
func (c *CutOffConfig) SetSlot(slot string, minutes int) error {
	if !IsAllowedCutOff(minutes) {
		return errors.ErrInvalidCutOff.WithDetails(map[string]interface{}{"slot": slot, "minutes": minutes})
	}
	if c.spec.Overrides == nil {
		c.spec.Overrides = make(map[string]int, len(c.slots))
	}
	c.spec.Overrides[slot] = minutes
	return nil
}

// ApplyToAll broadcasts one slot's effective value to every slot.
func (c *CutOffConfig) ApplyToAll(slot string) {
	v := c.Effective(slot)
	for _, s := range c.slots {
		if c.spec.Overrides == nil {
			c.spec.Overrides = make(map[string]int, len(c.slots))
		}
		c.spec.Overrides[s] = v
	}
}

// Effective returns the slot's effective cut-off: the override when
// DifferentTimes is on and one exists, the global default otherwise.
func (c *CutOffConfig) Effective(slot string) int {
	if c.spec.DifferentTimes {
		if v, ok := c.spec.Overrides[slot]; ok {
			return v
		}
	}
	return c.spec.DefaultMinutes
}

// EffectiveAll returns the effective cut-off for every slot.
func (c *CutOffConfig) EffectiveAll() map[string]int {
	out := make(map[string]int, len(c.slots))
	for _, slot := range c.slots {
		out[slot] = c.Effective(slot)
	}
	return out
}

// Spec returns the reconciled spec for committing to the supplier.
func (c *CutOffConfig) Spec() domain.CutOffSpec {
	return c.spec
}
