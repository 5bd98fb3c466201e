package wizard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// newEntityPlaceholder marks the address of the very first activity step,
// before a draft ID exists.
const newEntityPlaceholder = "new"

// Params - the identifying parameters every wizard step reads and writes
// through. OptionID is only set inside the booking option sub-wizard.
type Params struct {
	EntityID  string
	Lang      string
	Currency  string
	StepIndex int
	OptionID  string
}

// InOptionWizard reports whether the address points into the booking option
// sub-wizard.
func (p Params) InOptionWizard() bool {
	return p.OptionID != ""
}

// RedirectError - a silent redirect to the owning entry step when a step's
// precondition is not met. Not a user-facing error.
type RedirectError struct {
	To Params
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s", BuildAddress(e.To))
}

// BuildAddress encodes params into a shareable address. Round-trip safe:
// ParseAddress(BuildAddress(p)) == p for any valid p.
func BuildAddress(p Params) string {
	id := p.EntityID
	if id == "" {
		id = newEntityPlaceholder
	}

	q := url.Values{}
	q.Set("lang", p.Lang)
	q.Set("currency", p.Currency)
	if p.OptionID != "" {
		q.Set("option", p.OptionID)
	}

	return fmt.Sprintf("/activities/%s/steps/%d?%s", url.PathEscape(id), p.StepIndex, q.Encode())
}

// ParseAddress decodes a wizard address back into params. Every step must
// tolerate direct entry via a fully qualified address (bookmark/resume).
func ParseAddress(raw string) (Params, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Params{}, fmt.Errorf("parse address: %w", err)
	}

	// Split the escaped form so an entity ID containing "/" stays one segment.
	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(parts) != 4 || parts[0] != "activities" || parts[2] != "steps" {
		return Params{}, fmt.Errorf("parse address: unexpected path %q", u.Path)
	}

	id, err := url.PathUnescape(parts[1])
	if err != nil {
		return Params{}, fmt.Errorf("parse address: %w", err)
	}
	if id == newEntityPlaceholder {
		id = ""
	}

	step, err := strconv.Atoi(parts[3])
	if err != nil {
		return Params{}, fmt.Errorf("parse address: invalid step index %q", parts[3])
	}

	q := u.Query()
	return Params{
		EntityID:  id,
		Lang:      q.Get("lang"),
		Currency:  q.Get("currency"),
		StepIndex: step,
		OptionID:  q.Get("option"),
	}, nil
}
