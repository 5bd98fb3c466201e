package wizard

// Activity wizard step indexes, in commit order.
const (
	StepCategory = iota
	StepTitle
	StepDescription
	StepRecommendations
	StepRestrictions
	StepInclusions
	StepExclusions
	StepImages
	StepBookingOptions
	StepItinerary
)

// Booking option sub-wizard step indexes.
const (
	OptionStepSetup = iota
	OptionStepMeeting
	OptionStepAvailability
	OptionStepCutOff
)

// Step declares what a wizard step needs to be entered and which commit
// operation it invokes.
type Step struct {
	Index          int
	Name           string
	Commit         string
	RequiresEntity bool
	RequiresOption bool
	Skippable      bool
}

// Graph - an ordered step list with preconditions and successor transitions.
// Two instances exist: the activity graph and the booking option graph.
type Graph struct {
	name  string
	steps []Step
}

var activityGraph = &Graph{
	name: "activity",
	steps: []Step{
		{Index: StepCategory, Name: "category", Commit: "create-activity"},
		{Index: StepTitle, Name: "title", Commit: "update-title", RequiresEntity: true},
		{Index: StepDescription, Name: "description", Commit: "update-description", RequiresEntity: true},
		{Index: StepRecommendations, Name: "recommendations", Commit: "update-recommendations", RequiresEntity: true},
		{Index: StepRestrictions, Name: "restrictions", Commit: "update-restrictions", RequiresEntity: true},
		{Index: StepInclusions, Name: "inclusions", Commit: "update-inclusions", RequiresEntity: true},
		{Index: StepExclusions, Name: "exclusions", Commit: "update-exclusions", RequiresEntity: true},
		{Index: StepImages, Name: "images", Commit: "update-images", RequiresEntity: true},
		{Index: StepBookingOptions, Name: "booking-options", Commit: "confirm-options", RequiresEntity: true},
		{Index: StepItinerary, Name: "itinerary", Commit: "update-itinerary", RequiresEntity: true, Skippable: true},
	},
}

var optionGraph = &Graph{
	name: "option",
	steps: []Step{
		{Index: OptionStepSetup, Name: "setup", Commit: "option-setup", RequiresEntity: true},
		{Index: OptionStepMeeting, Name: "meeting-pickup", Commit: "option-meeting-pickup", RequiresEntity: true, RequiresOption: true},
		{Index: OptionStepAvailability, Name: "availability-pricing", Commit: "option-availability-pricing", RequiresEntity: true, RequiresOption: true},
		{Index: OptionStepCutOff, Name: "cutoff", Commit: "option-cutoff", RequiresEntity: true, RequiresOption: true},
	},
}

// Activity returns the 10-step activity graph.
func Activity() *Graph { return activityGraph }

// Option returns the 4-step booking option graph. It is entered from the
// booking-options step of the activity graph and returns to it on completion.
func Option() *Graph { return optionGraph }

func (g *Graph) Name() string { return g.name }

func (g *Graph) Len() int { return len(g.steps) }

// Step returns the step at index i.
func (g *Graph) Step(i int) (Step, bool) {
	if i < 0 || i >= len(g.steps) {
		return Step{}, false
	}
	return g.steps[i], true
}

// Entry returns the graph's entry step.
func (g *Graph) Entry() Step {
	return g.steps[0]
}

// Next returns the successor of step i, or false when i is the last step.
func (g *Graph) Next(i int) (Step, bool) {
	if i < 0 || i+1 >= len(g.steps) {
		return Step{}, false
	}
	return g.steps[i+1], true
}

// ForParams picks the graph an address points into.
func ForParams(p Params) *Graph {
	if p.InOptionWizard() {
		return optionGraph
	}
	return activityGraph
}

// Authorize checks the precondition for entering the step an address points
// at. A missing upstream ID yields a silent redirect to the owning entry
// step, never an error page. Missing EntityID is legal only on the very
// first activity step.
func (g *Graph) Authorize(p Params) *RedirectError {
	step, ok := g.Step(p.StepIndex)
	if !ok {
		return &RedirectError{To: g.entryParams(p)}
	}
	if step.RequiresEntity && p.EntityID == "" {
		return &RedirectError{To: Params{Lang: p.Lang, Currency: p.Currency, StepIndex: StepCategory}}
	}
	if step.RequiresOption && p.OptionID == "" {
		return &RedirectError{To: Params{
			EntityID:  p.EntityID,
			Lang:      p.Lang,
			Currency:  p.Currency,
			StepIndex: StepBookingOptions,
		}}
	}
	return nil
}

func (g *Graph) entryParams(p Params) Params {
	if g == optionGraph {
		return Params{EntityID: p.EntityID, Lang: p.Lang, Currency: p.Currency, StepIndex: StepBookingOptions}
	}
	return Params{Lang: p.Lang, Currency: p.Currency, StepIndex: StepCategory}
}

// NextAddress builds the successor address after a successful commit at p.
// Completing the option graph returns to the activity booking-options step;
// completing the activity graph lands on the activity list.
func NextAddress(p Params) string {
	g := ForParams(p)
	next, ok := g.Next(p.StepIndex)
	if !ok {
		if g == optionGraph {
			return BuildAddress(Params{
				EntityID:  p.EntityID,
				Lang:      p.Lang,
				Currency:  p.Currency,
				StepIndex: StepBookingOptions,
			})
		}
		return ActivityListAddress(p.Lang, p.Currency)
	}

	return BuildAddress(Params{
		EntityID:  p.EntityID,
		Lang:      p.Lang,
		Currency:  p.Currency,
		StepIndex: next.Index,
		OptionID:  p.OptionID,
	})
}

// ActivityListAddress - the final redirect target once a draft is created
// (itinerary finished or skipped).
func ActivityListAddress(lang, currency string) string {
	return "/activities?lang=" + lang + "&currency=" + currency
}
