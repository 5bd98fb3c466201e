package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/activity-portal/internal/wizard"
)

func TestActivityGraphShape(t *testing.T) {
	g := wizard.Activity()
	require.Equal(t, 10, g.Len())

	entry := g.Entry()
	assert.Equal(t, "category", entry.Name)
	assert.False(t, entry.RequiresEntity, "the category step is the only one enterable without a draft")

	for i := 1; i < g.Len(); i++ {
		step, ok := g.Step(i)
		require.True(t, ok)
		assert.True(t, step.RequiresEntity, "step %s must require an activity id", step.Name)
	}

	last, ok := g.Step(g.Len() - 1)
	require.True(t, ok)
	assert.Equal(t, "itinerary", last.Name)
	assert.True(t, last.Skippable)
}

func TestOptionGraphShape(t *testing.T) {
	g := wizard.Option()
	require.Equal(t, 4, g.Len())

	names := make([]string, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		step, _ := g.Step(i)
		names = append(names, step.Name)
	}
	assert.Equal(t, []string{"setup", "meeting-pickup", "availability-pricing", "cutoff"}, names)

	setup := g.Entry()
	assert.False(t, setup.RequiresOption, "setup creates the option, it cannot require one")
}

func TestAuthorizeRedirectsWithoutEntity(t *testing.T) {
	g := wizard.Activity()

	redirect := g.Authorize(wizard.Params{Lang: "en", Currency: "USD", StepIndex: wizard.StepDescription})
	require.NotNil(t, redirect)
	assert.Equal(t, wizard.StepCategory, redirect.To.StepIndex)
	assert.Empty(t, redirect.To.EntityID)
	assert.Equal(t, "en", redirect.To.Lang)

	assert.Nil(t, g.Authorize(wizard.Params{Lang: "en", Currency: "USD", StepIndex: wizard.StepCategory}))
	assert.Nil(t, g.Authorize(wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.StepDescription}))
}

func TestAuthorizeOptionStepsRequireOptionID(t *testing.T) {
	g := wizard.Option()

	redirect := g.Authorize(wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.OptionStepCutOff})
	require.NotNil(t, redirect)
	assert.Equal(t, wizard.StepBookingOptions, redirect.To.StepIndex)
	assert.Equal(t, "act-1", redirect.To.EntityID)

	ok := wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.OptionStepCutOff, OptionID: "opt-1"}
	assert.Nil(t, g.Authorize(ok))
}

func TestNextAddressWalksTheGraph(t *testing.T) {
	p := wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.StepTitle}
	next, err := wizard.ParseAddress(wizard.NextAddress(p))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepDescription, next.StepIndex)
	assert.Equal(t, "act-1", next.EntityID)
}

func TestNextAddressAfterLastOptionStepReturnsToBookingOptions(t *testing.T) {
	p := wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.OptionStepCutOff, OptionID: "opt-1"}
	next, err := wizard.ParseAddress(wizard.NextAddress(p))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepBookingOptions, next.StepIndex)
	assert.Empty(t, next.OptionID, "leaving the sub-wizard drops the option id")
}

func TestNextAddressAfterItineraryIsTheActivityList(t *testing.T) {
	p := wizard.Params{EntityID: "act-1", Lang: "en", Currency: "USD", StepIndex: wizard.StepItinerary}
	assert.Equal(t, "/activities?lang=en&currency=USD", wizard.NextAddress(p))
}
