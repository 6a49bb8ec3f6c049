package workflow

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsForKnownKinds(t *testing.T) {
	for _, kind := range []models.WorkflowKind{
		models.KindAppointment, models.KindLabTest, models.KindNanny, models.KindEmergency,
	} {
		steps, err := StepsFor(kind)
		require.NoError(t, err, "kind %s", kind)
		require.NotEmpty(t, steps, "kind %s", kind)

		// Exactly one terminal step, and it is the last.
		for i, s := range steps {
			if i == len(steps)-1 {
				assert.True(t, s.Terminal, "kind %s: last step %s must be terminal", kind, s.ID)
			} else {
				assert.False(t, s.Terminal, "kind %s: step %s must not be terminal", kind, s.ID)
			}
		}

		// No duplicate step IDs within a kind.
		seen := make(map[models.StepID]bool)
		for _, s := range steps {
			assert.False(t, seen[s.ID], "kind %s: duplicate step %s", kind, s.ID)
			seen[s.ID] = true
		}
	}
}

func TestStepsForUnknownKind(t *testing.T) {
	_, err := StepsFor(models.WorkflowKind("car-wash"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestApplicableStepsClinicLocation(t *testing.T) {
	draft := models.NewDraft(models.KindAppointment)

	steps, err := ApplicableSteps(draft)
	require.NoError(t, err)
	assert.False(t, containsStep(steps, models.StepClinicLocation),
		"clinic-location must not apply before a consultation type is chosen")

	draft.Fields["consultationType"] = "in-person"
	steps, err = ApplicableSteps(draft)
	require.NoError(t, err)
	assert.True(t, containsStep(steps, models.StepClinicLocation))

	draft.Fields["consultationType"] = "video"
	steps, err = ApplicableSteps(draft)
	require.NoError(t, err)
	assert.False(t, containsStep(steps, models.StepClinicLocation))
}

func TestApplicableStepsLabCenter(t *testing.T) {
	draft := models.NewDraft(models.KindLabTest)

	// Before a collection type is chosen the lab-center step is still shown.
	steps, err := ApplicableSteps(draft)
	require.NoError(t, err)
	assert.True(t, containsStep(steps, models.StepLabCenter))

	draft.Fields["collectionType"] = "home"
	steps, err = ApplicableSteps(draft)
	require.NoError(t, err)
	assert.False(t, containsStep(steps, models.StepLabCenter),
		"home collection needs no lab-center selection")

	draft.Fields["collectionType"] = "lab-visit"
	steps, err = ApplicableSteps(draft)
	require.NoError(t, err)
	assert.True(t, containsStep(steps, models.StepLabCenter))
}

func TestApplicableStepsAlwaysEndTerminal(t *testing.T) {
	for kind := range stepTables {
		draft := models.NewDraft(kind)
		steps, err := ApplicableSteps(draft)
		require.NoError(t, err)
		require.NotEmpty(t, steps)
		assert.True(t, steps[len(steps)-1].Terminal, "kind %s", kind)
	}
}

func TestStepCompleteReportsMissingFields(t *testing.T) {
	steps, err := StepsFor(models.KindAppointment)
	require.NoError(t, err)
	details := stepByID(t, steps, models.StepDetails)

	draft := models.NewDraft(models.KindAppointment)
	ok, missing := StepComplete(details, draft, testNow())
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"reason", "consultationType"}, missing)

	draft.Fields["reason"] = "follow-up"
	ok, missing = StepComplete(details, draft, testNow())
	assert.False(t, ok)
	assert.Equal(t, []string{"consultationType"}, missing)

	draft.Fields["consultationType"] = "video"
	ok, missing = StepComplete(details, draft, testNow())
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestStepCompleteRerunsCrossFieldRules(t *testing.T) {
	steps, err := StepsFor(models.KindNanny)
	require.NoError(t, err)
	rng := stepByID(t, steps, models.StepScheduleRange)

	draft := models.NewDraft(models.KindNanny)
	draft.Fields["startDate"] = "2025-03-20"
	draft.Fields["endDate"] = "2025-03-25"
	ok, _ := StepComplete(rng, draft, testNow())
	require.True(t, ok)

	// An endDate that was valid when set becomes invalid once startDate moves
	// past it; completion must notice without any further mutation.
	draft.Fields["startDate"] = "2025-03-30"
	ok, missing := StepComplete(rng, draft, testNow())
	assert.False(t, ok)
	assert.Equal(t, []string{"endDate"}, missing)
}

func containsStep(steps []StepDefinition, id models.StepID) bool {
	for _, s := range steps {
		if s.ID == id {
			return true
		}
	}
	return false
}

func stepByID(t *testing.T, steps []StepDefinition, id models.StepID) StepDefinition {
	t.Helper()
	for _, s := range steps {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("step %s not found", id)
	return StepDefinition{}
}
