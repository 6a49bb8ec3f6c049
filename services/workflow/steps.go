package workflow

import (
	"time"

	"medibook/models"
)

// FieldSpec binds a draft field to the step that owns it and its validator.
type FieldSpec struct {
	Name     string
	Required bool
	Validate FieldValidator
}

// StepDefinition declares one phase of a workflow: the fields it owns, which
// of them gate forward navigation, and whether the step applies at all given
// the answers so far. Applicable must be a pure function of the draft.
type StepDefinition struct {
	ID         models.StepID
	Fields     []FieldSpec
	Terminal   bool
	Applicable func(models.BookingDraft) bool
}

// RequiredFields returns the names of the fields that must be set and valid
// for the step to be complete.
func (s StepDefinition) RequiredFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// OwnedFields returns every field name the step owns, required or not.
func (s StepDefinition) OwnedFields() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

func always(models.BookingDraft) bool { return true }

func whenField(name, value string) func(models.BookingDraft) bool {
	return func(d models.BookingDraft) bool {
		v, ok := d.Get(name)
		return ok && v == value
	}
}

func unlessField(name, value string) func(models.BookingDraft) bool {
	return func(d models.BookingDraft) bool {
		v, ok := d.Get(name)
		return !ok || v != value
	}
}

var paymentStep = StepDefinition{
	ID: models.StepPayment,
	Fields: []FieldSpec{
		{Name: "paymentMethod", Required: true,
			Validate: enumOf("paymentMethod", "visa", "mastercard", "mpesa", "cash", "pay-later")},
	},
	Applicable: always,
}

// stepTables holds the ordered step list per workflow kind. The tables are
// package-level constants in all but the Go sense; StepsFor hands out copies
// of the slice header only, and definitions are never mutated.
var stepTables = map[models.WorkflowKind][]StepDefinition{
	models.KindAppointment: {
		{
			ID: models.StepChooseProvider,
			Fields: []FieldSpec{
				{Name: "provider", Required: true, Validate: nonEmpty("provider")},
			},
			Applicable: always,
		},
		{
			ID: models.StepScheduleSlot,
			Fields: []FieldSpec{
				{Name: "date", Required: true, Validate: dateNotPast("date")},
				{Name: "time", Required: true, Validate: timeOfDay("time")},
			},
			Applicable: always,
		},
		{
			ID: models.StepDetails,
			Fields: []FieldSpec{
				{Name: "reason", Required: true, Validate: nonEmpty("reason")},
				{Name: "consultationType", Required: true,
					Validate: enumOf("consultationType", "video", "in-person")},
				{Name: "patientName", Validate: nonEmpty("patientName")},
				{Name: "phone", Validate: phoneNumber("phone")},
			},
			Applicable: always,
		},
		{
			ID: models.StepClinicLocation,
			Fields: []FieldSpec{
				{Name: "location", Required: true, Validate: nonEmpty("location")},
			},
			Applicable: whenField("consultationType", "in-person"),
		},
		paymentStep,
		{ID: models.StepConfirmation, Terminal: true, Applicable: always},
	},
	models.KindLabTest: {
		{
			ID: models.StepChooseTest,
			Fields: []FieldSpec{
				{Name: "testType", Required: true,
					Validate: enumOf("testType", "blood-panel", "lipid-profile", "thyroid", "urinalysis", "covid-19")},
			},
			Applicable: always,
		},
		{
			ID: models.StepCollection,
			Fields: []FieldSpec{
				{Name: "collectionType", Required: true,
					Validate: enumOf("collectionType", "home", "lab-visit")},
			},
			Applicable: always,
		},
		{
			ID: models.StepLabCenter,
			Fields: []FieldSpec{
				{Name: "labCenter", Required: true, Validate: nonEmpty("labCenter")},
			},
			// Home collection needs no lab-center selection.
			Applicable: unlessField("collectionType", "home"),
		},
		{
			ID: models.StepScheduleSlot,
			Fields: []FieldSpec{
				{Name: "date", Required: true, Validate: dateNotPast("date")},
				{Name: "time", Required: true, Validate: timeOfDay("time")},
			},
			Applicable: always,
		},
		{
			ID: models.StepDetails,
			Fields: []FieldSpec{
				{Name: "patientName", Required: true, Validate: nonEmpty("patientName")},
				{Name: "phone", Required: true, Validate: phoneNumber("phone")},
			},
			Applicable: always,
		},
		paymentStep,
		{ID: models.StepConfirmation, Terminal: true, Applicable: always},
	},
	models.KindNanny: {
		{
			ID: models.StepChooseProvider,
			Fields: []FieldSpec{
				{Name: "provider", Required: true, Validate: nonEmpty("provider")},
			},
			Applicable: always,
		},
		{
			ID: models.StepScheduleRange,
			Fields: []FieldSpec{
				{Name: "startDate", Required: true, Validate: dateNotPast("startDate")},
				{Name: "endDate", Required: true,
					Validate: allOf(dateNotPast("endDate"), notBefore("endDate", "startDate"))},
			},
			Applicable: always,
		},
		{
			ID: models.StepDetails,
			Fields: []FieldSpec{
				{Name: "childrenCount", Required: true, Validate: intInRange("childrenCount", 1, 6)},
				{Name: "phone", Required: true, Validate: phoneNumber("phone")},
				{Name: "notes", Validate: nonEmpty("notes")},
			},
			Applicable: always,
		},
		paymentStep,
		{ID: models.StepConfirmation, Terminal: true, Applicable: always},
	},
	models.KindEmergency: {
		{
			ID: models.StepEmergencyInfo,
			Fields: []FieldSpec{
				{Name: "urgency", Required: true,
					Validate: enumOf("urgency", "critical", "urgent", "standard")},
				{Name: "location", Required: true, Validate: nonEmpty("location")},
				{Name: "phone", Required: true, Validate: phoneNumber("phone")},
				{Name: "latitude", Validate: floatValue("latitude")},
				{Name: "longitude", Validate: floatValue("longitude")},
			},
			Applicable: always,
		},
		paymentStep,
		{ID: models.StepDispatched, Terminal: true, Applicable: always},
	},
}

// StepsFor returns the ordered step list for a workflow kind.
func StepsFor(kind models.WorkflowKind) ([]StepDefinition, error) {
	steps, ok := stepTables[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return steps, nil
}

// ApplicableSteps filters the kind's step table through each step's
// applicability predicate. The result is deterministic and always ends with
// the terminal step, so there is exactly one "next applicable step" (or
// completion) from any draft.
func ApplicableSteps(draft models.BookingDraft) ([]StepDefinition, error) {
	steps, err := StepsFor(draft.Kind)
	if err != nil {
		return nil, err
	}
	out := make([]StepDefinition, 0, len(steps))
	for _, s := range steps {
		if s.Applicable(draft) {
			out = append(out, s)
		}
	}
	return out, nil
}

// fieldSpec looks up the owning spec for a field name within a kind's table.
func fieldSpec(kind models.WorkflowKind, name string) (FieldSpec, bool) {
	steps, err := StepsFor(kind)
	if err != nil {
		return FieldSpec{}, false
	}
	for _, s := range steps {
		for _, f := range s.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldSpec{}, false
}

// StepComplete re-derives completion from required-field membership, running
// each validator against the stored value so cross-field rules (endDate vs a
// later-edited startDate) cannot drift out of sync with the draft. It returns
// the missing or invalid field names alongside the verdict.
func StepComplete(step StepDefinition, draft models.BookingDraft, now time.Time) (bool, []string) {
	var missing []string
	for _, f := range step.Fields {
		if !f.Required {
			continue
		}
		v, ok := draft.Get(f.Name)
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		if f.Validate != nil {
			if err := f.Validate(draft, v, now); err != nil {
				missing = append(missing, f.Name)
			}
		}
	}
	return len(missing) == 0, missing
}
