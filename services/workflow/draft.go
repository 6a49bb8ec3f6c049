package workflow

import (
	"time"

	"medibook/models"
)

// SetDraftField validates value against the owning field spec and, on
// success, returns a new draft with the field set and any now-inapplicable
// steps' fields cleared. The input draft is never modified, so a validation
// failure leaves the caller's draft exactly as it was.
func SetDraftField(draft models.BookingDraft, name, value string, now time.Time) (models.BookingDraft, *ValidationError) {
	spec, ok := fieldSpec(draft.Kind, name)
	if !ok {
		return draft, newValidationError(CodeOutOfRange, name, "unknown field for this workflow kind")
	}
	if spec.Validate != nil {
		if err := spec.Validate(draft, value, now); err != nil {
			return draft, err
		}
	}
	next := draft.Clone()
	next.Fields[name] = value
	clearOrphanFields(&next)
	return next, nil
}

// ClearDraftField removes a field (used when an adapter invalidates it, e.g.
// a failed location lookup). Inapplicable-step cleanup runs as for SetField.
func ClearDraftField(draft models.BookingDraft, name string) models.BookingDraft {
	next := draft.Clone()
	delete(next.Fields, name)
	clearOrphanFields(&next)
	return next
}

// clearOrphanFields deletes every field owned by a step that no longer
// applies, so stale answers (a clinic location after switching to a video
// consultation) can never reach the confirmation artifact. Clearing a field
// can itself change applicability, so it iterates to a fixpoint; the step
// count bounds the loop.
func clearOrphanFields(draft *models.BookingDraft) {
	steps, err := StepsFor(draft.Kind)
	if err != nil {
		return
	}
	for range steps {
		changed := false
		for _, s := range steps {
			if s.Applicable(*draft) {
				continue
			}
			for _, name := range s.OwnedFields() {
				if _, ok := draft.Fields[name]; ok {
					delete(draft.Fields, name)
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
