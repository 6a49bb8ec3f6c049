package models

// BookingDraft accumulates everything the user has chosen so far for one
// booking/dispatch attempt. A draft can be incomplete (fields unset) but never
// invalid: the workflow layer validates every value before it is accepted, so
// any field present here has already passed its validator.
type BookingDraft struct {
	Kind   WorkflowKind      `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// NewDraft returns an empty draft for the given workflow kind.
func NewDraft(kind WorkflowKind) BookingDraft {
	return BookingDraft{Kind: kind, Fields: make(map[string]string)}
}

// Get returns the value of a field and whether it is set.
func (d BookingDraft) Get(name string) (string, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// Has reports whether a field is set (empty strings never survive validation,
// so presence implies a usable value).
func (d BookingDraft) Has(name string) bool {
	_, ok := d.Fields[name]
	return ok
}

// Clone returns a deep copy of the draft.
func (d BookingDraft) Clone() BookingDraft {
	out := BookingDraft{Kind: d.Kind, Fields: make(map[string]string, len(d.Fields))}
	for k, v := range d.Fields {
		out.Fields[k] = v
	}
	return out
}
