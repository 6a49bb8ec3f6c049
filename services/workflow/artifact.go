package workflow

import (
	"fmt"
	"sync/atomic"
	"time"

	"medibook/models"
)

// slaWindows maps every valid emergency urgency level to its advertised
// response window. The table is total over the urgency enum; anything else
// reaching the builder means a draft invariant was violated upstream.
var slaWindows = map[string]string{
	"critical": "5-8 minutes",
	"urgent":   "10-15 minutes",
	"standard": "20-30 minutes",
}

// SLAWindowFor resolves the response window for an urgency level.
func SLAWindowFor(urgency string) (string, error) {
	w, ok := slaWindows[urgency]
	if !ok {
		return "", &InvariantViolation{
			Message: fmt.Sprintf("urgency level %q has no SLA window", urgency),
		}
	}
	return w, nil
}

// BuildRecord freezes a finished draft into the immutable BookingRecord.
// It is deterministic given its inputs: the creation time is passed in, not
// read from the ambient clock. Emergency records additionally carry the SLA
// window derived from the selected urgency.
func BuildRecord(draft models.BookingDraft, ticketID string, now time.Time) (*models.BookingRecord, error) {
	rec := &models.BookingRecord{
		TicketID:  ticketID,
		Kind:      draft.Kind,
		Fields:    draft.Clone().Fields,
		CreatedAt: now,
	}
	if draft.Kind == models.KindEmergency {
		urgency, ok := draft.Get("urgency")
		if !ok {
			return nil, &InvariantViolation{Message: "emergency draft reached the artifact builder without an urgency level"}
		}
		window, err := SLAWindowFor(urgency)
		if err != nil {
			return nil, err
		}
		rec.SLAWindow = window
	}
	return rec, nil
}

// ticketPrefixes maps each workflow kind to its ticket ID prefix.
var ticketPrefixes = map[models.WorkflowKind]string{
	models.KindAppointment: "APT",
	models.KindLabTest:     "LAB",
	models.KindNanny:       "NNY",
	models.KindEmergency:   "EMG",
}

var ticketSeq atomic.Uint64

// TicketIDGenerator produces booking/ticket identifiers for a workflow kind.
// Injected into the dispatch adapter so ID generation stays swappable and
// free of wall-clock coupling in tests.
type TicketIDGenerator func(kind models.WorkflowKind) string

// NewTicketIDGenerator returns the default generator: PREFIX-<unix>-<seq>,
// e.g. "APT-1741000000-42". The clock is injected for determinism.
func NewTicketIDGenerator(clock func() time.Time) TicketIDGenerator {
	return func(kind models.WorkflowKind) string {
		prefix, ok := ticketPrefixes[kind]
		if !ok {
			prefix = "BKG"
		}
		return fmt.Sprintf("%s-%d-%d", prefix, clock().Unix(), ticketSeq.Add(1))
	}
}
