package workflow

import (
	"regexp"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketIDFormat(t *testing.T) {
	gen := NewTicketIDGenerator(testNow)

	tests := []struct {
		kind    models.WorkflowKind
		pattern string
	}{
		{models.KindAppointment, `^APT-\d+-\d+$`},
		{models.KindLabTest, `^LAB-\d+-\d+$`},
		{models.KindNanny, `^NNY-\d+-\d+$`},
		{models.KindEmergency, `^EMG-\d+-\d+$`},
	}
	for _, tc := range tests {
		id := gen(tc.kind)
		assert.Regexp(t, regexp.MustCompile(tc.pattern), id, "kind %s", tc.kind)
	}

	// Sequence numbers keep IDs unique under a frozen clock.
	assert.NotEqual(t, gen(models.KindAppointment), gen(models.KindAppointment))
}

func TestBuildRecordFreezesDraft(t *testing.T) {
	draft := models.NewDraft(models.KindAppointment)
	draft.Fields["provider"] = "Dr. Sarah Johnson"
	draft.Fields["date"] = "2025-03-10"
	draft.Fields["time"] = "09:00"
	draft.Fields["reason"] = "follow-up"
	draft.Fields["consultationType"] = "video"
	draft.Fields["paymentMethod"] = "visa"

	record, err := BuildRecord(draft, "APT-1741000000-1", testNow())
	require.NoError(t, err)

	assert.Equal(t, "APT-1741000000-1", record.TicketID)
	assert.Equal(t, models.KindAppointment, record.Kind)
	assert.Equal(t, draft.Fields, record.Fields)
	assert.Equal(t, testNow(), record.CreatedAt)
	assert.Empty(t, record.SLAWindow, "only emergency records carry an SLA window")

	// The record holds its own copy; later draft edits must not leak in.
	draft.Fields["reason"] = "edited afterwards"
	assert.Equal(t, "follow-up", record.Fields["reason"])
}

func TestBuildRecordEmergencySLA(t *testing.T) {
	tests := []struct {
		urgency string
		window  string
	}{
		{"critical", "5-8 minutes"},
		{"urgent", "10-15 minutes"},
		{"standard", "20-30 minutes"},
	}
	for _, tc := range tests {
		t.Run(tc.urgency, func(t *testing.T) {
			draft := models.NewDraft(models.KindEmergency)
			draft.Fields["urgency"] = tc.urgency
			draft.Fields["location"] = "Moi Avenue, Nairobi"
			draft.Fields["phone"] = "+254700000000"
			draft.Fields["paymentMethod"] = "pay-later"

			record, err := BuildRecord(draft, "EMG-1741000000-1", testNow())
			require.NoError(t, err)
			assert.Equal(t, tc.window, record.SLAWindow)
		})
	}
}

func TestBuildRecordUnknownUrgency(t *testing.T) {
	draft := models.NewDraft(models.KindEmergency)
	draft.Fields["urgency"] = "apocalyptic"

	_, err := BuildRecord(draft, "EMG-1741000000-1", testNow())
	var ierr *InvariantViolation
	require.ErrorAs(t, err, &ierr, "an unmapped urgency must never fall back to a default window")
}

func TestBuildRecordEmergencyMissingUrgency(t *testing.T) {
	draft := models.NewDraft(models.KindEmergency)

	_, err := BuildRecord(draft, "EMG-1741000000-1", testNow())
	var ierr *InvariantViolation
	require.ErrorAs(t, err, &ierr)
}

func TestSLAWindowFor(t *testing.T) {
	w, err := SLAWindowFor("urgent")
	require.NoError(t, err)
	assert.Equal(t, "10-15 minutes", w)

	_, err = SLAWindowFor("")
	var ierr *InvariantViolation
	assert.ErrorAs(t, err, &ierr)
}
