package adapters

import (
	"context"
	"fmt"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingIDs hands out a distinct ticket ID per call.
func countingIDs() func(models.WorkflowKind) string {
	n := 0
	return func(kind models.WorkflowKind) string {
		n++
		return fmt.Sprintf("TCK-%d", n)
	}
}

func testDraft(kind models.WorkflowKind, fields map[string]string) models.BookingDraft {
	d := models.NewDraft(kind)
	for k, v := range fields {
		d.Fields[k] = v
	}
	return d
}

func TestCreateTicketIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewSimulatedDispatchService(countingIDs(), NewMemoryDedupStore(), zap.NewNop())

	draft := testDraft(models.KindAppointment, map[string]string{
		"provider": "Dr. Sarah Johnson",
		"date":     "2025-03-10",
		"time":     "09:00",
	})

	first, err := svc.CreateTicket(ctx, draft, "token-1")
	require.NoError(t, err)

	// Retrying the same draft and token must return the same ticket, not
	// create a second booking.
	second, err := svc.CreateTicket(ctx, draft.Clone(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCreateTicketDistinctTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewSimulatedDispatchService(countingIDs(), NewMemoryDedupStore(), zap.NewNop())

	draft := testDraft(models.KindAppointment, map[string]string{"provider": "doc-1"})

	first, err := svc.CreateTicket(ctx, draft, "token-1")
	require.NoError(t, err)
	second, err := svc.CreateTicket(ctx, draft, "token-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "a new client token is a new booking attempt")
}

func TestCreateTicketDistinctDrafts(t *testing.T) {
	ctx := context.Background()
	svc := NewSimulatedDispatchService(countingIDs(), NewMemoryDedupStore(), zap.NewNop())

	a := testDraft(models.KindAppointment, map[string]string{"date": "2025-03-10"})
	b := testDraft(models.KindAppointment, map[string]string{"date": "2025-03-11"})

	first, err := svc.CreateTicket(ctx, a, "token-1")
	require.NoError(t, err)
	second, err := svc.CreateTicket(ctx, b, "token-1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestMemoryDedupStorePutIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDedupStore()

	id, created, err := store.PutIfAbsent(ctx, "key-1", "TCK-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "TCK-1", id)

	id, created, err = store.PutIfAbsent(ctx, "key-1", "TCK-2")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "TCK-1", id, "the first ticket wins")
}
