package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChargeInstantMethods(t *testing.T) {
	p := NewSimulatedPaymentProcessor(zap.NewNop(), 0)

	for _, method := range []string{"visa", "mastercard", "mpesa", "cash"} {
		result, err := p.Charge(context.Background(), method, 250000)
		require.NoError(t, err, "method %s", method)
		assert.Equal(t, models.ChargeAuthorized, result.Status)
		assert.True(t, strings.HasPrefix(result.Reference, "pi_"), "method %s: got %s", method, result.Reference)
	}
}

func TestChargePayLaterIsDeferred(t *testing.T) {
	// A long delay would stall an instant method; pay-later must not wait.
	p := NewSimulatedPaymentProcessor(zap.NewNop(), time.Minute)

	start := time.Now()
	result, err := p.Charge(context.Background(), "pay-later", 500000)
	require.NoError(t, err)
	assert.Equal(t, models.ChargeAuthorized, result.Status)
	assert.True(t, strings.HasPrefix(result.Reference, "deferred_"), "got %s", result.Reference)
	assert.Less(t, time.Since(start), time.Second)
}

func TestChargeUnknownMethod(t *testing.T) {
	p := NewSimulatedPaymentProcessor(zap.NewNop(), 0)

	_, err := p.Charge(context.Background(), "barter", 100)
	var aerr *AdapterError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, CodeUnavailable, aerr.Code)
	assert.Equal(t, "payment", aerr.Op)
}

func TestChargeInvalidAmount(t *testing.T) {
	p := NewSimulatedPaymentProcessor(zap.NewNop(), 0)

	for _, amount := range []int64{0, -500} {
		_, err := p.Charge(context.Background(), "visa", amount)
		var aerr *AdapterError
		require.ErrorAs(t, err, &aerr, "amount %d", amount)
	}
}

func TestChargeCancelledContext(t *testing.T) {
	p := NewSimulatedPaymentProcessor(zap.NewNop(), time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Charge(ctx, "visa", 250000)
	var aerr *AdapterError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, CodeTimeout, aerr.Code)
}
