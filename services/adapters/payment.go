package adapters

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedPaymentProcessor implements PaymentProcessor without touching a
// real gateway. Instant methods authorize after a short processing delay;
// pay-later authorizes immediately with a deferred reference, following the
// same ChargeResult contract.
type SimulatedPaymentProcessor struct {
	Logger *zap.Logger
	Delay  time.Duration // simulated gateway round-trip for instant methods
}

// NewSimulatedPaymentProcessor builds a processor with the given delay.
func NewSimulatedPaymentProcessor(logger *zap.Logger, delay time.Duration) *SimulatedPaymentProcessor {
	return &SimulatedPaymentProcessor{Logger: logger, Delay: delay}
}

// Charge authorizes or declines a payment. Expected failures (unknown method,
// bad amount) come back as typed adapter errors, never panics.
func (p *SimulatedPaymentProcessor) Charge(ctx context.Context, method string, amountMinorUnits int64) (models.ChargeResult, error) {
	if amountMinorUnits <= 0 {
		return models.ChargeResult{}, NewAdapterError("payment", CodeUnavailable,
			fmt.Sprintf("invalid charge amount %d", amountMinorUnits))
	}

	switch method {
	case "pay-later":
		ref := "deferred_" + uuid.New().String()
		p.Logger.Info("deferred charge authorized",
			zap.String("reference", ref), zap.Int64("amount", amountMinorUnits))
		return models.ChargeResult{Status: models.ChargeAuthorized, Reference: ref}, nil
	case "visa", "mastercard", "mpesa", "cash":
		if p.Delay > 0 {
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return models.ChargeResult{}, NewAdapterError("payment", CodeTimeout, ctx.Err().Error())
			}
		}
		ref := "pi_" + uuid.New().String()
		p.Logger.Info("charge authorized",
			zap.String("method", method), zap.String("reference", ref),
			zap.Int64("amount", amountMinorUnits))
		return models.ChargeResult{Status: models.ChargeAuthorized, Reference: ref}, nil
	default:
		return models.ChargeResult{}, NewAdapterError("payment", CodeUnavailable,
			fmt.Sprintf("unsupported payment method: %s", method))
	}
}
