package adapters

import (
	"context"

	"medibook/models"
)

// LocationProvider resolves the user's current position. Implementations
// must bound their wait and surface a typed error (permissionDenied, timeout,
// unavailable) instead of hanging or returning a half-filled location.
type LocationProvider interface {
	GetCurrentLocation(ctx context.Context) (*models.Location, error)
}

// PaymentProcessor charges a payment method. Deferred ("pay-later") methods
// resolve through the exact same contract as immediate ones.
type PaymentProcessor interface {
	Charge(ctx context.Context, method string, amountMinorUnits int64) (models.ChargeResult, error)
}

// DispatchService creates the downstream booking/dispatch ticket. It is
// idempotent per (draft content, idempotency token): retrying a submission
// after a transient failure must not create a duplicate booking.
type DispatchService interface {
	CreateTicket(ctx context.Context, draft models.BookingDraft, idempotencyToken string) (string, error)
}
