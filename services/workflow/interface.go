package workflow

import (
	"context"
	"time"

	"medibook/models"
	"medibook/services/adapters"
	"medibook/services/catalog"

	"go.uber.org/zap"
)

// SessionService is the inbound surface for UI layers: every operation is a
// synchronous call returning the updated view state or a typed error.
type SessionService interface {
	StartWorkflow(ctx context.Context, kind models.WorkflowKind) (*models.WorkflowView, error)
	SetField(ctx context.Context, sessionID, name, value string) (*models.WorkflowView, error)
	GoNext(ctx context.Context, sessionID string) (*models.WorkflowView, error)
	GoBack(ctx context.Context, sessionID string) (*models.WorkflowView, error)
	JumpTo(ctx context.Context, sessionID string, step models.StepID) (*models.WorkflowView, error)
	RequestLocation(ctx context.Context, sessionID string) (*models.WorkflowView, error)
	SubmitCurrentStep(ctx context.Context, sessionID string) (*models.WorkflowView, error)
	Cancel(ctx context.Context, sessionID string) error
}

// RecordArchiver durably stores confirmed booking records. Archive failures
// never fail a confirmed booking.
type RecordArchiver interface {
	Archive(ctx context.Context, record *models.BookingRecord) error
}

// ReminderScheduler enqueues an upcoming-booking reminder for a confirmed
// record. Best-effort.
type ReminderScheduler interface {
	ScheduleReminder(record *models.BookingRecord) error
}

// DefaultSessionService implements SessionService over a SessionStore: each
// call loads the session, rebuilds a controller, applies one operation, and
// saves the result back.
type DefaultSessionService struct {
	Store     SessionStore
	Catalog   catalog.Catalog
	Location  adapters.LocationProvider
	Payments  adapters.PaymentProcessor
	Dispatch  adapters.DispatchService
	Archiver  RecordArchiver    // optional
	Reminders ReminderScheduler // optional
	Clock     func() time.Time
	Logger    *zap.Logger
}
