package workflow

import (
	"context"
	"time"

	"medibook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultSessionService) clock() func() time.Time {
	if s.Clock != nil {
		return s.Clock
	}
	return time.Now
}

func (s *DefaultSessionService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultSessionService) deps() Deps {
	return Deps{
		Catalog:  s.Catalog,
		Location: s.Location,
		Payments: s.Payments,
		Dispatch: s.Dispatch,
		Clock:    s.clock(),
		Logger:   s.logger(),
	}
}

// StartWorkflow creates a new session with an empty draft and a
// client-generated idempotency token, and stores it under a fresh session ID.
func (s *DefaultSessionService) StartWorkflow(ctx context.Context, kind models.WorkflowKind) (*models.WorkflowView, error) {
	if !models.ValidKind(kind) {
		return nil, ErrUnknownKind
	}
	sess := &WorkflowSession{
		SessionID:        uuid.New().String(),
		Kind:             kind,
		Draft:            models.NewDraft(kind),
		Status:           models.StatusInProgress,
		LocationState:    models.LocationNotRequested,
		IdempotencyToken: uuid.New().String(),
		CreatedAt:        s.clock()(),
	}
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger().Info("workflow started",
		zap.String("sessionId", sess.SessionID), zap.String("kind", string(kind)))
	return s.viewOf(sess)
}

// restore rebuilds a controller from a stored session.
func (s *DefaultSessionService) restore(sess *WorkflowSession) (*Controller, error) {
	return Restore(sess.Draft, sess.Status, sess.Step, sess.LocationState,
		sess.IdempotencyToken, sess.Record, sess.Failure, s.deps())
}

// snapshot writes the controller's state back into the session. The step
// pointer is persisted so navigation survives the load/operate/save cycle.
func (s *DefaultSessionService) snapshot(c *Controller, sess *WorkflowSession) {
	sess.Draft = c.Draft()
	sess.Status = c.Status()
	sess.Step = c.CurrentStep().ID
	sess.LocationState = c.LocationState()
	sess.Failure = c.Failure()
	sess.Record = c.Record()
}

func (s *DefaultSessionService) viewOf(sess *WorkflowSession) (*models.WorkflowView, error) {
	c, err := s.restore(sess)
	if err != nil {
		return nil, err
	}
	view := c.View()
	view.SessionID = sess.SessionID
	return &view, nil
}

// apply runs one controller operation against a loaded session and persists
// the outcome. The operation's error is returned alongside the saved state so
// validation failures still surface while leaving the session intact.
func (s *DefaultSessionService) apply(ctx context.Context, sessionID string, op func(*Controller) error) (*models.WorkflowView, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c, err := s.restore(sess)
	if err != nil {
		return nil, err
	}
	opErr := op(c)
	s.snapshot(c, sess)
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	view := c.View()
	view.SessionID = sessionID
	return &view, opErr
}

// SetField applies one validated field mutation.
func (s *DefaultSessionService) SetField(ctx context.Context, sessionID, name, value string) (*models.WorkflowView, error) {
	return s.apply(ctx, sessionID, func(c *Controller) error {
		return c.SetField(name, value)
	})
}

// GoNext advances to the next applicable step.
func (s *DefaultSessionService) GoNext(ctx context.Context, sessionID string) (*models.WorkflowView, error) {
	return s.apply(ctx, sessionID, func(c *Controller) error {
		return c.Advance()
	})
}

// GoBack retreats one step without discarding answers.
func (s *DefaultSessionService) GoBack(ctx context.Context, sessionID string) (*models.WorkflowView, error) {
	return s.apply(ctx, sessionID, func(c *Controller) error {
		return c.Retreat()
	})
}

// JumpTo moves directly to an applicable, reachable step.
func (s *DefaultSessionService) JumpTo(ctx context.Context, sessionID string, step models.StepID) (*models.WorkflowView, error) {
	return s.apply(ctx, sessionID, func(c *Controller) error {
		return c.JumpTo(step)
	})
}

// RequestLocation resolves the caller's position into the draft.
func (s *DefaultSessionService) RequestLocation(ctx context.Context, sessionID string) (*models.WorkflowView, error) {
	return s.apply(ctx, sessionID, func(c *Controller) error {
		return c.RequestLocation(ctx)
	})
}

// SubmitCurrentStep runs the terminal action. The session is marked
// submitting in the store before any adapter call, so a concurrent submission
// against the same session is refused even across processes. On confirmation
// the record is archived and a reminder scheduled (both best-effort) and the
// session is removed.
func (s *DefaultSessionService) SubmitCurrentStep(ctx context.Context, sessionID string) (*models.WorkflowView, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == models.StatusSubmitting {
		return nil, ErrSubmissionInFlight
	}
	c, err := s.restore(sess)
	if err != nil {
		return nil, err
	}

	priorStatus := sess.Status
	sess.Status = models.StatusSubmitting
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	record, submitErr := c.Submit(ctx)
	s.snapshot(c, sess)
	if sess.Status == models.StatusSubmitting {
		// Submit refused before any side effect (e.g. validation); restore
		// the pre-submit status rather than leaving the guard in place.
		sess.Status = priorStatus
	}

	if record != nil {
		s.finalize(ctx, record)
		if err := s.Store.Delete(ctx, sessionID); err != nil {
			s.logger().Warn("failed to remove confirmed session", zap.Error(err))
		}
	} else if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}

	view := c.View()
	view.SessionID = sessionID
	return &view, submitErr
}

// finalize archives the record and schedules its reminder. Failures here are
// logged and swallowed: the booking is already confirmed.
func (s *DefaultSessionService) finalize(ctx context.Context, record *models.BookingRecord) {
	if s.Archiver != nil {
		if err := s.Archiver.Archive(ctx, record); err != nil {
			s.logger().Warn("failed to archive booking record",
				zap.String("ticketId", record.TicketID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(record); err != nil {
			s.logger().Warn("failed to schedule booking reminder",
				zap.String("ticketId", record.TicketID), zap.Error(err))
		}
	}
}

// Cancel abandons the workflow and discards its draft.
func (s *DefaultSessionService) Cancel(ctx context.Context, sessionID string) error {
	if _, err := s.Store.Get(ctx, sessionID); err != nil {
		return err
	}
	s.logger().Info("workflow cancelled", zap.String("sessionId", sessionID))
	return s.Store.Delete(ctx, sessionID)
}
