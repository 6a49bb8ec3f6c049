package workflow

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"medibook/models"
	"medibook/services/adapters"
	"medibook/services/catalog"

	"go.uber.org/zap"
)

// Deps bundles the collaborators a controller calls through. Catalog may be
// nil (no option-list cross-checks); the adapters are required for Submit and
// RequestLocation. Clock and Logger default when unset.
type Deps struct {
	Catalog  catalog.Catalog
	Location adapters.LocationProvider
	Payments adapters.PaymentProcessor
	Dispatch adapters.DispatchService
	Clock    func() time.Time
	Logger   *zap.Logger
}

func (d *Deps) fill() {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
}

// Controller owns one workflow instance: the draft, the step pointer into the
// applicable sequence, and the status machine over
// in-progress/submitting/confirmed/failed. Each booking wizard owns an
// independent controller, so the mutex only guards against the instance's own
// in-flight adapter calls.
type Controller struct {
	mu   sync.Mutex
	deps Deps

	draft         models.BookingDraft
	status        models.WorkflowStatus
	stepIdx       int
	locationState models.LocationState
	idemToken     string
	failure       string
	record        *models.BookingRecord

	// generation invalidates adapter results that resolve after Cancel:
	// a stale result compares generations and becomes a no-op.
	generation uint64
	disposed   bool
}

// NewController starts an empty workflow of the given kind. idempotencyToken
// is the client-generated token handed to the dispatch service on every
// submission attempt of this instance.
func NewController(kind models.WorkflowKind, idempotencyToken string, deps Deps) (*Controller, error) {
	if _, err := StepsFor(kind); err != nil {
		return nil, err
	}
	deps.fill()
	return &Controller{
		deps:          deps,
		draft:         models.NewDraft(kind),
		status:        models.StatusInProgress,
		locationState: models.LocationNotRequested,
		idemToken:     idempotencyToken,
	}, nil
}

// Restore rebuilds a controller from persisted session state. step is the
// persisted navigation position; when it is empty or no longer in the
// applicable sequence the pointer falls back to the first incomplete step.
func Restore(draft models.BookingDraft, status models.WorkflowStatus, step models.StepID,
	locState models.LocationState, idempotencyToken string, record *models.BookingRecord,
	failure string, deps Deps) (*Controller, error) {
	if _, err := StepsFor(draft.Kind); err != nil {
		return nil, err
	}
	deps.fill()
	if draft.Fields == nil {
		draft.Fields = make(map[string]string)
	}
	if locState == "" {
		locState = models.LocationNotRequested
	}
	c := &Controller{
		deps:          deps,
		draft:         draft,
		status:        status,
		locationState: locState,
		idemToken:     idempotencyToken,
		record:        record,
		failure:       failure,
	}
	c.stepIdx = c.firstIncompleteLocked()
	if step != "" {
		for i, s := range c.applicableLocked() {
			if s.ID == step {
				c.stepIdx = i
				break
			}
		}
	}
	return c, nil
}

// Status returns the current workflow status.
func (c *Controller) Status() models.WorkflowStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Record returns the confirmation artifact, nil until confirmed.
func (c *Controller) Record() *models.BookingRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// LocationState reports the lookup lifecycle of the draft's location field.
func (c *Controller) LocationState() models.LocationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locationState
}

func (c *Controller) applicableLocked() []StepDefinition {
	steps, _ := ApplicableSteps(c.draft)
	return steps
}

func (c *Controller) currentLocked() StepDefinition {
	steps := c.applicableLocked()
	if c.stepIdx >= len(steps) {
		c.stepIdx = len(steps) - 1
	}
	return steps[c.stepIdx]
}

// CurrentStep returns the active step definition.
func (c *Controller) CurrentStep() StepDefinition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Controller) firstIncompleteLocked() int {
	steps := c.applicableLocked()
	now := c.deps.Clock()
	for i, s := range steps {
		if s.Terminal {
			return i
		}
		if ok, _ := StepComplete(s, c.draft, now); !ok {
			return i
		}
	}
	return len(steps) - 1
}

func (c *Controller) guardMutableLocked() error {
	switch {
	case c.disposed:
		return ErrWorkflowDisposed
	case c.status == models.StatusSubmitting:
		return ErrSubmissionInFlight
	case c.status == models.StatusConfirmed:
		return ErrWorkflowConfirmed
	}
	return nil
}

// SetField validates and applies one field mutation. On success any step made
// inapplicable by the edit has its fields cleared, and a previously failed
// submission returns to in-progress. On failure the draft is untouched.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardMutableLocked(); err != nil {
		return err
	}

	currentID := c.currentLocked().ID

	next, verr := SetDraftField(c.draft, name, value, c.deps.Clock())
	if verr != nil {
		return verr
	}
	if verr := c.checkCatalogLocked(next, name, value); verr != nil {
		return verr
	}
	c.draft = next

	// Re-locate the step pointer by ID; the edit may have changed which
	// steps apply. When the current step itself was removed, move to the
	// first incomplete step rather than past the fields still to fill.
	found := false
	for i, s := range c.applicableLocked() {
		if s.ID == currentID {
			c.stepIdx = i
			found = true
			break
		}
	}
	if !found {
		c.stepIdx = c.firstIncompleteLocked()
	}

	if c.status == models.StatusFailed {
		c.status = models.StatusInProgress
		c.failure = ""
	}
	return nil
}

// checkCatalogLocked cross-checks option-list fields against the catalog:
// the provider must be listed, the slot must be offered, and the payment
// method must be one the kind declares.
func (c *Controller) checkCatalogLocked(d models.BookingDraft, name, value string) *ValidationError {
	if c.deps.Catalog == nil {
		return nil
	}
	switch name {
	case "provider":
		if c.providerByValueLocked(d.Kind, value) == nil {
			return newValidationError(CodeOutOfRange, name, "provider is not in the catalog")
		}
	case "time":
		prov, _ := d.Get("provider")
		date, ok := d.Get("date")
		p := c.providerByValueLocked(d.Kind, prov)
		if p == nil || !ok {
			return nil // slot check waits until provider and date are set
		}
		for _, slot := range c.deps.Catalog.ListAvailableSlots(p.ID, date) {
			if slot.Time == value {
				return nil
			}
		}
		return newValidationError(CodeOutOfRange, name, "slot is not available for this provider")
	case "paymentMethod":
		for _, m := range c.deps.Catalog.ListPaymentMethods(d.Kind) {
			if m.ID == value {
				return nil
			}
		}
		return newValidationError(CodeOutOfRange, name, "payment method not offered for this workflow")
	}
	return nil
}

func (c *Controller) providerByValueLocked(kind models.WorkflowKind, value string) *models.Provider {
	for _, p := range c.deps.Catalog.ListProviders(kind) {
		if p.ID == value || p.Name == value {
			return &p
		}
	}
	return nil
}

// CanAdvance reports whether the active step is complete, and if not, which
// required fields are missing or invalid.
func (c *Controller) CanAdvance() (bool, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StepComplete(c.currentLocked(), c.draft, c.deps.Clock())
}

// Advance moves to the next applicable step. An incomplete step blocks the
// move and surfaces the missing fields; it never silently no-ops.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardMutableLocked(); err != nil {
		return err
	}
	cur := c.currentLocked()
	if cur.Terminal {
		return ErrAtFinalStep
	}
	ok, missing := StepComplete(cur, c.draft, c.deps.Clock())
	if !ok {
		return &ValidationError{
			Code:    CodeEmptyRequiredField,
			Message: fmt.Sprintf("step %s is incomplete", cur.ID),
			Missing: missing,
		}
	}
	c.stepIdx++
	return nil
}

// Retreat moves the step pointer backward without discarding later answers.
// Permitted from any non-submitting state; at the first step it is a no-op.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrWorkflowDisposed
	}
	if c.status == models.StatusSubmitting {
		return ErrSubmissionInFlight
	}
	if c.stepIdx > 0 {
		c.stepIdx--
	}
	return nil
}

// JumpTo moves directly to an applicable step. Forward jumps past the first
// incomplete step are refused with that step's missing fields.
func (c *Controller) JumpTo(id models.StepID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrWorkflowDisposed
	}
	if c.status == models.StatusSubmitting {
		return ErrSubmissionInFlight
	}
	steps := c.applicableLocked()
	target := -1
	for i, s := range steps {
		if s.ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		return ErrUnknownStep
	}
	gate := c.firstIncompleteLocked()
	if target > gate {
		_, missing := StepComplete(steps[gate], c.draft, c.deps.Clock())
		return &ValidationError{
			Code:    CodeEmptyRequiredField,
			Message: fmt.Sprintf("step %s must be completed first", steps[gate].ID),
			Missing: missing,
		}
	}
	c.stepIdx = target
	return nil
}

// RequestLocation resolves the user's position through the LocationProvider
// and writes it into the draft. The lookup is visibly pending while in
// flight; only one may be outstanding per instance, and a result that arrives
// after Cancel is dropped.
func (c *Controller) RequestLocation(ctx context.Context) error {
	c.mu.Lock()
	if err := c.guardMutableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.locationState == models.LocationPending {
		c.mu.Unlock()
		return ErrLookupInFlight
	}
	if c.deps.Location == nil {
		c.mu.Unlock()
		return adapters.NewAdapterError("location", adapters.CodeUnavailable, "no location provider configured")
	}
	c.locationState = models.LocationPending
	gen := c.generation
	c.mu.Unlock()

	loc, err := c.deps.Location.GetCurrentLocation(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || gen != c.generation {
		return ErrWorkflowDisposed
	}
	if err != nil {
		c.locationState = models.LocationFailed
		return err
	}

	next, verr := SetDraftField(c.draft, "location", loc.Address, c.deps.Clock())
	if verr != nil {
		c.locationState = models.LocationFailed
		return verr
	}
	next, verr = SetDraftField(next, "latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64), c.deps.Clock())
	if verr == nil {
		next, verr = SetDraftField(next, "longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64), c.deps.Clock())
	}
	if verr != nil {
		c.locationState = models.LocationFailed
		return verr
	}
	c.draft = next
	c.locationState = models.LocationAvailable
	return nil
}

// Submit runs the terminal action: it re-validates every applicable step
// in-process before any adapter is invoked, then charges the payment method
// and creates the dispatch ticket. Any adapter failure moves the workflow to
// failed with the draft preserved verbatim; calling Submit again from failed
// is the retry path. A result arriving after Cancel is dropped.
func (c *Controller) Submit(ctx context.Context) (*models.BookingRecord, error) {
	c.mu.Lock()
	switch {
	case c.disposed:
		c.mu.Unlock()
		return nil, ErrWorkflowDisposed
	case c.status == models.StatusSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case c.status == models.StatusConfirmed:
		rec := c.record
		c.mu.Unlock()
		return rec, ErrWorkflowConfirmed
	}

	// Full validation before any side effect: no adapter is ever called on
	// behalf of an incomplete draft.
	now := c.deps.Clock()
	var missing []string
	for _, s := range c.applicableLocked() {
		if s.Terminal {
			continue
		}
		if _, m := StepComplete(s, c.draft, now); len(m) > 0 {
			missing = append(missing, m...)
		}
	}
	if len(missing) > 0 {
		c.mu.Unlock()
		return nil, &ValidationError{
			Code:    CodeEmptyRequiredField,
			Message: "workflow is incomplete",
			Missing: missing,
		}
	}

	c.status = models.StatusSubmitting
	c.failure = ""
	gen := c.generation
	draft := c.draft.Clone()
	token := c.idemToken
	c.mu.Unlock()

	method, _ := draft.Get("paymentMethod")
	amount := c.amountDue(draft)

	fail := func(err error) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.disposed || gen != c.generation {
			return ErrWorkflowDisposed
		}
		c.status = models.StatusFailed
		c.failure = err.Error()
		c.deps.Logger.Warn("submission failed",
			zap.String("kind", string(draft.Kind)), zap.Error(err))
		return err
	}

	result, err := c.deps.Payments.Charge(ctx, method, amount)
	if err != nil {
		return nil, fail(err)
	}
	if result.Status == models.ChargeDeclined {
		return nil, fail(adapters.NewAdapterError("payment", adapters.CodePaymentDeclined, result.Reason))
	}

	ticketID, err := c.deps.Dispatch.CreateTicket(ctx, draft, token)
	if err != nil {
		return nil, fail(err)
	}

	record, err := BuildRecord(draft, ticketID, c.deps.Clock())
	if err != nil {
		// An invariant violation is a hard fault, not a retryable failure,
		// but the status still reflects that the workflow did not complete.
		return nil, fail(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || gen != c.generation {
		return nil, ErrWorkflowDisposed
	}
	c.status = models.StatusConfirmed
	c.record = record
	c.stepIdx = len(c.applicableLocked()) - 1
	c.deps.Logger.Info("booking confirmed",
		zap.String("ticketId", record.TicketID),
		zap.String("kind", string(record.Kind)),
		zap.String("paymentRef", result.Reference))
	return record, nil
}

// Cancel tears the instance down. Any outstanding adapter call becomes a
// no-op against this controller when it eventually resolves.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.generation++
}

// Failure returns the last adapter failure message, empty when none.
func (c *Controller) Failure() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// View renders the UI-facing state snapshot.
func (c *Controller) View() models.WorkflowView {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.deps.Clock()
	steps := c.applicableLocked()
	if c.stepIdx >= len(steps) {
		c.stepIdx = len(steps) - 1
	}
	views := make([]models.StepView, 0, len(steps))
	for i, s := range steps {
		ok, _ := StepComplete(s, c.draft, now)
		views = append(views, models.StepView{
			ID:       s.ID,
			Complete: ok && !s.Terminal,
			Current:  i == c.stepIdx,
			Terminal: s.Terminal,
		})
	}
	_, missing := StepComplete(steps[c.stepIdx], c.draft, now)

	return models.WorkflowView{
		Kind:          c.draft.Kind,
		Status:        c.status,
		Steps:         views,
		MissingFields: missing,
		Fields:        c.draft.Clone().Fields,
		LocationState: c.locationState,
		Failure:       c.failure,
		Record:        c.record,
	}
}
