package handlers

import (
	"errors"
	"net/http"

	"medibook/models"
	"medibook/services/adapters"
	"medibook/services/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkflowHandler exposes the booking workflow's inbound surface over HTTP.
type WorkflowHandler struct {
	Svc    workflow.SessionService
	Logger *zap.Logger
}

// NewWorkflowHandler builds a handler over the session service.
func NewWorkflowHandler(svc workflow.SessionService, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{Svc: svc, Logger: logger}
}

// StartWorkflow creates a new booking session.
func (h *WorkflowHandler) StartWorkflow(c *gin.Context) {
	var input struct {
		Kind models.WorkflowKind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Svc.StartWorkflow(c.Request.Context(), input.Kind)
	if err != nil {
		h.respondError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetField applies one field mutation to the session's draft.
func (h *WorkflowHandler) SetField(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Svc.SetField(c.Request.Context(), sessionID, input.Name, input.Value)
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GoNext advances the session to its next applicable step.
func (h *WorkflowHandler) GoNext(c *gin.Context) {
	view, err := h.Svc.GoNext(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GoBack retreats the session one step.
func (h *WorkflowHandler) GoBack(c *gin.Context) {
	view, err := h.Svc.GoBack(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// JumpTo moves the session directly to a reachable step.
func (h *WorkflowHandler) JumpTo(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Step models.StepID `json:"step"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Svc.JumpTo(c.Request.Context(), sessionID, input.Step)
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RequestLocation resolves the caller's position into the draft.
func (h *WorkflowHandler) RequestLocation(c *gin.Context) {
	view, err := h.Svc.RequestLocation(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit runs the terminal action for the session.
func (h *WorkflowHandler) Submit(c *gin.Context) {
	view, err := h.Svc.SubmitCurrentStep(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, view, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Cancel abandons the session.
func (h *WorkflowHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// respondError maps the engine's error taxonomy onto HTTP statuses. The view
// state accompanies recoverable errors so the UI can re-render what the user
// already entered.
func (h *WorkflowHandler) respondError(c *gin.Context, view *models.WorkflowView, err error) {
	var verr *workflow.ValidationError
	var aerr *adapters.AdapterError
	var ierr *workflow.InvariantViolation

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         verr.Message,
			"code":          verr.Code,
			"field":         verr.Field,
			"missingFields": verr.Missing,
			"state":         view,
		})
	case errors.As(err, &aerr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": aerr.Message,
			"code":  aerr.Code,
			"op":    aerr.Op,
			"retry": true,
			"state": view,
		})
	case errors.As(err, &ierr):
		h.Logger.Error("workflow invariant violated", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrSubmissionInFlight), errors.Is(err, workflow.ErrLookupInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrUnknownKind), errors.Is(err, workflow.ErrUnknownStep),
		errors.Is(err, workflow.ErrAtFinalStep), errors.Is(err, workflow.ErrWorkflowConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "state": view})
	default:
		h.Logger.Error("workflow request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
