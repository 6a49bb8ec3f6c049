package models

// StepView is the per-step slice of a WorkflowView.
type StepView struct {
	ID       StepID `json:"id"`
	Complete bool   `json:"complete"`
	Current  bool   `json:"current"`
	Terminal bool   `json:"terminal"`
}

// WorkflowView is the full UI-facing state of one workflow instance, returned
// by every inbound operation.
type WorkflowView struct {
	SessionID     string            `json:"sessionId,omitempty"`
	Kind          WorkflowKind      `json:"kind"`
	Status        WorkflowStatus    `json:"status"`
	Steps         []StepView        `json:"steps"`
	MissingFields []string          `json:"missingFields,omitempty"`
	Fields        map[string]string `json:"fields"`
	LocationState LocationState     `json:"locationState,omitempty"`
	Failure       string            `json:"failure,omitempty"`
	Record        *BookingRecord    `json:"record,omitempty"`
}
