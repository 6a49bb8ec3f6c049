package models

// WorkflowKind identifies which booking wizard a draft belongs to.
type WorkflowKind string

const (
	KindAppointment WorkflowKind = "appointment"
	KindLabTest     WorkflowKind = "lab-test"
	KindNanny       WorkflowKind = "nanny"
	KindEmergency   WorkflowKind = "emergency"
)

// ValidKind reports whether k is one of the supported workflow kinds.
func ValidKind(k WorkflowKind) bool {
	switch k {
	case KindAppointment, KindLabTest, KindNanny, KindEmergency:
		return true
	}
	return false
}

// StepID identifies one phase of a multi-step workflow.
type StepID string

const (
	StepChooseProvider StepID = "choose-provider"
	StepChooseTest     StepID = "choose-test"
	StepCollection     StepID = "collection"
	StepLabCenter      StepID = "lab-center"
	StepScheduleSlot   StepID = "schedule-slot"
	StepScheduleRange  StepID = "schedule-range"
	StepDetails        StepID = "details"
	StepClinicLocation StepID = "clinic-location"
	StepEmergencyInfo  StepID = "emergency-info"
	StepPayment        StepID = "payment"
	StepConfirmation   StepID = "confirmation"
	StepDispatched     StepID = "dispatched"
)

// WorkflowStatus is the lifecycle state of a workflow controller.
type WorkflowStatus string

const (
	StatusInProgress WorkflowStatus = "in-progress"
	StatusSubmitting WorkflowStatus = "submitting"
	StatusConfirmed  WorkflowStatus = "confirmed"
	StatusFailed     WorkflowStatus = "failed"
)

// LocationState distinguishes "not yet requested" from an in-flight lookup
// and from a failed one, so the UI never renders an ambiguous location field.
type LocationState string

const (
	LocationNotRequested LocationState = "not-requested"
	LocationPending      LocationState = "pending"
	LocationAvailable    LocationState = "available"
	LocationFailed       LocationState = "failed"
)
