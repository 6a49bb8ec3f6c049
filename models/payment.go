package models

// ChargeStatus is the outcome class of a payment attempt.
type ChargeStatus string

const (
	ChargeAuthorized ChargeStatus = "authorized"
	ChargeDeclined   ChargeStatus = "declined"
)

// ChargeResult is the uniform outcome of PaymentProcessor.Charge. A deferred
// "pay-later" charge is an ordinary Authorized result so the workflow
// controller needs no special-casing for it.
type ChargeResult struct {
	Status    ChargeStatus `json:"status"`
	Reference string       `json:"reference,omitempty"` // set when authorized
	Reason    string       `json:"reason,omitempty"`    // set when declined
}

// PaymentMethod is one option a workflow kind offers at the payment step.
type PaymentMethod struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Deferred bool   `json:"deferred,omitempty"` // pay-later style method
}
