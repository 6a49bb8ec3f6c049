package models

import "time"

// BookingRecord is the immutable artifact produced when a workflow completes.
// It is the only shape the engine expects a persistence layer to accept.
type BookingRecord struct {
	TicketID  string            `bson:"ticketId" json:"ticketId"`
	Kind      WorkflowKind      `bson:"kind" json:"kind"`
	Fields    map[string]string `bson:"fields" json:"fields"` // frozen draft
	SLAWindow string            `bson:"slaWindow,omitempty" json:"slaWindow,omitempty"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
