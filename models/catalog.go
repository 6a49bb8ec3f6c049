package models

// Provider is a bookable service provider (doctor, lab, nanny agency,
// ambulance operator) as surfaced by the catalog.
type Provider struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Kind            WorkflowKind `json:"kind"`
	Specialty       string       `json:"specialty,omitempty"`
	Rating          float64      `json:"rating,omitempty"`
	PriceMinorUnits int64        `json:"priceMinorUnits"`
}

// AvailableSlot is one bookable time slot offered by a provider on a date.
type AvailableSlot struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	Time       string `json:"time"` // "HH:MM"
}
