package catalog

import "medibook/models"

// MemoryCatalog serves fixed in-memory option lists. Slots repeat daily per
// provider; there is no calendar backend behind them.
type MemoryCatalog struct {
	providers map[models.WorkflowKind][]models.Provider
	slotTimes map[string][]string
	methods   map[models.WorkflowKind][]models.PaymentMethod
}

// NewMemoryCatalog returns a catalog seeded with the demo marketplace data.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		providers: map[models.WorkflowKind][]models.Provider{
			models.KindAppointment: {
				{ID: "doc-1", Name: "Dr. Sarah Johnson", Kind: models.KindAppointment, Specialty: "General Medicine", Rating: 4.9, PriceMinorUnits: 250000},
				{ID: "doc-2", Name: "Dr. Michael Chen", Kind: models.KindAppointment, Specialty: "Cardiology", Rating: 4.8, PriceMinorUnits: 400000},
				{ID: "doc-3", Name: "Dr. Emily Davis", Kind: models.KindAppointment, Specialty: "Pediatrics", Rating: 4.7, PriceMinorUnits: 300000},
			},
			models.KindLabTest: {
				{ID: "lab-1", Name: "CityCare Diagnostics", Kind: models.KindLabTest, Rating: 4.6, PriceMinorUnits: 120000},
				{ID: "lab-2", Name: "MedPath Labs", Kind: models.KindLabTest, Rating: 4.5, PriceMinorUnits: 95000},
			},
			models.KindNanny: {
				{ID: "nny-1", Name: "Grace Wanjiru", Kind: models.KindNanny, Rating: 4.9, PriceMinorUnits: 180000},
				{ID: "nny-2", Name: "Amina Hassan", Kind: models.KindNanny, Rating: 4.8, PriceMinorUnits: 160000},
			},
			models.KindEmergency: {
				{ID: "amb-1", Name: "Rapid Response Unit 7", Kind: models.KindEmergency, PriceMinorUnits: 500000},
			},
		},
		slotTimes: map[string][]string{
			"doc-1": {"09:00", "09:30", "10:00", "11:00", "14:00", "15:30"},
			"doc-2": {"08:30", "10:30", "13:00", "16:00"},
			"doc-3": {"09:00", "11:30", "14:30"},
			"lab-1": {"07:00", "08:00", "09:00", "10:00"},
			"lab-2": {"07:30", "09:30", "11:00"},
		},
		methods: map[models.WorkflowKind][]models.PaymentMethod{
			models.KindAppointment: {
				{ID: "visa", Label: "Visa"},
				{ID: "mastercard", Label: "Mastercard"},
				{ID: "mpesa", Label: "M-Pesa"},
			},
			models.KindLabTest: {
				{ID: "visa", Label: "Visa"},
				{ID: "mpesa", Label: "M-Pesa"},
				{ID: "cash", Label: "Cash on collection"},
			},
			models.KindNanny: {
				{ID: "visa", Label: "Visa"},
				{ID: "mpesa", Label: "M-Pesa"},
			},
			models.KindEmergency: {
				{ID: "visa", Label: "Visa"},
				{ID: "mpesa", Label: "M-Pesa"},
				{ID: "pay-later", Label: "Pay after service", Deferred: true},
			},
		},
	}
}

func (c *MemoryCatalog) ListProviders(kind models.WorkflowKind) []models.Provider {
	return append([]models.Provider(nil), c.providers[kind]...)
}

func (c *MemoryCatalog) ListAvailableSlots(providerID, date string) []models.AvailableSlot {
	times := c.slotTimes[providerID]
	out := make([]models.AvailableSlot, 0, len(times))
	for _, t := range times {
		out = append(out, models.AvailableSlot{ProviderID: providerID, Date: date, Time: t})
	}
	return out
}

func (c *MemoryCatalog) ListPaymentMethods(kind models.WorkflowKind) []models.PaymentMethod {
	return append([]models.PaymentMethod(nil), c.methods[kind]...)
}
