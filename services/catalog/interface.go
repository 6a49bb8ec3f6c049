package catalog

import "medibook/models"

// Catalog supplies the option lists the booking wizards render. It is a
// read-only port owned by the data layer; the workflow engine only consumes
// it as an injected dependency.
type Catalog interface {
	ListProviders(kind models.WorkflowKind) []models.Provider
	ListAvailableSlots(providerID, date string) []models.AvailableSlot
	ListPaymentMethods(kind models.WorkflowKind) []models.PaymentMethod
}
