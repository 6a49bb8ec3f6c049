package catalog

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProviders(t *testing.T) {
	c := NewMemoryCatalog()

	providers := c.ListProviders(models.KindAppointment)
	require.NotEmpty(t, providers)

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		assert.Equal(t, models.KindAppointment, p.Kind)
		assert.Positive(t, p.PriceMinorUnits)
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Dr. Sarah Johnson")

	assert.Empty(t, c.ListProviders(models.WorkflowKind("car-wash")))
}

func TestListAvailableSlots(t *testing.T) {
	c := NewMemoryCatalog()

	slots := c.ListAvailableSlots("doc-1", "2025-03-10")
	require.NotEmpty(t, slots)

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		assert.Equal(t, "doc-1", s.ProviderID)
		assert.Equal(t, "2025-03-10", s.Date)
		times = append(times, s.Time)
	}
	assert.Contains(t, times, "09:00")

	assert.Empty(t, c.ListAvailableSlots("nobody", "2025-03-10"))
}

func TestListPaymentMethods(t *testing.T) {
	c := NewMemoryCatalog()

	for _, kind := range []models.WorkflowKind{
		models.KindAppointment, models.KindLabTest, models.KindNanny, models.KindEmergency,
	} {
		assert.NotEmpty(t, c.ListPaymentMethods(kind), "kind %s", kind)
	}

	// pay-later is an emergency-only option, flagged as deferred.
	hasPayLater := func(kind models.WorkflowKind) (bool, bool) {
		for _, m := range c.ListPaymentMethods(kind) {
			if m.ID == "pay-later" {
				return true, m.Deferred
			}
		}
		return false, false
	}

	found, deferred := hasPayLater(models.KindEmergency)
	assert.True(t, found)
	assert.True(t, deferred)

	for _, kind := range []models.WorkflowKind{models.KindAppointment, models.KindLabTest, models.KindNanny} {
		found, _ := hasPayLater(kind)
		assert.False(t, found, "kind %s", kind)
	}
}
