package workflow

import "medibook/models"

// emergencyCalloutFees are fixed per-urgency dispatch fees in minor units.
var emergencyCalloutFees = map[string]int64{
	"critical": 500000,
	"urgent":   350000,
	"standard": 250000,
}

// defaultAmountMinorUnits is charged when no catalog price is resolvable
// (library use without a catalog).
const defaultAmountMinorUnits int64 = 100000

// amountDue derives the charge amount for a completed draft: the selected
// provider's catalog price, or the urgency-based callout fee for emergencies.
func (c *Controller) amountDue(d models.BookingDraft) int64 {
	if d.Kind == models.KindEmergency {
		urgency, _ := d.Get("urgency")
		if fee, ok := emergencyCalloutFees[urgency]; ok {
			return fee
		}
		return emergencyCalloutFees["standard"]
	}
	if c.deps.Catalog != nil {
		if prov, ok := d.Get("provider"); ok {
			if p := c.providerByValueLocked(d.Kind, prov); p != nil {
				return p.PriceMinorUnits
			}
		}
	}
	return defaultAmountMinorUnits
}
