package models

// Card identifies a revolving-credit instrument owned by a profile.
//
// CycleCloseDay is the canonical name for the day of month the billing cycle
// closes; legacy snapshots also call it "cutoff" or "settlement" day and the
// store normalizes those aliases on load. Both day fields are clamped to the
// last valid day of any month that is shorter than the configured day.
type Card struct {
	ID            string `json:"id" yaml:"id"`
	ProfileID     string `json:"profile_id" yaml:"profile_id"`
	Name          string `json:"name" yaml:"name"`
	CycleCloseDay int    `json:"cycle_close_day" yaml:"cycle_close_day"`
	PaymentDueDay int    `json:"payment_due_day" yaml:"payment_due_day"`
	Color         string `json:"color,omitempty" yaml:"color,omitempty"`
	Label         string `json:"label,omitempty" yaml:"label,omitempty"`
}

// PaymentLagsMonth reports whether payment for a closed cycle falls in the
// month after settlement. That happens when the due day precedes the cycle
// close day, so the due day has already passed by the time the cycle closes.
func (c Card) PaymentLagsMonth() bool {
	return c.PaymentDueDay < c.CycleCloseDay
}
