package store

import "github.com/polykhel/billcycle/internal/models"

// Snapshots written by older versions drifted on the card day-field names:
// the cycle-close day appears as cutoff_day or settlement_day, and the
// payment-due day as due_day or payment_day. The engine knows only the
// canonical names, so whichever alias is present is normalized here on load.
// Writes always emit the canonical names.

type rawCard struct {
	ID        string `yaml:"id"`
	ProfileID string `yaml:"profile_id"`
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	Label     string `yaml:"label"`

	CycleCloseDay int `yaml:"cycle_close_day"`
	CutoffDay     int `yaml:"cutoff_day"`
	SettlementDay int `yaml:"settlement_day"`

	PaymentDueDay int `yaml:"payment_due_day"`
	DueDay        int `yaml:"due_day"`
	PaymentDay    int `yaml:"payment_day"`
}

type rawSnapshot struct {
	Profiles     []models.Profile     `yaml:"profiles"`
	Cards        []rawCard            `yaml:"cards"`
	Accounts     []models.BankAccount `yaml:"accounts"`
	Transactions []models.Transaction `yaml:"transactions"`
	Statements   []models.Statement   `yaml:"statements"`
	Balances     []models.BankBalance `yaml:"balances"`
	Budgets      []models.Budget      `yaml:"budgets"`
	Loans        []models.LoanPlan    `yaml:"loans"`
}

// firstPositive returns the first day value actually present in the record.
func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func (r rawCard) normalize() models.Card {
	card := models.Card{
		ID:            r.ID,
		ProfileID:     r.ProfileID,
		Name:          r.Name,
		Color:         r.Color,
		Label:         r.Label,
		CycleCloseDay: firstPositive(r.CycleCloseDay, r.CutoffDay, r.SettlementDay),
		PaymentDueDay: firstPositive(r.PaymentDueDay, r.DueDay, r.PaymentDay),
	}

	if r.CycleCloseDay == 0 && (r.CutoffDay > 0 || r.SettlementDay > 0) {
		log.Debugf("Normalized legacy cycle-close day field for card %s", r.ID)
	}
	if r.PaymentDueDay == 0 && (r.DueDay > 0 || r.PaymentDay > 0) {
		log.Debugf("Normalized legacy payment-due day field for card %s", r.ID)
	}

	return card
}

func (r rawSnapshot) normalize() *Snapshot {
	snapshot := &Snapshot{
		Profiles:     r.Profiles,
		Accounts:     r.Accounts,
		Transactions: r.Transactions,
		Statements:   r.Statements,
		Balances:     r.Balances,
		Budgets:      r.Budgets,
		Loans:        r.Loans,
	}
	for _, c := range r.Cards {
		snapshot.Cards = append(snapshot.Cards, c.normalize())
	}
	return snapshot
}
