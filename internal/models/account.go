package models

import "github.com/shopspring/decimal"

// BankAccount is a cash account whose balance the projector tracks.
type BankAccount struct {
	ID             string          `json:"id" yaml:"id"`
	ProfileID      string          `json:"profile_id" yaml:"profile_id"`
	Name           string          `json:"name" yaml:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance" yaml:"initial_balance"`
}

// BankBalance is a point-in-time balance snapshot for a (profile, month)
// pair, optionally narrowed to a single account when per-account tracking is
// enabled. Snapshots are the floor for running-balance projection.
type BankBalance struct {
	ID        string `json:"id" yaml:"id"`
	ProfileID string `json:"profile_id" yaml:"profile_id"`
	// Month is the snapshot month key (YYYY-MM).
	Month string `json:"month" yaml:"month"`
	// AccountID is empty for a profile-level snapshot.
	AccountID string          `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	Balance   decimal.Decimal `json:"balance" yaml:"balance"`
}

// Profile is the tenant-like partition that owns every other record.
type Profile struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
