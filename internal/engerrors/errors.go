// Package engerrors defines the named error types returned by the computation
// engine. Rejected operations surface one of these; the engine never panics
// and never leaves a record partially mutated.
package engerrors

import "fmt"

// NegativePaymentError is returned when a payment with a negative amount is
// recorded against a statement. The statement is left untouched.
type NegativePaymentError struct {
	CardID string
	Month  string
	Amount string
}

func (e *NegativePaymentError) Error() string {
	return fmt.Sprintf("invalid payment of %s for card %s statement %s: amount must not be negative",
		e.Amount, e.CardID, e.Month)
}

// ProtectedCategoryError is returned when a delete targets a default or
// otherwise protected category.
type ProtectedCategoryError struct {
	Category string
}

func (e *ProtectedCategoryError) Error() string {
	return fmt.Sprintf("category '%s' is protected and cannot be deleted", e.Category)
}

// DuplicateRecordError represents a consistency hazard: two rows exist for a
// key that must be unique, e.g. two statements for the same (card, month).
type DuplicateRecordError struct {
	Kind string
	Key  string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("duplicate %s for key '%s'", e.Kind, e.Key)
}

// ParseError represents a failure to parse an input value
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a referential miss: a record points at an id that
// no longer resolves. Money-affecting folds recover by counting the record
// anyway; display paths recover with an "Unknown" label.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

// UnknownLabel returns the display label used when a referenced record is
// missing, e.g. "Unknown Card".
func UnknownLabel(kind string) string {
	return "Unknown " + kind
}
