package engerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegativePaymentError(t *testing.T) {
	err := &NegativePaymentError{CardID: "card-1", Month: "2024-01", Amount: "-50"}
	assert.Contains(t, err.Error(), "card-1")
	assert.Contains(t, err.Error(), "2024-01")
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestProtectedCategoryError(t *testing.T) {
	err := &ProtectedCategoryError{Category: "Uncategorized"}
	assert.Contains(t, err.Error(), "Uncategorized")
	assert.Contains(t, err.Error(), "protected")
}

func TestDuplicateRecordError(t *testing.T) {
	err := &DuplicateRecordError{Kind: "statement", Key: "card-1/2024-01"}
	assert.Contains(t, err.Error(), "statement")
	assert.Contains(t, err.Error(), "card-1/2024-01")
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad month key")
	err := &ParseError{Field: "month", Value: "January", Err: cause}

	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "January")
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("loading snapshot: %w", err)
	var pe *ParseError
	require.ErrorAs(t, wrapped, &pe)
	assert.Equal(t, "month", pe.Field)
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "card", ID: "card-404"}
	assert.Equal(t, "card 'card-404' not found", err.Error())
}

func TestUnknownLabel(t *testing.T) {
	assert.Equal(t, "Unknown Card", UnknownLabel("Card"))
	assert.Equal(t, "Unknown Account", UnknownLabel("Account"))
}
