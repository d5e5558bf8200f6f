package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMapping(t *testing.T) {
	signed := func(date, desc, amount int) ColumnMapping {
		m := NewColumnMapping()
		m.Date, m.Description, m.Amount = date, desc, amount
		return m
	}
	split := func(debit, credit int) ColumnMapping {
		m := NewColumnMapping()
		m.Date, m.Description = 0, 1
		m.Debit, m.Credit = debit, credit
		m.AmountFormat = AmountSplit
		return m
	}

	tests := []struct {
		name       string
		mapping    ColumnMapping
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "complete signed",
			mapping:   signed(0, 1, 2),
			wantValid: true,
		},
		{
			name:      "complete split",
			mapping:   split(2, 3),
			wantValid: true,
		},
		{
			name:       "missing date",
			mapping:    signed(NoColumn, 1, 2),
			wantErrors: []string{"date column is required"},
		},
		{
			name:       "missing amount",
			mapping:    signed(0, 1, NoColumn),
			wantErrors: []string{"amount column is required"},
		},
		{
			name:       "split missing credit",
			mapping:    split(2, NoColumn),
			wantErrors: []string{"split amount format requires both debit and credit columns"},
		},
		{
			name:       "missing description",
			mapping:    signed(0, NoColumn, 2),
			wantErrors: []string{"description column is required"},
		},
		{
			name:    "empty mapping",
			mapping: NewColumnMapping(),
			wantErrors: []string{
				"date column is required",
				"amount column is required",
				"description column is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMapping(tt.mapping)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)

			if tt.wantValid {
				assert.NoError(t, got.Err())
			} else {
				assert.ErrorIs(t, got.Err(), ErrInvalidMapping)
			}
		})
	}
}

func TestValidateMapping_DebitCreditIgnoredWhenSigned(t *testing.T) {
	m := NewColumnMapping()
	m.Date, m.Description, m.Debit, m.Credit = 0, 1, 2, 3

	got := ValidateMapping(m)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"amount column is required"}, got.Errors)
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: FieldAmount, Message: "invalid amount", Value: "abc"}
	assert.EqualError(t, err, "amount: invalid amount")
}
