package core

// validation.go provides the mapping precondition gate and per-transaction
// validation errors.
//
// Validation happens at two levels:
//  1. Mapping validation: ValidateMapping must pass before any row is converted
//  2. Field validation: each row's date, amount and description are checked
//     and failures are attached to the transaction, never aborting the batch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMapping is returned when transactions are requested with a mapping
// that fails ValidateMapping.
var ErrInvalidMapping = errors.New("invalid column mapping")

// ValidationError represents a single validation error for a transaction field.
type ValidationError struct {
	Field   Field  `json:"field" yaml:"field"`     // FieldDate, FieldAmount or FieldDescription
	Message string `json:"message" yaml:"message"` // Human-readable error message
	Value   string `json:"value" yaml:"value"`     // The offending raw value
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// MappingValidation contains the result of validating a ColumnMapping.
type MappingValidation struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Err returns nil for a valid mapping, or an error wrapping ErrInvalidMapping
// that lists every problem.
func (v MappingValidation) Err() error {
	if v.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidMapping, strings.Join(v.Errors, "; "))
}

// ValidateMapping checks that a mapping has a date column, a complete amount
// representation, and a description column. It is the single precondition for
// ParseTransactions.
func ValidateMapping(m ColumnMapping) MappingValidation {
	var errs []string

	if m.Date < 0 {
		errs = append(errs, "date column is required")
	}

	switch m.AmountFormat {
	case AmountSplit:
		if m.Debit < 0 || m.Credit < 0 {
			errs = append(errs, "split amount format requires both debit and credit columns")
		}
	case AmountSigned, "":
		if m.Amount < 0 {
			errs = append(errs, "amount column is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown amount format %q", m.AmountFormat))
	}

	if m.Description < 0 {
		errs = append(errs, "description column is required")
	}

	return MappingValidation{Valid: len(errs) == 0, Errors: errs}
}
