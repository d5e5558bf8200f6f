package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// NoColumn marks a ColumnMapping field that is not mapped to any column.
const NoColumn = -1

// DateFormat declares the day/month/year ordering of a date column.
type DateFormat string

const (
	DateFormatMDY DateFormat = "MM/DD/YYYY"
	DateFormatDMY DateFormat = "DD/MM/YYYY"
	DateFormatYMD DateFormat = "YYYY-MM-DD"
)

// AmountFormat describes how a statement represents transaction amounts.
type AmountFormat string

const (
	// AmountSigned is a single column where the sign encodes inflow/outflow.
	AmountSigned AmountFormat = "signed"
	// AmountSplit is a pair of non-negative debit and credit columns.
	AmountSplit AmountFormat = "split"
)

// Field is a logical transaction field a CSV column can be assigned to.
type Field string

const (
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldDebit       Field = "debit"
	FieldCredit      Field = "credit"
	FieldDescription Field = "description"
	FieldReference   Field = "reference"
	FieldMemo        Field = "memo"
	FieldIgnore      Field = "ignore"
)

// ParsedCSV is the tokenized form of a delimited text export.
type ParsedCSV struct {
	Headers   []string   `json:"headers" yaml:"headers"`
	Rows      [][]string `json:"rows" yaml:"rows"`
	Delimiter rune       `json:"delimiter" yaml:"delimiter"`
	RowCount  int        `json:"rowCount" yaml:"rowCount"`
	Truncated bool       `json:"truncated" yaml:"truncated"` // MaxRows was reached; callers must surface this
}

// BankPreset is the static column layout of one bank's CSV export.
// Column names are matched case-insensitively after whitespace normalization.
type BankPreset struct {
	ID       string // Stable identifier: "chase_checking"
	Name     string // Display name: "Chase Checking"
	Priority int    // Lower values are tried first during detection

	DateColumn        string
	DescriptionColumn string
	AmountColumn      string // Set when AmountFormat is AmountSigned
	DebitColumn       string // Set when AmountFormat is AmountSplit
	CreditColumn      string // Set when AmountFormat is AmountSplit
	ReferenceColumn   string // Optional
	MemoColumn        string // Optional

	// IdentifyingColumns are extra headers that must be present for detection,
	// used to tell apart banks that share the same core columns.
	IdentifyingColumns []string

	DateFormat   DateFormat
	AmountFormat AmountFormat
}

// ColumnMapping maps logical fields to zero-based column indices.
// Unmapped fields hold NoColumn. Date and Description are required; the amount
// is either Amount (AmountSigned) or the Debit+Credit pair (AmountSplit), never both.
type ColumnMapping struct {
	Date         int          `json:"date" yaml:"date"`
	Description  int          `json:"description" yaml:"description"`
	Amount       int          `json:"amount" yaml:"amount"`
	Debit        int          `json:"debit" yaml:"debit"`
	Credit       int          `json:"credit" yaml:"credit"`
	Reference    int          `json:"reference" yaml:"reference"`
	Memo         int          `json:"memo" yaml:"memo"`
	DateFormat   DateFormat   `json:"dateFormat" yaml:"dateFormat"`
	AmountFormat AmountFormat `json:"amountFormat" yaml:"amountFormat"`
}

// NewColumnMapping returns a mapping with every field unmapped.
func NewColumnMapping() ColumnMapping {
	return ColumnMapping{
		Date:         NoColumn,
		Description:  NoColumn,
		Amount:       NoColumn,
		Debit:        NoColumn,
		Credit:       NoColumn,
		Reference:    NoColumn,
		Memo:         NoColumn,
		DateFormat:   DateFormatMDY,
		AmountFormat: AmountSigned,
	}
}

// ColumnMappingEntry is the per-column projection of a mapping shown to users.
type ColumnMappingEntry struct {
	Header       string   `json:"header" yaml:"header"`
	Index        int      `json:"index" yaml:"index"`
	Field        Field    `json:"field" yaml:"field"`
	SampleValues []string `json:"sampleValues" yaml:"sampleValues"`
}

// ParsedTransaction is one candidate ledger record built from a CSV row.
type ParsedTransaction struct {
	TempID      string          `json:"tempId" yaml:"tempId"` // Import-session scoped, not a persisted key
	Date        time.Time       `json:"date" yaml:"date"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"` // Positive = inflow
	Description string          `json:"description" yaml:"description"`
	Reference   string          `json:"reference,omitempty" yaml:"reference,omitempty"`
	Memo        string          `json:"memo,omitempty" yaml:"memo,omitempty"`

	RowIndex int      `json:"rowIndex" yaml:"rowIndex"`
	RawRow   []string `json:"rawRow" yaml:"rawRow"`

	IsValid bool              `json:"isValid" yaml:"isValid"`
	Errors  []ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`

	IsDuplicate    bool            `json:"isDuplicate" yaml:"isDuplicate"`
	DuplicateMatch *DuplicateMatch `json:"duplicateMatch,omitempty" yaml:"duplicateMatch,omitempty"`
}

// DuplicateMatch describes the existing record a candidate most likely duplicates.
type DuplicateMatch struct {
	ExistingID  string          `json:"existingId" yaml:"existingId"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Date        time.Time       `json:"date" yaml:"date"`
	Confidence  int             `json:"confidence" yaml:"confidence"` // 0-100
	Reasons     []string        `json:"reasons" yaml:"reasons"`
}

// ExistingTransaction is the minimal shape of a persisted record needed for
// duplicate detection. No other fields are assumed to exist.
type ExistingTransaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// ExistingTransactionSource queries persisted transactions for one account.
// from and to are inclusive calendar dates.
type ExistingTransactionSource interface {
	FindTransactions(ctx context.Context, userID, accountID string, from, to time.Time) ([]ExistingTransaction, error)
}

// DuplicateCheckResult is the side table produced by duplicate detection,
// keyed by ParsedTransaction.TempID.
type DuplicateCheckResult struct {
	Matches        map[string]DuplicateMatch `json:"matches" yaml:"matches"`
	DuplicateCount int                       `json:"duplicateCount" yaml:"duplicateCount"`
	Checked        int                       `json:"checked" yaml:"checked"`   // Candidates compared against existing records
	Degraded       bool                      `json:"degraded" yaml:"degraded"` // Existing records could not be fetched
}
