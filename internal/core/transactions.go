package core

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseTransactions converts data rows into candidate transactions using m.
// It refuses to run with a mapping that fails ValidateMapping. Row-level
// problems never fail the batch: they are recorded on the transaction, which
// is marked invalid. Output order matches row order.
func ParseTransactions(rows [][]string, m ColumnMapping) ([]ParsedTransaction, error) {
	if err := ValidateMapping(m).Err(); err != nil {
		return nil, err
	}

	txns := make([]ParsedTransaction, 0, len(rows))
	for i, row := range rows {
		txns = append(txns, parseRow(i, row, m))
	}
	return txns, nil
}

func parseRow(index int, row []string, m ColumnMapping) ParsedTransaction {
	txn := ParsedTransaction{
		TempID:   uuid.NewString(),
		RowIndex: index,
		RawRow:   append([]string(nil), row...),
	}

	rawDate := cell(row, m.Date)
	if d, ok := ParseDate(rawDate, m.DateFormat); ok {
		txn.Date = d
	} else {
		txn.Errors = append(txn.Errors, ValidationError{
			Field:   FieldDate,
			Message: "invalid date, expected " + string(m.DateFormat),
			Value:   rawDate,
		})
	}

	if amount, err := rowAmount(row, m); err != nil {
		txn.Errors = append(txn.Errors, *err)
	} else {
		txn.Amount = amount
	}

	rawDesc := cell(row, m.Description)
	txn.Description = SanitizeDescription(rawDesc)
	if txn.Description == "" {
		txn.Errors = append(txn.Errors, ValidationError{
			Field:   FieldDescription,
			Message: "description is empty",
			Value:   rawDesc,
		})
	}

	txn.Reference = SanitizeDescription(cell(row, m.Reference))
	txn.Memo = SanitizeDescription(cell(row, m.Memo))

	txn.IsValid = len(txn.Errors) == 0
	return txn
}

// rowAmount reads the signed amount for a row. For split layouts the result
// is credit minus debit using absolute values, with an empty side read as zero.
func rowAmount(row []string, m ColumnMapping) (decimal.Decimal, *ValidationError) {
	if m.AmountFormat != AmountSplit {
		raw := cell(row, m.Amount)
		amount, ok := ParseAmount(raw)
		if !ok {
			return decimal.Zero, amountError(raw)
		}
		return amount, nil
	}

	rawDebit := cell(row, m.Debit)
	rawCredit := cell(row, m.Credit)
	if CleanCell(rawDebit) == "" && CleanCell(rawCredit) == "" {
		return decimal.Zero, amountError("")
	}

	debit, credit := decimal.Zero, decimal.Zero
	if CleanCell(rawDebit) != "" {
		d, ok := ParseAmount(rawDebit)
		if !ok {
			return decimal.Zero, amountError(rawDebit)
		}
		debit = d.Abs()
	}
	if CleanCell(rawCredit) != "" {
		c, ok := ParseAmount(rawCredit)
		if !ok {
			return decimal.Zero, amountError(rawCredit)
		}
		credit = c.Abs()
	}
	return credit.Sub(debit), nil
}

func amountError(raw string) *ValidationError {
	msg := "invalid amount"
	if raw == "" {
		msg = "amount is missing"
	}
	return &ValidationError{Field: FieldAmount, Message: msg, Value: raw}
}

// cell returns row[i], or "" when i is unmapped or past the end of a ragged row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
