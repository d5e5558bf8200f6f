package core

import "strings"

// fieldSynonyms is the keyword dictionary used for headers that do not match a
// known preset. Entries are checked top to bottom and the first field with a
// keyword contained in the header wins, so the order is part of the contract:
//
//   - date comes first so "Value Date" is a date, not an amount
//   - debit/credit precede amount so "Debit Amount" selects the split layout
//   - reference and memo precede description so "Transaction ID" and
//     "Notes" are not swallowed by the broad description keywords
//   - type, category and balance columns are claimed as ignore before
//     description, so "Transaction Type" never becomes the description
var fieldSynonyms = []struct {
	field    Field
	keywords []string
}{
	{FieldDate, []string{"date", "posted", "posting", "booked", "booking"}},
	{FieldDebit, []string{"debit", "withdrawal", "paid out", "money out", "outflow"}},
	{FieldCredit, []string{"credit", "deposit", "paid in", "money in", "inflow"}},
	{FieldAmount, []string{"amount", "amt", "value"}},
	{FieldReference, []string{"reference", "ref", "check number", "check #", "cheque", "transaction id", "slip"}},
	{FieldMemo, []string{"memo", "note", "comment"}},
	{FieldIgnore, []string{"type", "category", "balance"}},
	{FieldDescription, []string{"description", "desc", "details", "narrative", "particulars", "payee", "merchant", "name"}},
}

// FuzzyMatchColumn guesses the field for a header by keyword containment.
// Returns false when no keyword matches. FieldIgnore means the header is
// recognized as a column that never maps to a transaction field.
func FuzzyMatchColumn(header string) (Field, bool) {
	h := normalizeHeader(header)
	if h == "" {
		return "", false
	}

	for _, entry := range fieldSynonyms {
		for _, kw := range entry.keywords {
			if strings.Contains(h, kw) {
				return entry.field, true
			}
		}
	}
	return "", false
}
