package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Confidence weights for a resolved mapping.
const (
	weightDate        = 30
	weightAmount      = 30
	weightDescription = 20
	weightOptional    = 10

	requiredWeight = weightDate + weightAmount + weightDescription
)

// ErrUnknownPreset is returned when a caller names a preset that is not registered.
var ErrUnknownPreset = errors.New("unknown bank preset")

// maxSampleValues is the number of distinct sample values kept per column.
const maxSampleValues = 3

// AutoDetectResult is the best-guess mapping for a header row.
type AutoDetectResult struct {
	PresetID       string               `json:"presetId,omitempty" yaml:"presetId,omitempty"` // Empty when no preset matched
	Mapping        ColumnMapping        `json:"mapping" yaml:"mapping"`
	ColumnMappings []ColumnMappingEntry `json:"columnMappings" yaml:"columnMappings"`
	Confidence     int                  `json:"confidence" yaml:"confidence"` // 0-100
	Warnings       []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AutoDetectMapping derives a column mapping from headers, preferring a known
// bank preset and falling back to keyword matching. rows are only used for
// sample values and date format inference.
func AutoDetectMapping(headers []string, rows [][]string) AutoDetectResult {
	var result AutoDetectResult

	if id, ok := DetectBankPreset(headers); ok {
		p, _ := GetBankPreset(id)
		result.PresetID = id
		result.Mapping, result.Confidence = mappingFromPreset(p, headers)
	} else {
		result.Mapping, result.Confidence, result.Warnings = mappingFromHeaders(headers, rows)
	}

	result.ColumnMappings = BuildColumnMappings(headers, rows, result.Mapping)
	return result
}

// MappingForPreset applies the registered preset id to headers, bypassing
// detection. Columns the preset names but the file lacks stay unmapped, so
// the result should still go through ValidateMapping.
func MappingForPreset(id string, headers []string, rows [][]string) (AutoDetectResult, error) {
	p, ok := GetBankPreset(id)
	if !ok {
		return AutoDetectResult{}, fmt.Errorf("%w %q", ErrUnknownPreset, id)
	}

	m, confidence := mappingFromPreset(p, headers)
	return AutoDetectResult{
		PresetID:       p.ID,
		Mapping:        m,
		ColumnMappings: BuildColumnMappings(headers, rows, m),
		Confidence:     confidence,
	}, nil
}

// mappingFromPreset resolves each column named by p to its header index.
func mappingFromPreset(p BankPreset, headers []string) (ColumnMapping, int) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	lookup := func(col string) int {
		if col == "" {
			return NoColumn
		}
		if i, ok := idx[normalizeHeader(col)]; ok {
			return i
		}
		return NoColumn
	}

	m := NewColumnMapping()
	m.Date = lookup(p.DateColumn)
	m.Description = lookup(p.DescriptionColumn)
	m.Reference = lookup(p.ReferenceColumn)
	m.Memo = lookup(p.MemoColumn)
	m.AmountFormat = p.AmountFormat
	if p.DateFormat != "" {
		m.DateFormat = p.DateFormat
	}

	if p.AmountFormat == AmountSplit {
		m.Debit = lookup(p.DebitColumn)
		m.Credit = lookup(p.CreditColumn)
	} else {
		m.Amount = lookup(p.AmountColumn)
	}

	expected := 0
	if p.ReferenceColumn != "" {
		expected++
	}
	if p.MemoColumn != "" {
		expected++
	}
	return m, mappingConfidence(m, expected)
}

// mappingFromHeaders assigns fields by keyword; the first header matching a
// field claims it.
func mappingFromHeaders(headers []string, rows [][]string) (ColumnMapping, int, []string) {
	m := NewColumnMapping()
	slots := map[Field]*int{
		FieldDate:        &m.Date,
		FieldDescription: &m.Description,
		FieldAmount:      &m.Amount,
		FieldDebit:       &m.Debit,
		FieldCredit:      &m.Credit,
		FieldReference:   &m.Reference,
		FieldMemo:        &m.Memo,
	}

	for i, h := range headers {
		field, ok := FuzzyMatchColumn(h)
		if !ok || field == FieldIgnore {
			continue
		}
		if slot := slots[field]; *slot == NoColumn {
			*slot = i
		}
	}

	if m.Debit != NoColumn || m.Credit != NoColumn {
		m.AmountFormat = AmountSplit
		m.Amount = NoColumn
	}

	if m.Date != NoColumn {
		m.DateFormat = DetectDateFormat(columnValues(rows, m.Date))
	}

	expected := 0
	if m.Reference != NoColumn {
		expected++
	}
	if m.Memo != NoColumn {
		expected++
	}

	var warnings []string
	if m.Date == NoColumn {
		warnings = append(warnings, "Could not detect a date column")
	}
	switch {
	case m.AmountFormat == AmountSplit && m.Debit == NoColumn:
		warnings = append(warnings, "Found a credit column but no debit column")
	case m.AmountFormat == AmountSplit && m.Credit == NoColumn:
		warnings = append(warnings, "Found a debit column but no credit column")
	case m.AmountFormat == AmountSigned && m.Amount == NoColumn:
		warnings = append(warnings, "Could not detect an amount column")
	}
	if m.Description == NoColumn {
		warnings = append(warnings, "Could not detect a description column")
	}

	return m, mappingConfidence(m, expected), warnings
}

// mappingConfidence scores the resolved fields of m against the fields it
// could have resolved. expectedOptional is the number of optional fields
// (reference, memo) the source declared.
func mappingConfidence(m ColumnMapping, expectedOptional int) int {
	possible := requiredWeight + weightOptional*expectedOptional
	achieved := 0

	if m.Date >= 0 {
		achieved += weightDate
	}
	if amountResolved(m) {
		achieved += weightAmount
	}
	if m.Description >= 0 {
		achieved += weightDescription
	}
	if m.Reference >= 0 {
		achieved += weightOptional
	}
	if m.Memo >= 0 {
		achieved += weightOptional
	}

	if achieved > possible {
		achieved = possible
	}
	return int(math.Round(float64(achieved) / float64(possible) * 100))
}

func amountResolved(m ColumnMapping) bool {
	if m.AmountFormat == AmountSplit {
		return m.Debit >= 0 && m.Credit >= 0
	}
	return m.Amount >= 0
}

// BuildColumnMappings projects a mapping onto every physical column, with up
// to three distinct non-empty sample values taken in row order.
func BuildColumnMappings(headers []string, rows [][]string, m ColumnMapping) []ColumnMappingEntry {
	entries := make([]ColumnMappingEntry, len(headers))
	for i, h := range headers {
		entries[i] = ColumnMappingEntry{
			Header:       h,
			Index:        i,
			Field:        fieldForIndex(m, i),
			SampleValues: sampleValues(rows, i),
		}
	}
	return entries
}

// fieldForIndex returns the field mapped to column i, or FieldIgnore.
func fieldForIndex(m ColumnMapping, i int) Field {
	switch i {
	case m.Date:
		return FieldDate
	case m.Description:
		return FieldDescription
	}
	if m.AmountFormat == AmountSplit {
		switch i {
		case m.Debit:
			return FieldDebit
		case m.Credit:
			return FieldCredit
		}
	} else if i == m.Amount {
		return FieldAmount
	}
	switch i {
	case m.Reference:
		return FieldReference
	case m.Memo:
		return FieldMemo
	}
	return FieldIgnore
}

func sampleValues(rows [][]string, col int) []string {
	samples := []string{}
	seen := make(map[string]bool, maxSampleValues)
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		samples = append(samples, v)
		if len(samples) == maxSampleValues {
			break
		}
	}
	return samples
}

// columnValues returns every value of column col, skipping short rows.
func columnValues(rows [][]string, col int) []string {
	var values []string
	for _, row := range rows {
		if col < len(row) {
			values = append(values, row[col])
		}
	}
	return values
}

// ColumnMappingsToMapping rebuilds a ColumnMapping from per-column entries,
// typically after a user edited them. The first entry assigned to a field
// wins. Any debit or credit entry selects the split amount format.
func ColumnMappingsToMapping(entries []ColumnMappingEntry, dateFormat DateFormat) ColumnMapping {
	m := NewColumnMapping()
	if dateFormat != "" {
		m.DateFormat = dateFormat
	}

	assign := func(slot *int, idx int) {
		if *slot == NoColumn {
			*slot = idx
		}
	}

	for _, e := range entries {
		switch e.Field {
		case FieldDate:
			assign(&m.Date, e.Index)
		case FieldDescription:
			assign(&m.Description, e.Index)
		case FieldAmount:
			assign(&m.Amount, e.Index)
		case FieldDebit:
			assign(&m.Debit, e.Index)
		case FieldCredit:
			assign(&m.Credit, e.Index)
		case FieldReference:
			assign(&m.Reference, e.Index)
		case FieldMemo:
			assign(&m.Memo, e.Index)
		}
	}

	if m.Debit != NoColumn || m.Credit != NoColumn {
		m.AmountFormat = AmountSplit
		m.Amount = NoColumn
	}
	return m
}

// DetectDateFormat infers day/month ordering from sample date values. A
// 4-digit leading part means YYYY-MM-DD; a leading part above 12 means
// DD/MM/YYYY; a middle part above 12 confirms MM/DD/YYYY. The first sample
// that settles the question decides. Ambiguous samples default to MM/DD/YYYY.
func DetectDateFormat(samples []string) DateFormat {
	for _, raw := range samples {
		s := strings.TrimSpace(CleanCell(raw))
		if i := strings.IndexAny(s, " T"); i > 0 {
			s = s[:i]
		}
		parts := strings.FieldsFunc(s, func(r rune) bool {
			return r == '/' || r == '-' || r == '.'
		})
		if len(parts) != 3 {
			continue
		}
		if len(parts[0]) == 4 {
			return DateFormatYMD
		}

		first, err1 := strconv.Atoi(parts[0])
		second, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		switch {
		case first > 12:
			return DateFormatDMY
		case second > 12:
			return DateFormatMDY
		}
	}
	return DateFormatMDY
}
