package core

// PreviewSummary contains the summary counts for an import preview.
type PreviewSummary struct {
	TotalRows      int  `json:"totalRows" yaml:"totalRows"`
	ValidRows      int  `json:"validRows" yaml:"validRows"`
	ErrorRows      int  `json:"errorRows" yaml:"errorRows"`
	DuplicateRows  int  `json:"duplicateRows" yaml:"duplicateRows"`
	NewRows        int  `json:"newRows" yaml:"newRows"` // Valid and not a duplicate
	Truncated      bool `json:"truncated" yaml:"truncated"`
	DuplicateCheck bool `json:"duplicateCheck" yaml:"duplicateCheck"` // False when existing records were unavailable
}

// RowPreview represents a single transaction for preview display.
type RowPreview struct {
	LineNumber  int    `json:"lineNumber" yaml:"lineNumber"`
	Date        string `json:"date" yaml:"date"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

// ErrorPreview represents a row with validation errors.
type ErrorPreview struct {
	LineNumber int      `json:"lineNumber" yaml:"lineNumber"`
	RawRow     []string `json:"rawRow" yaml:"rawRow"`
	Errors     []string `json:"errors" yaml:"errors"`
}

// DuplicatePreview pairs a candidate with the existing record it matched.
type DuplicatePreview struct {
	LineNumber int            `json:"lineNumber" yaml:"lineNumber"`
	Incoming   RowPreview     `json:"incoming" yaml:"incoming"`
	Match      DuplicateMatch `json:"match" yaml:"match"`
}

// PreviewResponse is the complete result of analyzing an import before commit.
type PreviewResponse struct {
	Summary          PreviewSummary       `json:"summary" yaml:"summary"`
	PresetID         string               `json:"presetId,omitempty" yaml:"presetId,omitempty"`
	Confidence       int                  `json:"confidence" yaml:"confidence"`
	Warnings         []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	ColumnMappings   []ColumnMappingEntry `json:"columnMappings" yaml:"columnMappings"`
	NewRowSamples    []RowPreview         `json:"newRowSamples" yaml:"newRowSamples"`
	ErrorSamples     []ErrorPreview       `json:"errorSamples" yaml:"errorSamples"`
	DuplicateSamples []DuplicatePreview   `json:"duplicateSamples" yaml:"duplicateSamples"`
}

// Sample limits
const (
	maxNewRowSamples    = 10
	maxErrorSamples     = 20
	maxDuplicateSamples = 10
)

// BuildPreview summarizes a parsed import. txns should already carry duplicate
// marks from MarkDuplicates; dup is only consulted for whether the duplicate
// check ran.
func BuildPreview(parsed ParsedCSV, auto AutoDetectResult, txns []ParsedTransaction, dup DuplicateCheckResult) PreviewResponse {
	resp := PreviewResponse{
		Summary: PreviewSummary{
			TotalRows:      len(txns),
			Truncated:      parsed.Truncated,
			DuplicateCheck: !dup.Degraded,
		},
		PresetID:         auto.PresetID,
		Confidence:       auto.Confidence,
		Warnings:         auto.Warnings,
		ColumnMappings:   auto.ColumnMappings,
		NewRowSamples:    []RowPreview{},
		ErrorSamples:     []ErrorPreview{},
		DuplicateSamples: []DuplicatePreview{},
	}

	for _, t := range txns {
		// 1-indexed, after header
		lineNum := t.RowIndex + 2

		if !t.IsValid {
			resp.Summary.ErrorRows++
			if len(resp.ErrorSamples) < maxErrorSamples {
				msgs := make([]string, len(t.Errors))
				for i, e := range t.Errors {
					msgs[i] = e.Error()
				}
				resp.ErrorSamples = append(resp.ErrorSamples, ErrorPreview{
					LineNumber: lineNum,
					RawRow:     t.RawRow,
					Errors:     msgs,
				})
			}
			continue
		}

		resp.Summary.ValidRows++

		if t.IsDuplicate && t.DuplicateMatch != nil {
			resp.Summary.DuplicateRows++
			if len(resp.DuplicateSamples) < maxDuplicateSamples {
				resp.DuplicateSamples = append(resp.DuplicateSamples, DuplicatePreview{
					LineNumber: lineNum,
					Incoming:   rowPreview(lineNum, t),
					Match:      *t.DuplicateMatch,
				})
			}
			continue
		}

		resp.Summary.NewRows++
		if len(resp.NewRowSamples) < maxNewRowSamples {
			resp.NewRowSamples = append(resp.NewRowSamples, rowPreview(lineNum, t))
		}
	}

	return resp
}

func rowPreview(lineNum int, t ParsedTransaction) RowPreview {
	return RowPreview{
		LineNumber:  lineNum,
		Date:        FormatDate(t.Date),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
	}
}
