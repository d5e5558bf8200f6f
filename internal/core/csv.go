package core

// csv.go tokenizes delimited bank exports into a header and data rows.
//
// Parsing is line oriented and tolerant: ragged rows are kept, short rows are
// dropped, and nothing in the content can make ParseCSV fail.
//
// Known limitation: quoted fields spanning multiple lines are not supported.
// Each physical line is one record; a newline inside quotes splits the record
// and the fragments are usually dropped by the short-row filter.

import (
	"strings"
)

// DefaultMaxRows is the default cap on data rows read by ParseCSV.
const DefaultMaxRows = 1000

// delimiterSampleLines is how many leading lines DetectDelimiter inspects.
const delimiterSampleLines = 5

// delimiterCandidates are the delimiters DetectDelimiter considers.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// ParseOptions controls ParseCSV.
type ParseOptions struct {
	MaxRows       int  // Maximum data rows to keep; <= 0 uses DefaultMaxRows
	Delimiter     rune // 0 means detect automatically
	HasHeaders    bool // First line is a header row
	SkipEmptyRows bool // Skip blank lines
}

// DefaultParseOptions returns the options used for a typical statement upload.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		MaxRows:       DefaultMaxRows,
		HasHeaders:    true,
		SkipEmptyRows: true,
	}
}

// ParseCSV tokenizes content into headers and rows. It never fails: rows with
// fewer than half the header's columns are dropped silently, and reading stops
// at opts.MaxRows with Truncated set.
func ParseCSV(content string, opts ParseOptions) ParsedCSV {
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}

	content = strings.TrimPrefix(content, "\ufeff")

	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(content)
	}

	result := ParsedCSV{
		Headers:   []string{},
		Rows:      [][]string{},
		Delimiter: delim,
	}

	lines := splitLines(content)
	start := 0

	if opts.HasHeaders {
		// The header is the first non-blank line.
		for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
			start++
		}
		if start < len(lines) {
			result.Headers = ParseLine(lines[start], delim)
			start++
		}
	}

	minCols := (len(result.Headers) + 1) / 2

	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			if opts.SkipEmptyRows {
				continue
			}
		}

		row := ParseLine(line, delim)
		if len(row) < minCols {
			continue
		}

		if len(result.Rows) >= opts.MaxRows {
			result.Truncated = true
			break
		}
		result.Rows = append(result.Rows, row)
	}

	result.RowCount = len(result.Rows)
	return result
}

// DetectDelimiter guesses the field delimiter by counting candidate characters
// outside quoted spans in the first few lines. Comma is returned for empty
// input, when no candidate occurs, or when two candidates share the top count.
func DetectDelimiter(content string) rune {
	lines := splitLines(strings.TrimPrefix(content, "\ufeff"))
	if len(lines) > delimiterSampleLines {
		lines = lines[:delimiterSampleLines]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	for _, line := range lines {
		inQuotes := false
		for _, r := range line {
			if r == '"' {
				inQuotes = !inQuotes
				continue
			}
			if !inQuotes {
				counts[r]++
			}
		}
	}

	best := ','
	bestCount := 0
	tied := false
	for _, d := range delimiterCandidates {
		switch {
		case counts[d] > bestCount:
			best, bestCount, tied = d, counts[d], false
		case counts[d] == bestCount && bestCount > 0:
			tied = true
		}
	}
	if tied {
		return ','
	}
	return best
}

// ParseLine splits a single line into trimmed fields. A doubled quote inside a
// quoted field is a literal quote.
func ParseLine(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// splitLines splits on LF and strips a trailing CR from each line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	// A trailing newline produces one empty element; drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
