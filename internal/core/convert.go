package core

// convert.go normalizes raw statement cells into typed values.
//
// These functions handle the messy reality of bank exports:
//   - Currency symbols, codes and thousands separators in amounts
//   - Negative amounts as "-10", "10-", "(10)" or "10 DR"
//   - European decimal commas ("1.234,56")
//   - Day/month ordering that depends on the bank's locale
//   - Excel formula prefixes (="value") and stray control characters
//
// They are pure and never panic; invalid input is reported through the
// boolean return instead of an error so callers can attach a ValidationError.

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the maximum length, in characters, of a sanitized description.
const MaxDescriptionLength = 500

// TwoDigitYearPivot splits 2-digit years between centuries:
// values >= pivot are 19xx, values below it are 20xx.
var TwoDigitYearPivot = 50

// isoDateRegex matches YYYY-MM-DD optionally followed by a time component.
var isoDateRegex = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ].*)?$`)

// plainNumberRegex validates the residue of an amount after cleanup.
var plainNumberRegex = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts a raw amount cell to a signed decimal.
// Returns false if the cell is empty or is not numeric after cleanup.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.ToUpper(strings.TrimSpace(CleanCell(raw)))
	if s == "" {
		return decimal.Zero, false
	}

	negative := false

	// Trailing debit/credit markers: "45.00 DR", "45.00CR"
	if strings.HasSuffix(s, "DR") {
		negative = true
		s = strings.TrimSuffix(s, "DR")
	} else if strings.HasSuffix(s, "CR") {
		s = strings.TrimSuffix(s, "CR")
	}

	// Accounting format "(45.00)"
	if strings.ContainsAny(s, "()") {
		negative = true
	}

	// Keep only digits, separators and signs. This drops currency symbols,
	// ISO codes, spaces and parentheses.
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' || r == '+' {
			return r
		}
		return -1
	}, s)

	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}

	s = normalizeSeparators(s)
	if !plainNumberRegex.MatchString(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	d = d.Abs()
	if negative {
		d = d.Neg()
	}
	return d, true
}

// normalizeSeparators rewrites thousands/decimal separators to a plain
// "1234.56" form. A comma is treated as the decimal separator when it comes
// after the last dot ("1.234,56") or when it is the only separator and is
// followed by one or two digits ("12,5", "12,50").
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	fraction := len(s) - lastComma - 1

	switch {
	case lastComma < 0:
		return s
	case lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case lastDot < 0 && strings.Count(s, ",") == 1 && (fraction == 1 || fraction == 2):
		return strings.Replace(s, ",", ".", 1)
	default:
		return strings.ReplaceAll(s, ",", "")
	}
}

// ParseDate converts a raw date cell to a calendar date (UTC midnight).
// ISO dates are accepted regardless of format; anything else is split on
// "/", "-" or "." and read in the order declared by format. Returns false for
// values that are not a real calendar date (for example 31/02/2024).
func ParseDate(raw string, format DateFormat) (time.Time, bool) {
	s := strings.TrimSpace(CleanCell(raw))
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}

	// Drop a trailing time component: "01/15/2024 10:32"
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	// A 4-digit leading part can only be a year: "2024/01/15"
	if len(parts[0]) == 4 {
		format = DateFormatYMD
	}

	switch format {
	case DateFormatDMY:
		return makeDate(parts[2], parts[1], parts[0])
	case DateFormatYMD:
		return makeDate(parts[0], parts[1], parts[2])
	default:
		return makeDate(parts[2], parts[0], parts[1])
	}
}

// makeDate builds a date from numeric strings and rejects values that do not
// survive a calendar round trip.
func makeDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	switch len(yearStr) {
	case 2:
		if year >= TwoDigitYearPivot {
			year += 1900
		} else {
			year += 2000
		}
	case 4:
	default:
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ErrUnknownDateFormat is returned by ParseDateFormat for unsupported names.
var ErrUnknownDateFormat = errors.New("unknown date format")

// ParseDateFormat accepts one of the DateFormat names, for example "DD/MM/YYYY".
func ParseDateFormat(s string) (DateFormat, error) {
	switch df := DateFormat(strings.ToUpper(strings.TrimSpace(s))); df {
	case DateFormatMDY, DateFormatDMY, DateFormatYMD:
		return df, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDateFormat, s)
	}
}

// FormatDate renders a date in canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// SanitizeDescription removes control characters, collapses whitespace runs,
// trims, and truncates to MaxDescriptionLength characters.
func SanitizeDescription(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, CleanCell(raw))

	s = strings.Join(strings.Fields(s), " ")

	if runes := []rune(s); len(runes) > MaxDescriptionLength {
		s = strings.TrimSpace(string(runes[:MaxDescriptionLength]))
	}
	return s
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// normalizeHeader lowercases a header and collapses internal whitespace so
// "Posting  Date " and "posting date" compare equal.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(CleanCell(h)), " "))
}
