package core

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/JonMunkholm/bankimport/internal/logging"
)

// Scoring weights for a candidate/existing pair.
const (
	scoreAmount      = 40
	scoreDate        = 30
	scoreDescription = 30

	sameDayFactor  = 1.0
	nearDateFactor = 0.7

	containmentSimilarity = 0.9
)

var levenshteinOpts = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// DuplicateOptions tunes duplicate detection.
type DuplicateOptions struct {
	WindowDays      int             // Max day distance between matching dates
	Threshold       int             // Minimum confidence to report a match
	SimilarityFloor float64         // Description similarity below this scores nothing
	AmountTolerance decimal.Decimal // Max absolute amount difference
}

// DefaultDuplicateOptions returns the standard detection settings.
func DefaultDuplicateOptions() DuplicateOptions {
	return DuplicateOptions{
		WindowDays:      1,
		Threshold:       60,
		SimilarityFloor: 0.8,
		AmountTolerance: decimal.NewFromFloat(0.01),
	}
}

// DuplicateDetector scores candidate transactions against existing records
// fetched from a single source.
type DuplicateDetector struct {
	source ExistingTransactionSource
	opts   DuplicateOptions
}

// NewDuplicateDetector creates a detector reading existing records from source.
func NewDuplicateDetector(source ExistingTransactionSource, opts DuplicateOptions) *DuplicateDetector {
	if opts.WindowDays < 0 {
		opts.WindowDays = 0
	}
	return &DuplicateDetector{source: source, opts: opts}
}

// CheckForDuplicates runs a detector with DefaultDuplicateOptions.
func CheckForDuplicates(ctx context.Context, source ExistingTransactionSource, userID, accountID string, txns []ParsedTransaction) DuplicateCheckResult {
	return NewDuplicateDetector(source, DefaultDuplicateOptions()).Check(ctx, userID, accountID, txns)
}

// Check compares every valid transaction in txns against existing records for
// the account. Existing records are fetched once, covering the date range of
// the batch widened by the window on both sides.
//
// A failed fetch is not an error: it is logged and the result reports no
// duplicates with Degraded set, so the import can proceed. Invalid
// transactions are never checked.
func (d *DuplicateDetector) Check(ctx context.Context, userID, accountID string, txns []ParsedTransaction) DuplicateCheckResult {
	result := DuplicateCheckResult{Matches: make(map[string]DuplicateMatch)}

	var candidates []ParsedTransaction
	var minDate, maxDate time.Time
	for _, t := range txns {
		if !t.IsValid {
			continue
		}
		if len(candidates) == 0 || t.Date.Before(minDate) {
			minDate = t.Date
		}
		if len(candidates) == 0 || t.Date.After(maxDate) {
			maxDate = t.Date
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 || d.source == nil {
		return result
	}

	window := time.Duration(d.opts.WindowDays) * 24 * time.Hour
	from := minDate.Add(-window)
	to := maxDate.Add(window)

	logger := logging.WithFields(ctx, "account_id", accountID, "candidates", len(candidates))

	existing, err := d.source.FindTransactions(ctx, userID, accountID, from, to)
	if err != nil {
		logger.Warn("duplicate check skipped, existing transactions unavailable",
			"error", err,
			"from", FormatDate(from),
			"to", FormatDate(to),
		)
		result.Degraded = true
		return result
	}
	logger.Debug("fetched existing transactions", "count", len(existing))

	// Ascending ID order makes equal-confidence ties resolve to the lowest ID.
	existing = append([]ExistingTransaction(nil), existing...)
	sort.SliceStable(existing, func(i, j int) bool {
		return idLess(existing[i].ID, existing[j].ID)
	})

	for _, c := range candidates {
		result.Checked++
		if m, ok := d.bestMatch(c, existing); ok {
			result.Matches[c.TempID] = m
		}
	}
	result.DuplicateCount = len(result.Matches)
	return result
}

// idLess orders ids numerically when both are integers ("9" < "10") and
// lexicographically otherwise.
func idLess(a, b string) bool {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

// bestMatch returns the highest scoring existing record for c at or above the
// threshold. existing must be sorted by ID.
func (d *DuplicateDetector) bestMatch(c ParsedTransaction, existing []ExistingTransaction) (DuplicateMatch, bool) {
	var best DuplicateMatch
	found := false

	for _, e := range existing {
		conf, reasons, ok := d.score(c, e)
		if !ok || conf < d.opts.Threshold {
			continue
		}
		if found && conf <= best.Confidence {
			continue
		}
		best = DuplicateMatch{
			ExistingID:  e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date,
			Confidence:  conf,
			Reasons:     reasons,
		}
		found = true
	}
	return best, found
}

// score rates how likely c duplicates e. Pairs whose amounts differ or whose
// dates fall outside the window are rejected before any string comparison.
func (d *DuplicateDetector) score(c ParsedTransaction, e ExistingTransaction) (int, []string, bool) {
	if c.Amount.Sub(e.Amount).Abs().GreaterThan(d.opts.AmountTolerance) {
		return 0, nil, false
	}
	days := dayDistance(c.Date, e.Date)
	if days > d.opts.WindowDays {
		return 0, nil, false
	}

	total := float64(scoreAmount)
	reasons := []string{"Same amount"}

	if days == 0 {
		total += scoreDate * sameDayFactor
		reasons = append(reasons, "Same date")
	} else {
		total += scoreDate * nearDateFactor
		reasons = append(reasons, fmt.Sprintf("Date within %d day(s)", days))
	}

	sim := DescriptionSimilarity(c.Description, e.Description)
	if sim >= d.opts.SimilarityFloor {
		total += scoreDescription * sim
		if sim == 1 {
			reasons = append(reasons, "Same description")
		} else {
			reasons = append(reasons, fmt.Sprintf("Similar description (%.0f%%)", sim*100))
		}
	}

	return int(total + 0.5), reasons, true
}

// dayDistance is the absolute number of calendar days between a and b.
func dayDistance(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	diff := da.Sub(db)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// DescriptionSimilarity returns a case-insensitive similarity in [0, 1]:
// 1 for equal strings, 0.9 when one contains the other, otherwise one minus
// the edit distance divided by the longer length.
func DescriptionSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return containmentSimilarity
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	dist := levenshtein.DistanceForStrings(ra, rb, levenshteinOpts)
	return 1 - float64(dist)/float64(maxLen)
}

// MarkDuplicates returns a copy of txns with duplicate matches from result
// attached. Transactions without a match are copied unchanged; txns itself is
// never modified.
func MarkDuplicates(txns []ParsedTransaction, result DuplicateCheckResult) []ParsedTransaction {
	out := make([]ParsedTransaction, len(txns))
	copy(out, txns)

	for i := range out {
		m, ok := result.Matches[out[i].TempID]
		if !ok {
			continue
		}
		m.Reasons = append([]string(nil), m.Reasons...)
		out[i].IsDuplicate = true
		out[i].DuplicateMatch = &m
	}
	return out
}
