package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	presets   []BankPreset
	presetIdx = make(map[string]int)
	presetsMu sync.RWMutex
)

// RegisterPreset adds a bank preset to the registry.
// Panics if a preset with the same ID is already registered or if the preset
// does not declare a complete column layout.
func RegisterPreset(p BankPreset) {
	presetsMu.Lock()
	defer presetsMu.Unlock()

	if _, exists := presetIdx[p.ID]; exists {
		panic(fmt.Sprintf("bank preset already registered: %s", p.ID))
	}
	if err := checkPreset(p); err != nil {
		panic(fmt.Sprintf("invalid bank preset %s: %v", p.ID, err))
	}

	p.IdentifyingColumns = append([]string(nil), p.IdentifyingColumns...)
	presets = append(presets, p)

	// Detection order is (Priority, ID) so it never depends on registration order.
	sort.SliceStable(presets, func(i, j int) bool {
		if presets[i].Priority != presets[j].Priority {
			return presets[i].Priority < presets[j].Priority
		}
		return presets[i].ID < presets[j].ID
	})
	for i, rp := range presets {
		presetIdx[rp.ID] = i
	}
}

func checkPreset(p BankPreset) error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	if p.DateColumn == "" || p.DescriptionColumn == "" {
		return fmt.Errorf("date and description columns are required")
	}
	switch p.AmountFormat {
	case AmountSigned:
		if p.AmountColumn == "" {
			return fmt.Errorf("signed preset needs an amount column")
		}
	case AmountSplit:
		if p.DebitColumn == "" || p.CreditColumn == "" {
			return fmt.Errorf("split preset needs debit and credit columns")
		}
	default:
		return fmt.Errorf("unknown amount format %q", p.AmountFormat)
	}
	return nil
}

// GetBankPreset returns a copy of the preset with the given ID.
func GetBankPreset(id string) (BankPreset, bool) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	i, ok := presetIdx[id]
	if !ok {
		return BankPreset{}, false
	}
	return clonePreset(presets[i]), true
}

// Presets returns copies of all registered presets in detection order.
func Presets() []BankPreset {
	presetsMu.RLock()
	defer presetsMu.RUnlock()

	result := make([]BankPreset, len(presets))
	for i, p := range presets {
		result[i] = clonePreset(p)
	}
	return result
}

// DetectBankPreset returns the ID of the first preset, in priority order, whose
// required columns all appear in headers. Matching is exact after case and
// whitespace normalization; fuzzy matching is left to FuzzyMatchColumn so that
// one bank's layout is never mistaken for another's.
func DetectBankPreset(headers []string) (string, bool) {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[normalizeHeader(h)] = true
	}

	presetsMu.RLock()
	defer presetsMu.RUnlock()

	for _, p := range presets {
		if matchesAll(set, requiredColumns(p)) {
			return p.ID, true
		}
	}
	return "", false
}

// requiredColumns lists the headers a file must contain to match p.
func requiredColumns(p BankPreset) []string {
	cols := []string{p.DateColumn, p.DescriptionColumn}
	if p.AmountFormat == AmountSplit {
		cols = append(cols, p.DebitColumn, p.CreditColumn)
	} else {
		cols = append(cols, p.AmountColumn)
	}
	return append(cols, p.IdentifyingColumns...)
}

func matchesAll(set map[string]bool, cols []string) bool {
	for _, c := range cols {
		if !set[normalizeHeader(c)] {
			return false
		}
	}
	return true
}

func clonePreset(p BankPreset) BankPreset {
	p.IdentifyingColumns = append([]string(nil), p.IdentifyingColumns...)
	return p
}

// ClearPresets removes all registered presets.
// Primarily useful for testing.
func ClearPresets() {
	presetsMu.Lock()
	defer presetsMu.Unlock()
	presets = nil
	presetIdx = make(map[string]int)
}
