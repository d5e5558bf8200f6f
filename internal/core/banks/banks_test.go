package banks_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/bankimport/internal/core"
	_ "github.com/JonMunkholm/bankimport/internal/core/banks"
)

// exportHeaders are the full header rows of each bank's CSV export.
var exportHeaders = map[string]string{
	"chase_checking":  "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #",
	"chase_credit":    "Transaction Date,Post Date,Description,Category,Type,Amount,Memo",
	"capital_one":     "Transaction Date,Posted Date,Card No.,Description,Category,Debit,Credit",
	"citi":            "Status,Date,Description,Debit,Credit",
	"discover":        "Trans. Date,Post Date,Description,Amount,Category",
	"amex":            "Date,Description,Card Member,Account #,Amount",
	"us_bank":         "Date,Transaction,Name,Memo,Amount",
	"bank_of_america": "Date,Description,Amount,Running Bal.",
	"monzo":           "Transaction ID,Date,Time,Type,Name,Category,Amount,Currency,Notes and #tags,Description",
	"starling":        "Date,Counter Party,Reference,Type,Amount (GBP),Balance (GBP)",
	"revolut":         "Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance",
}

func TestPresetsRegisteredInPriorityOrder(t *testing.T) {
	presets := core.Presets()

	ids := make([]string, len(presets))
	for i, p := range presets {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{
		"chase_checking",
		"chase_credit",
		"capital_one",
		"citi",
		"discover",
		"amex",
		"us_bank",
		"bank_of_america",
		"monzo",
		"starling",
		"revolut",
	}, ids)

	for i := 1; i < len(presets); i++ {
		assert.Less(t, presets[i-1].Priority, presets[i].Priority)
	}
}

func TestExportHeadersDetectOwnPreset(t *testing.T) {
	require.Len(t, exportHeaders, len(core.Presets()))

	for id, header := range exportHeaders {
		t.Run(id, func(t *testing.T) {
			headers := core.ParseLine(header, ',')

			got, ok := core.DetectBankPreset(headers)
			require.True(t, ok)
			assert.Equal(t, id, got)

			result := core.AutoDetectMapping(headers, nil)
			assert.Equal(t, id, result.PresetID)
			assert.Equal(t, 100, result.Confidence)
			assert.Empty(t, result.Warnings)
			assert.True(t, core.ValidateMapping(result.Mapping).Valid)
		})
	}
}

func TestExportHeadersCaseInsensitive(t *testing.T) {
	headers := core.ParseLine(strings.ToUpper(exportHeaders["discover"]), ',')

	got, ok := core.DetectBankPreset(headers)
	require.True(t, ok)
	assert.Equal(t, "discover", got)
}

func TestGenericHeadersMatchNoPreset(t *testing.T) {
	for _, header := range []string{
		"Date,Description,Amount",
		"Date,Description,Debit,Credit",
		"Date,Name,Amount,Memo",
	} {
		_, ok := core.DetectBankPreset(core.ParseLine(header, ','))
		assert.False(t, ok, header)
	}
}

func TestMonzoExportParsesDayFirstDates(t *testing.T) {
	content := exportHeaders["monzo"] + "\n" +
		"tx_0001,05/02/2024,08:14:02,Card payment,Pret A Manger,Eating out,-4.50,GBP,breakfast,PRET A MANGER LONDON\n"

	parsed := core.ParseCSV(content, core.DefaultParseOptions())
	auto := core.AutoDetectMapping(parsed.Headers, parsed.Rows)
	require.Equal(t, "monzo", auto.PresetID)

	txns, err := core.ParseTransactions(parsed.Rows, auto.Mapping)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.True(t, txn.IsValid, "%v", txn.Errors)
	assert.Equal(t, time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.True(t, decimal.RequireFromString("-4.50").Equal(txn.Amount))
	assert.Equal(t, "Pret A Manger", txn.Description)
	assert.Equal(t, "tx_0001", txn.Reference)
	assert.Equal(t, "breakfast", txn.Memo)
}

func TestCapitalOneExportUsesSplitAmounts(t *testing.T) {
	content := exportHeaders["capital_one"] + "\n" +
		"2024-01-15,2024-01-16,1234,COFFEE HOUSE,Dining,4.50,\n" +
		"2024-01-17,2024-01-17,1234,PAYMENT RECEIVED,Payment,,250.00\n"

	parsed := core.ParseCSV(content, core.DefaultParseOptions())
	auto := core.AutoDetectMapping(parsed.Headers, parsed.Rows)
	require.Equal(t, "capital_one", auto.PresetID)
	assert.Equal(t, core.AmountSplit, auto.Mapping.AmountFormat)

	txns, err := core.ParseTransactions(parsed.Rows, auto.Mapping)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.True(t, decimal.RequireFromString("-4.50").Equal(txns[0].Amount))
	assert.True(t, decimal.RequireFromString("250").Equal(txns[1].Amount))
}
