package banks

import "github.com/JonMunkholm/bankimport/internal/core"

func init() {
	registerMonzo()
	registerStarling()
	registerRevolut()
}

// Transaction ID,Date,Time,Type,Name,Category,Amount,Currency,Notes and #tags,Description
func registerMonzo() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "monzo",
		Name:               "Monzo",
		Priority:           90,
		DateColumn:         "Date",
		DescriptionColumn:  "Name",
		AmountColumn:       "Amount",
		ReferenceColumn:    "Transaction ID",
		MemoColumn:         "Notes and #tags",
		IdentifyingColumns: []string{"Transaction ID", "Notes and #tags"},
		DateFormat:         core.DateFormatDMY,
		AmountFormat:       core.AmountSigned,
	})
}

// Date,Counter Party,Reference,Type,Amount (GBP),Balance (GBP)
func registerStarling() {
	core.RegisterPreset(core.BankPreset{
		ID:                "starling",
		Name:              "Starling Bank",
		Priority:          100,
		DateColumn:        "Date",
		DescriptionColumn: "Counter Party",
		AmountColumn:      "Amount (GBP)",
		ReferenceColumn:   "Reference",
		DateFormat:        core.DateFormatDMY,
		AmountFormat:      core.AmountSigned,
	})
}

// Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance
func registerRevolut() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "revolut",
		Name:               "Revolut",
		Priority:           110,
		DateColumn:         "Started Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		IdentifyingColumns: []string{"Product", "State"},
		DateFormat:         core.DateFormatYMD,
		AmountFormat:       core.AmountSigned,
	})
}
