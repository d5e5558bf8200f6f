package banks

import "github.com/JonMunkholm/bankimport/internal/core"

func init() {
	registerChase()
	registerCapitalOne()
	registerCiti()
	registerDiscover()
	registerAmex()
	registerUSBank()
	registerBankOfAmerica()
}

func registerChase() {
	// Checking: Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
	core.RegisterPreset(core.BankPreset{
		ID:                 "chase_checking",
		Name:               "Chase Checking",
		Priority:           10,
		DateColumn:         "Posting Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		ReferenceColumn:    "Check or Slip #",
		IdentifyingColumns: []string{"Details", "Check or Slip #"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})

	// Credit card: Transaction Date,Post Date,Description,Category,Type,Amount,Memo
	core.RegisterPreset(core.BankPreset{
		ID:                 "chase_credit",
		Name:               "Chase Credit Card",
		Priority:           20,
		DateColumn:         "Transaction Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		MemoColumn:         "Memo",
		IdentifyingColumns: []string{"Post Date", "Category", "Type"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})
}

// Transaction Date,Posted Date,Card No.,Description,Category,Debit,Credit
func registerCapitalOne() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "capital_one",
		Name:               "Capital One",
		Priority:           30,
		DateColumn:         "Transaction Date",
		DescriptionColumn:  "Description",
		DebitColumn:        "Debit",
		CreditColumn:       "Credit",
		IdentifyingColumns: []string{"Card No."},
		DateFormat:         core.DateFormatYMD,
		AmountFormat:       core.AmountSplit,
	})
}

// Status,Date,Description,Debit,Credit
func registerCiti() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "citi",
		Name:               "Citi",
		Priority:           40,
		DateColumn:         "Date",
		DescriptionColumn:  "Description",
		DebitColumn:        "Debit",
		CreditColumn:       "Credit",
		IdentifyingColumns: []string{"Status"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSplit,
	})
}

// Trans. Date,Post Date,Description,Amount,Category
func registerDiscover() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "discover",
		Name:               "Discover",
		Priority:           50,
		DateColumn:         "Trans. Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		IdentifyingColumns: []string{"Post Date"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})
}

// Date,Description,Card Member,Account #,Amount
func registerAmex() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "amex",
		Name:               "American Express",
		Priority:           60,
		DateColumn:         "Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		IdentifyingColumns: []string{"Card Member"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})
}

// Date,Transaction,Name,Memo,Amount
func registerUSBank() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "us_bank",
		Name:               "U.S. Bank",
		Priority:           70,
		DateColumn:         "Date",
		DescriptionColumn:  "Name",
		AmountColumn:       "Amount",
		MemoColumn:         "Memo",
		IdentifyingColumns: []string{"Transaction"},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})
}

// Date,Description,Amount,Running Bal.
func registerBankOfAmerica() {
	core.RegisterPreset(core.BankPreset{
		ID:                 "bank_of_america",
		Name:               "Bank of America",
		Priority:           80,
		DateColumn:         "Date",
		DescriptionColumn:  "Description",
		AmountColumn:       "Amount",
		IdentifyingColumns: []string{"Running Bal."},
		DateFormat:         core.DateFormatMDY,
		AmountFormat:       core.AmountSigned,
	})
}
