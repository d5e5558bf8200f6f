// Package core provides the business logic for bank statement CSV imports.
//
// This package contains all domain logic independent of any UI, transport or
// storage layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Pipeline
//
// An import flows through the package in one direction:
//
//  1. [DecodeContent] and [CheckUpload] turn raw bytes into text and reject
//     files that are obviously not statements
//  2. [ParseCSV] detects the delimiter and tokenizes headers and rows
//  3. [AutoDetectMapping] recognizes a known bank via [DetectBankPreset], or
//     falls back to keyword matching with [FuzzyMatchColumn]
//  4. [ValidateMapping] gates [ParseTransactions], which normalizes every row
//     with [ParseDate], [ParseAmount] and [SanitizeDescription]
//  5. [DuplicateDetector.Check] scores candidates against existing records and
//     [MarkDuplicates] attaches the matches
//  6. [BuildPreview] summarizes the result for the caller
//
// # Bank Presets
//
// Presets are registered at init time using [RegisterPreset]; the banks
// subpackage registers the built-in ones:
//
//	core.RegisterPreset(core.BankPreset{
//	    ID:                "chase_credit",
//	    Name:              "Chase Credit Card",
//	    DateColumn:        "Transaction Date",
//	    DescriptionColumn: "Description",
//	    AmountColumn:      "Amount",
//	    DateFormat:        core.DateFormatMDY,
//	    AmountFormat:      core.AmountSigned,
//	})
//
// Detection walks presets in (Priority, ID) order and the first preset whose
// columns are all present wins.
//
// # Duplicate Detection
//
// Existing records come from an [ExistingTransactionSource]. The detector
// fetches them once per batch and scores each pair on amount, date proximity
// and description similarity. When the source fails, the check is skipped and
// the result is marked Degraded rather than failing the import.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DB001-DB004: Store errors (connections, missing table)
//   - VAL001-VAL007: Validation errors (dates, amounts, mappings, formats)
//   - FILE001-FILE004: File errors (size, lines, delimiter)
//   - IMP001-IMP002: Cancelled or timed out requests
package core
