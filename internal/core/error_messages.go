package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Error codes are grouped by category:
//
// # Database Errors (DB001-DB099)
//
// Errors from the store that supplies existing transactions:
//
//	DB001 - Connection refused: Unable to connect to database
//	DB002 - Connection reset: Database connection was interrupted
//	DB003 - Timeout: Operation timed out
//	DB004 - Missing table: The transactions table does not exist
//	        Patterns: "no such table", "does not exist"
//
// # Validation Errors (VAL001-VAL099)
//
// Row and mapping problems. Row errors come from ValidationError.Error():
//
//	VAL001 - Invalid date: "invalid date"
//	VAL002 - Invalid amount: "invalid amount"
//	VAL003 - Missing amount: "amount is missing"
//	VAL004 - Empty description: "description is empty"
//	VAL005 - Invalid mapping: "invalid column mapping"
//	VAL006 - Unknown preset: "unknown bank preset"
//	VAL007 - Unknown date format: "unknown date format"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: "file too large"
//	FILE002 - Empty file: "empty file"
//	FILE003 - Not enough lines: "not enough lines"
//	FILE004 - No delimiter: "no delimiter found"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Request cancelled: "context canceled"
//	IMP002 - Request timeout: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message" yaml:"message"` // What happened (user-friendly)
	Action  string `json:"action" yaml:"action"`   // What to do about it
	Code    string `json:"code" yaml:"code"`       // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Database Errors (DB001-DB004)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "no such table",
		msg: UserMessage{
			Message: "The transactions table does not exist",
			Action:  "Run the database migration first",
			Code:    "DB004",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "The transactions table does not exist",
			Action:  "Run the database migration first",
			Code:    "DB004",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL007)
	// =========================================================================
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Choose the date format that matches your bank (MM/DD/YYYY, DD/MM/YYYY or YYYY-MM-DD)",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid amount",
		msg: UserMessage{
			Message: "Invalid amount detected",
			Action:  "Check that the amount column contains numbers",
			Code:    "VAL002",
		},
	},
	{
		pattern: "amount is missing",
		msg: UserMessage{
			Message: "Amount is empty",
			Action:  "Ensure every row has an amount, or a debit or credit value",
			Code:    "VAL003",
		},
	},
	{
		pattern: "description is empty",
		msg: UserMessage{
			Message: "Description is empty",
			Action:  "Ensure the description column is mapped correctly",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid column mapping",
		msg: UserMessage{
			Message: "Column mapping is incomplete",
			Action:  "Map a date, a description and an amount (or debit and credit) column",
			Code:    "VAL005",
		},
	},
	{
		pattern: "unknown bank preset",
		msg: UserMessage{
			Message: "Bank format is not recognized",
			Action:  "Run the presets command to list supported banks",
			Code:    "VAL006",
		},
	},
	{
		pattern: "unknown date format",
		msg: UserMessage{
			Message: "Date format is not supported",
			Action:  "Use MM/DD/YYYY, DD/MM/YYYY or YYYY-MM-DD",
			Code:    "VAL007",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Export a shorter date range from your bank",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "not enough lines",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Export a statement that contains at least one transaction",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no delimiter found",
		msg: UserMessage{
			Message: "The file is not a delimited statement export",
			Action:  "Export the statement as CSV from your bank",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Import Errors (IMP001-IMP002)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "IMP002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback message with code ERR000 is returned.
//
// Example:
//
//	msg := MapError(ErrNoDelimiter)
//	// msg.Code == "FILE004"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
