// Package core provides the business logic of the library reporting dashboard.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Dataset Errors (DATA001-DATA099)
//
// Errors related to loading the dashboard spreadsheet:
//
//	DATA001 - Dataset missing: The dataset file could not be found
//	          Action: Check DATASET_PATH and restart the server
//	          Patterns: "no such file"
//
//	DATA002 - Missing column: A required column is missing from the dataset
//	          Action: Compare the spreadsheet header with the expected columns
//	          Patterns: "missing required column"
//
//	DATA003 - Invalid number: A count cell is not a number
//	          Action: Remove text from the count columns of the spreadsheet
//	          Patterns: "invalid number"
//
//	DATA004 - Malformed dataset: The dataset could not be read
//	          Action: Check that the spreadsheet has a header row and data
//	          Patterns: "malformed dataset"
//
//	DATA005 - Not a workbook: The dataset file is not a valid xlsx workbook
//	          Action: Save the dataset as an Excel 2007+ (.xlsx) file
//	          Patterns: "not a valid zip file", "unsupported workbook"
//
// # Selection Errors (SEL001-SEL099)
//
// Errors related to the filter controls:
//
//	SEL001 - Unknown block: The selected block does not exist
//	         Action: Pick one of the blocks offered in the sidebar
//	         Patterns: "unknown block"
//
//	SEL002 - Unknown mode: The selected report mode does not exist
//	         Action: Pick one of the report modes offered in the sidebar
//	         Patterns: "unknown report mode"
//
// # Chart and Export Errors (CHART001-CHART099, EXP001-EXP099)
//
//	CHART001 - Unknown chart: Only charts 1 and 2 exist
//	           Action: Reload the dashboard
//	           Patterns: "unknown chart"
//
//	CHART002 - Render failed: The chart image could not be drawn
//	           Action: Please try again or use the interactive chart
//	           Patterns: "render chart"
//
//	CHART003 - Renderer busy: Too many chart images are being drawn
//	           Action: Please wait a moment and reload the image
//	           Patterns: "too many concurrent renders"
//
//	EXP001 - Export failed: The Excel file could not be produced
//	         Action: Please try again
//	         Patterns: "export:"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout: Request timed out
//	         Action: Narrow the selection or try again later
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones. A wrapped dataset error such as
// "malformed dataset: missing required column" therefore maps to DATA002,
// not DATA004.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
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
	// Dataset Errors (DATA001-DATA005)
	// =========================================================================
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The dataset file could not be found",
			Action:  "Check DATASET_PATH and restart the server",
			Code:    "DATA001",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the dataset",
			Action:  "Compare the spreadsheet header with the expected columns",
			Code:    "DATA002",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "A count cell is not a number",
			Action:  "Remove text from the count columns of the spreadsheet",
			Code:    "DATA003",
		},
	},
	{
		pattern: "malformed dataset",
		msg: UserMessage{
			Message: "The dataset could not be read",
			Action:  "Check that the spreadsheet has a header row and data",
			Code:    "DATA004",
		},
	},
	{
		pattern: "not a valid zip file",
		msg: UserMessage{
			Message: "The dataset file is not a valid xlsx workbook",
			Action:  "Save the dataset as an Excel 2007+ (.xlsx) file",
			Code:    "DATA005",
		},
	},
	{
		pattern: "unsupported workbook",
		msg: UserMessage{
			Message: "The dataset file is not a valid xlsx workbook",
			Action:  "Save the dataset as an Excel 2007+ (.xlsx) file",
			Code:    "DATA005",
		},
	},

	// =========================================================================
	// Selection Errors (SEL001-SEL002)
	// =========================================================================
	{
		pattern: "unknown block",
		msg: UserMessage{
			Message: "The selected block does not exist",
			Action:  "Pick one of the blocks offered in the sidebar",
			Code:    "SEL001",
		},
	},
	{
		pattern: "unknown report mode",
		msg: UserMessage{
			Message: "The selected report mode does not exist",
			Action:  "Pick one of the report modes offered in the sidebar",
			Code:    "SEL002",
		},
	},

	// =========================================================================
	// Chart and Export Errors (CHART001-CHART003, EXP001)
	// =========================================================================
	{
		pattern: "unknown chart",
		msg: UserMessage{
			Message: "Only charts 1 and 2 exist",
			Action:  "Reload the dashboard",
			Code:    "CHART001",
		},
	},
	{
		pattern: "render chart",
		msg: UserMessage{
			Message: "The chart image could not be drawn",
			Action:  "Please try again or use the interactive chart",
			Code:    "CHART002",
		},
	},
	{
		pattern: "too many concurrent renders",
		msg: UserMessage{
			Message: "Too many chart images are being drawn",
			Action:  "Please wait a moment and reload the image",
			Code:    "CHART003",
		},
	},
	{
		pattern: "export:",
		msg: UserMessage{
			Message: "The Excel file could not be produced",
			Action:  "Please try again",
			Code:    "EXP001",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow the selection or try again later",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	err := fmt.Errorf("%w: %q", ErrUnknownBlock, "By Planet")
//	msg := MapError(err)
//	// msg.Code == "SEL001"
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

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
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

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
