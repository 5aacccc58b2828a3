// Package core provides the business logic for issue-tracker CSV generation.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. The shells never show raw errors; they show the mapped message
// and action, and log the technical error next to the code.
//
// # Input Errors (INP001-INP099)
//
//	INP001 - Empty input: Nothing usable was pasted
//	         Action: Paste a header row and at least one data row
//	         Matches: ErrEmptyInput
//
//	INP002 - Placeholder text: The paste looks like a status message
//	         Action: Copy the cells from the spreadsheet again
//	         Matches: ErrPlaceholderRejected
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Missing columns: Required columns were not found in the header
//	         Action: Check the header names, the message lists what is missing
//	         Matches: ErrMissingColumns
//
// # Email Errors (EML001-EML099)
//
//	EML001 - No emails: Nothing that looks like an email address was pasted
//	         Action: Paste emails such as user@example.com
//	         Matches: ErrNoEmailsFound
//
// # Parameter Errors (PAR001-PAR099)
//
//	PAR001 - Missing parameters: Component, label, team count or pasted data absent
//	         Action: Fill in the highlighted field
//	         Matches: ErrMissingParameters
//
//	PAR002 - Too many rows: Teams, emails and rows multiply past the row limit
//	         Action: Use fewer teams or emails, or split the paste
//	         Matches: ErrTooManyRows
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Busy: A paste is still being parsed
//	SES002 - Nothing generated: Export requested before processing
//	SES003 - Part not found: The requested file part does not exist
//
// # Server Errors (SRV001-SRV099)
//
//	SRV001 - Busy: Every work slot is taken
//	         Matches: ErrBusy
//
// # Template Errors (TPL001-TPL099)
//
//	TPL001 - Unknown template: The template key is not registered
//
// # Transport Errors
//
// Errors that are not pipeline sentinels fall back to case-insensitive
// substring patterns (rate limiting, cancelled requests, oversized bodies),
// and finally to ERR000.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind maps a sentinel error to its user message.
type errorKind struct {
	target error
	msg    UserMessage
}

// errorPattern defines a substring to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorKinds is checked first with errors.Is; order matters only for
// errors that wrap more than one sentinel.
var errorKinds = []errorKind{
	{
		target: ErrEmptyInput,
		msg: UserMessage{
			Message: "No usable data was pasted",
			Action:  "Paste a header row and at least one data row from the spreadsheet",
			Code:    "INP001",
		},
	},
	{
		target: ErrPlaceholderRejected,
		msg: UserMessage{
			Message: "The pasted text looks like a status message, not spreadsheet data",
			Action:  "Copy the cells from the spreadsheet again and paste them",
			Code:    "INP002",
		},
	},
	{
		target: ErrMissingColumns,
		msg: UserMessage{
			Message: "Required columns were not found in the header row",
			Action:  "Check the header names against the expected columns",
			Code:    "COL001",
		},
	},
	{
		target: ErrNoEmailsFound,
		msg: UserMessage{
			Message: "No email addresses were found",
			Action:  "Paste emails such as user@example.com, one per row or column",
			Code:    "EML001",
		},
	},
	{
		target: ErrMissingParameters,
		msg: UserMessage{
			Message: "Some required fields are missing",
			Action:  "Fill in the component, label and team count, and paste the data first",
			Code:    "PAR001",
		},
	},
	{
		target: ErrTooManyRows,
		msg: UserMessage{
			Message: "This would generate more rows than the server allows",
			Action:  "Use fewer teams or emails, or split the paste into smaller batches",
			Code:    "PAR002",
		},
	},
	{
		target: ErrParseInProgress,
		msg: UserMessage{
			Message: "The previous paste is still being processed",
			Action:  "Wait a moment and paste again",
			Code:    "SES001",
		},
	},
	{
		target: ErrNothingGenerated,
		msg: UserMessage{
			Message: "There is no generated CSV yet",
			Action:  "Click Process before downloading or copying",
			Code:    "SES002",
		},
	},
	{
		target: ErrPartNotFound,
		msg: UserMessage{
			Message: "That file part does not exist",
			Action:  "Process the data again and download from the file list",
			Code:    "SES003",
		},
	},
	{
		target: ErrBusy,
		msg: UserMessage{
			Message: "The server is busy processing other pastes",
			Action:  "Please wait a moment before trying again",
			Code:    "SRV001",
		},
	},
	{
		target: ErrUnknownTemplate,
		msg: UserMessage{
			Message: "Unknown template",
			Action:  "Pick one of the listed templates",
			Code:    "TPL001",
		},
	},
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that come from outside the pipeline.
var errorPatterns = []errorPattern{
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The paste is too large",
			Action:  "Split the data and process it in parts",
			Code:    "INP003",
		},
	},
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
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Sentinels are matched with errors.Is, everything else by substring.
//
// Example:
//
//	msg := MapError(fmt.Errorf("paste: %w", ErrEmptyInput))
//	// msg.Code == "INP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
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
