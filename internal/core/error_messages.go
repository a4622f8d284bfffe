// Package core provides the in-memory table model for the CSV editor.
//
// # Error Codes Reference
//
// This file maps technical errors to short user-facing messages with a code
// and a suggested action. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File not found: The CSV file could not be found
//	          Action: Check CSV_FILE or pass the path as the first argument
//	          Patterns: "file not found"
//
//	FILE002 - Missing directory: The destination directory does not exist
//	          Action: Create the directory or change SAVE_DIR
//	          Patterns: "no such file or directory"
//
//	FILE003 - Permission denied: The file could not be accessed
//	          Action: Check file permissions
//	          Patterns: "permission denied"
//
//	FILE004 - Is a directory: The path names a directory
//	          Action: Enter a file name
//	          Patterns: "is a directory"
//
//	FILE005 - Invalid CSV: The file is not valid delimited text
//	          Action: Check quoting and the CSV_DELIMITER setting
//	          Patterns: "parse error", "bare \"", "extraneous"
//
// # Input Errors (INP001-INP099)
//
//	INP001 - Input closed: No more input is available
//	         Action: Restart the program to continue editing
//	         Patterns: "eof"
//
//	INP002 - Invalid input: The input could not be understood
//	         Action: Enter a whole number or "menu"
//	         Patterns: "input error"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid range: The end cell comes before the start cell
//	         Action: Choose an end cell at or after the start cell
//	         Patterns: "invalid range"
//
//	VAL002 - Out of bounds: The index is outside the table
//	         Action: Use the ranges shown in the prompt
//	         Patterns: "out of bounds"
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Empty table: The table has no cells to edit
//	         Action: Load a file with at least one row and column
//	         Patterns: "table is empty"
//
//	TBL002 - Index out of range: The cell does not exist in this row
//	         Action: Check the row length; the file may have ragged rows
//	         Patterns: "index out of range"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the log for details
//
// The package's own sentinels and typed errors are recognized with
// errors.Is and errors.As first. Remaining errors are matched on their text
// with file paths removed. Patterns are matched case-insensitively with
// strings.Contains and the first match wins, so specific patterns come
// before general ones.
package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file not found",
		msg: UserMessage{
			Message: "The CSV file could not be found",
			Action:  "Check CSV_FILE or pass the path as the first argument",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file or directory",
		msg: UserMessage{
			Message: "The destination directory does not exist",
			Action:  "Create the directory or change SAVE_DIR",
			Code:    "FILE002",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file could not be accessed",
			Action:  "Check file permissions",
			Code:    "FILE003",
		},
	},
	{
		pattern: "is a directory",
		msg: UserMessage{
			Message: "The path names a directory",
			Action:  "Enter a file name",
			Code:    "FILE004",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "The file is not valid delimited text",
			Action:  "Check quoting and the CSV_DELIMITER setting",
			Code:    "FILE005",
		},
	},
	{
		pattern: "bare \"",
		msg: UserMessage{
			Message: "The file is not valid delimited text",
			Action:  "Check quoting and the CSV_DELIMITER setting",
			Code:    "FILE005",
		},
	},
	{
		pattern: "extraneous",
		msg: UserMessage{
			Message: "The file is not valid delimited text",
			Action:  "Check quoting and the CSV_DELIMITER setting",
			Code:    "FILE005",
		},
	},

	// Input errors
	{
		pattern: "eof",
		msg: UserMessage{
			Message: "No more input is available",
			Action:  "Restart the program to continue editing",
			Code:    "INP001",
		},
	},
	{
		pattern: "input error",
		msg: UserMessage{
			Message: "The input could not be understood",
			Action:  "Enter a whole number or \"menu\"",
			Code:    "INP002",
		},
	},

	// Validation errors
	{
		pattern: "invalid range",
		msg: UserMessage{
			Message: "The end cell comes before the start cell",
			Action:  "Choose an end cell at or after the start cell",
			Code:    "VAL001",
		},
	},
	{
		pattern: "out of bounds",
		msg: UserMessage{
			Message: "The index is outside the table",
			Action:  "Use the ranges shown in the prompt",
			Code:    "VAL002",
		},
	},

	// Table errors
	{
		pattern: "table is empty",
		msg: UserMessage{
			Message: "The table has no cells to edit",
			Action:  "Load a file with at least one row and column",
			Code:    "TBL001",
		},
	},
	{
		pattern: "index out of range",
		msg: UserMessage{
			Message: "The cell does not exist in this row",
			Action:  "Check the row length; the file may have ragged rows",
			Code:    "TBL002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTyped(err); ok {
		return msg
	}

	errStr := strings.ToLower(patternText(err))

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// mapTyped recognizes errors by identity rather than text.
func mapTyped(err error) (UserMessage, bool) {
	var (
		inErr  *InputError
		valErr *ValidationError
	)
	switch {
	case errors.Is(err, ErrFileNotFound):
		return messageFor("FILE001"), true
	case errors.Is(err, ErrEmptyTable):
		return messageFor("TBL001"), true
	case errors.Is(err, ErrIndexOutOfRange):
		return messageFor("TBL002"), true
	case errors.As(err, &inErr):
		if errors.Is(err, io.EOF) {
			return messageFor("INP001"), true
		}
		return messageFor("INP002"), true
	case errors.As(err, &valErr):
		if valErr.Field == "range" {
			return messageFor("VAL001"), true
		}
		return messageFor("VAL002"), true
	case errors.Is(err, fs.ErrNotExist):
		return messageFor("FILE002"), true
	case errors.Is(err, fs.ErrPermission):
		return messageFor("FILE003"), true
	}
	return UserMessage{}, false
}

// patternText returns the part of err's text that describes the failure,
// leaving out any file path the user chose.
func patternText(err error) string {
	var (
		pathErr *fs.PathError
		linkErr *os.LinkError
		ioErr   *IOError
	)
	switch {
	case errors.As(err, &pathErr):
		return pathErr.Err.Error()
	case errors.As(err, &linkErr):
		return linkErr.Err.Error()
	case errors.As(err, &ioErr) && ioErr.Err != nil:
		return ioErr.Err.Error()
	}
	return err.Error()
}

func messageFor(code string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg
		}
	}
	return defaultMessage
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
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

// Format returns the display form: "Message (Code: XXX). Action"
func (e *UserError) Format() string {
	return fmt.Sprintf("%s (Code: %s). %s", e.User.Message, e.User.Code, e.User.Action)
}

// NewUserError maps err to a *UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
