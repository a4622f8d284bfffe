package core

// errors.go defines the error kinds shared by the table model and the
// interactive layer.
//
// Sentinels are compared with errors.Is; the struct kinds carry detail and
// are matched with errors.As:
//
//   - ErrMenuReset: the user aborted the current command (not a failure)
//   - ErrFileNotFound: the load source does not exist
//   - ErrIndexOutOfRange: a coordinate fell outside the loaded grid
//   - ErrEmptyTable: a cell command was issued against a table with no cells
//   - *IOError: any other load or save failure
//   - *InputError: raw input could not be read or parsed
//   - *ValidationError: a parsed index or window failed validation

import (
	"errors"
	"fmt"
)

// ErrMenuReset unwinds the current command back to the top-level menu
// without committing any change.
var ErrMenuReset = errors.New("menu selected")

// ErrFileNotFound is returned by Load when the source path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrIndexOutOfRange is returned when a read or write touches a cell outside
// the table.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrEmptyTable is returned when a cell-level command runs on a table
// without rows or columns.
var ErrEmptyTable = errors.New("table is empty")

// IOError wraps a load or save failure other than a missing source.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// InputError reports raw input that could not be read or parsed.
type InputError struct {
	Message string
	Err     error // underlying read error, if any
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input error: %s: %v", e.Message, e.Err)
	}
	return "input error: " + e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidationError reports a value that parsed but is not acceptable.
type ValidationError struct {
	Field   string // Axis or field name, e.g. "row"
	Value   string // The rejected value
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return "validation error: " + e.Message
}
