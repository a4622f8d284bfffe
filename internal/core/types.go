// Package core provides the in-memory table model for the CSV editor.
// This package has no terminal dependencies and can be driven by any frontend.
package core

// DefaultPlaceholder is written in place of a deleted cell. It only means
// "cleared" to the display layer; the model treats it as ordinary text.
const DefaultPlaceholder = "_"

// RowSource loads records from a path.
// Implementations must wrap a missing path with ErrFileNotFound so Load can
// tell it apart from other I/O failures.
type RowSource interface {
	ReadRows(path string) ([][]string, error)
}

// RowSink persists records to a destination.
type RowSink interface {
	WriteRows(dest string, rows [][]string) error
}

// RowSourceFunc adapts a function to RowSource.
type RowSourceFunc func(path string) ([][]string, error)

func (f RowSourceFunc) ReadRows(path string) ([][]string, error) {
	return f(path)
}

// RowSinkFunc adapts a function to RowSink.
type RowSinkFunc func(dest string, rows [][]string) error

func (f RowSinkFunc) WriteRows(dest string, rows [][]string) error {
	return f(dest, rows)
}
