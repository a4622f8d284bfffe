package core

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Table holds a fully loaded CSV file.
//
// Dimensions are fixed at load time from the row count and the length of the
// first row. Mutations only replace existing cells, so the dimensions stay
// valid for the lifetime of the table.
type Table struct {
	rows        [][]string
	numRows     int
	numCols     int
	placeholder string
}

// Option configures a Table.
type Option func(*Table)

// WithPlaceholder overrides the marker written by DeleteCell.
func WithPlaceholder(marker string) Option {
	return func(t *Table) {
		t.placeholder = marker
	}
}

// New wraps rows in a Table without copying them.
func New(rows [][]string, opts ...Option) *Table {
	t := &Table{
		rows:        rows,
		numRows:     len(rows),
		placeholder: DefaultPlaceholder,
	}
	if len(rows) > 0 {
		t.numCols = len(rows[0])
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads path through src and builds a Table.
// Returns an error wrapping ErrFileNotFound if the source is missing, or an
// *IOError for any other read or parse failure.
func Load(src RowSource, path string, opts ...Option) (*Table, error) {
	rows, err := src.ReadRows(path)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}

	t := New(rows, opts...)

	// Ragged input is tolerated; short rows surface later as out-of-range.
	for i, row := range rows {
		if len(row) != t.numCols {
			slog.Warn("ragged row in input",
				"path", path,
				"row", i+1,
				"cells", len(row),
				"expected", t.numCols,
			)
			break
		}
	}

	slog.Debug("table loaded", "path", path, "rows", t.numRows, "cols", t.numCols)
	return t, nil
}

// Dimensions returns the row and column counts computed at load time.
func (t *Table) Dimensions() (rows, cols int) {
	return t.numRows, t.numCols
}

// Empty reports whether the table has no addressable cells.
func (t *Table) Empty() bool {
	return t.numRows == 0 || t.numCols == 0
}

// Placeholder returns the marker written by DeleteCell.
func (t *Table) Placeholder() string {
	return t.placeholder
}

// checkCell bounds-checks c against the declared dimensions and the actual
// length of the addressed row.
func (t *Table) checkCell(c Coordinate) error {
	if c.Row < 0 || c.Row >= t.numRows || c.Col < 0 || c.Col >= t.numCols {
		return fmt.Errorf("%w: cell %s outside %dx%d table", ErrIndexOutOfRange, c, t.numRows, t.numCols)
	}
	if c.Col >= len(t.rows[c.Row]) {
		return fmt.Errorf("%w: cell %s beyond row length %d", ErrIndexOutOfRange, c, len(t.rows[c.Row]))
	}
	return nil
}

// Cell returns the value at c.
func (t *Table) Cell(c Coordinate) (string, error) {
	if err := t.checkCell(c); err != nil {
		return "", err
	}
	return t.rows[c.Row][c.Col], nil
}

// WriteCell replaces the value at c.
func (t *Table) WriteCell(c Coordinate, value string) error {
	if err := t.checkCell(c); err != nil {
		return err
	}
	t.rows[c.Row][c.Col] = value
	return nil
}

// DeleteCell blanks the cell at c with the placeholder marker.
func (t *Table) DeleteCell(c Coordinate) error {
	return t.WriteCell(c, t.placeholder)
}

// ReadWindow returns copies of the cells selected by w.
//
// Row w.Start.Row is clipped on the left at Start.Col and row w.End.Row on
// the right after End.Col. Rows in between are returned as stored, so ragged
// rows keep their own length. When start and end share a row both clips apply.
func (t *Table) ReadWindow(w Window) ([][]string, error) {
	if w.Start.Row < 0 || w.End.Row >= t.numRows || w.Start.Row > w.End.Row {
		return nil, fmt.Errorf("%w: rows %d-%d outside table of %d rows",
			ErrIndexOutOfRange, w.Start.Row+1, w.End.Row+1, t.numRows)
	}

	out := make([][]string, 0, w.End.Row-w.Start.Row+1)
	for r := w.Start.Row; r <= w.End.Row; r++ {
		lo, hi := 0, len(t.rows[r])
		if r == w.Start.Row {
			lo = w.Start.Col
		}
		if r == w.End.Row {
			hi = w.End.Col + 1
		}
		if lo < 0 || hi > len(t.rows[r]) || lo > hi || (r == w.Start.Row && lo >= len(t.rows[r])) {
			return nil, fmt.Errorf("%w: columns %d-%d of row %d (length %d)",
				ErrIndexOutOfRange, lo+1, hi, r+1, len(t.rows[r]))
		}
		out = append(out, append([]string(nil), t.rows[r][lo:hi]...))
	}
	return out, nil
}

// Rows returns a deep copy of the table contents.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Save writes every row to dest through sink. The table is not modified and
// dest is forwarded untouched.
func (t *Table) Save(sink RowSink, dest string) error {
	if err := sink.WriteRows(dest, t.Rows()); err != nil {
		return &IOError{Op: "save", Path: dest, Err: err}
	}
	slog.Debug("table saved", "dest", dest, "rows", t.numRows)
	return nil
}

// Display yields one line per row with cells joined by sep. The sequence is
// lazy and can be ranged over repeatedly.
func (t *Table) Display(sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, row := range t.rows {
			if !yield(strings.Join(row, sep)) {
				return
			}
		}
	}
}
