package core

import (
	"fmt"
	"strconv"
)

// Axis identifies the dimension a user-entered index refers to.
type Axis int

const (
	Row Axis = iota
	Column
)

func (a Axis) String() string {
	switch a {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "axis(" + strconv.Itoa(int(a)) + ")"
	}
}

// Coordinate is a zero-based cell address.
type Coordinate struct {
	Row int
	Col int
}

// FromOneBased converts validated one-based user indices to a Coordinate.
func FromOneBased(row, col int) Coordinate {
	return Coordinate{Row: row - 1, Col: col - 1}
}

// OneBased returns the user-facing (row, col) pair.
func (c Coordinate) OneBased() (int, int) {
	return c.Row + 1, c.Col + 1
}

func (c Coordinate) String() string {
	r, col := c.OneBased()
	return fmt.Sprintf("(%d, %d)", r, col)
}

// Before reports whether c sorts lexicographically at or before o.
func (c Coordinate) Before(o Coordinate) bool {
	return c.Row < o.Row || (c.Row == o.Row && c.Col <= o.Col)
}

// Window is an ordered pair of coordinates selecting a ragged region:
// the first row is clipped on the left, the last row on the right, and
// rows in between are returned in full.
type Window struct {
	Start Coordinate
	End   Coordinate
}

// NewWindow builds a Window, rejecting an end that precedes start.
func NewWindow(start, end Coordinate) (Window, error) {
	if !start.Before(end) {
		return Window{}, &ValidationError{
			Field:   "range",
			Value:   start.String() + " -> " + end.String(),
			Message: "invalid range: ensure that end row/column is greater than or equal to start row/column",
		}
	}
	return Window{Start: start, End: end}, nil
}

// Validator checks one-based indices for a single axis against an inclusive
// range. Instances are built from a table's live dimensions so bounds always
// match the data being edited.
type Validator struct {
	Axis Axis
	Min  int
	Max  int
}

// NewValidators returns the row and column validators for t.
func NewValidators(t *Table) (Validator, Validator) {
	rows, cols := t.Dimensions()
	return Validator{Axis: Row, Min: 1, Max: rows},
		Validator{Axis: Column, Min: 1, Max: cols}
}

// Describe returns the prompt text shown before reading an index.
func (v Validator) Describe() string {
	switch v.Axis {
	case Row:
		return fmt.Sprintf("Row numbers range from %d to %d", v.Min, v.Max)
	default:
		return fmt.Sprintf("Column numbers range between %d and %d", v.Min, v.Max)
	}
}

// Validate returns a *ValidationError when n is outside [Min, Max].
func (v Validator) Validate(n int) error {
	if n < v.Min || n > v.Max {
		label := "Column"
		if v.Axis == Row {
			label = "Row"
		}
		return &ValidationError{
			Field:   v.Axis.String(),
			Value:   strconv.Itoa(n),
			Message: fmt.Sprintf("%s out of bounds (%d-%d)", label, v.Min, v.Max),
		}
	}
	return nil
}
