// Package core provides the in-memory table model for the CSV editor.
//
// Bounds checking and window ordering live here. The package has no
// terminal dependencies; reading and writing files is delegated to a
// [RowSource] and a [RowSink].
//
// # Table
//
// A [Table] is loaded once with [Load] and then mutated in place:
//
//	t, err := core.Load(csvfile.NewReader(','), "data.csv")
//	if err != nil {
//	    return err
//	}
//	_ = t.WriteCell(core.Coordinate{Row: 0, Col: 1}, "new")
//	_ = t.Save(csvfile.NewWriter(','), "copy.csv")
//
// Dimensions are (row count, length of the first row) and never change.
//
// # Coordinates and Windows
//
// User-facing indices are one-based. A [Validator] per [Axis] checks them
// against the live dimensions, and [FromOneBased] converts the pair to a
// zero-based [Coordinate]. [NewWindow] rejects an end that precedes the start.
//
// # Error Handling
//
// [ErrMenuReset] is a control signal, not a failure. Everything else is
// mapped to a short message with a code by [MapError] and [NewUserError].
package core
