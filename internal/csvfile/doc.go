// Package csvfile reads and writes delimited text files for the table model.
//
// [Reader] implements core.RowSource and [Writer] implements core.RowSink.
// Both share a configurable delimiter so a file saved by the editor loads
// back cell-for-cell.
package csvfile
