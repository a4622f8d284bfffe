package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer saves rows as delimited text.
type Writer struct {
	Comma rune
}

// NewWriter returns a Writer using comma as the field delimiter.
func NewWriter(comma rune) *Writer {
	return &Writer{Comma: comma}
}

// WriteRows implements core.RowSink.
//
// Rows are written to a temporary file next to dest and renamed into place,
// so an existing file is either fully replaced or left untouched.
func (w *Writer) WriteRows(dest string, rows [][]string) error {
	dir := filepath.Dir(dest)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	cw := csv.NewWriter(tmp)
	if w.Comma != 0 {
		cw.Comma = w.Comma
	}

	if err := writeRows(cw, tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	return os.Rename(tmpName, dest)
}

// writeRows writes rows through cw. encoding/csv emits a row holding a single
// empty field as a blank line, which readers skip, so that row is written
// as a quoted empty field directly to out instead.
func writeRows(cw *csv.Writer, out io.Writer, rows [][]string) error {
	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(out, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
