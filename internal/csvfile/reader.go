package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/JonMunkholm/csvedit/internal/core"
)

// utf8BOM is prepended by some Windows programs.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads a whole delimited file into memory.
type Reader struct {
	Comma rune
}

// NewReader returns a Reader using comma as the field delimiter.
func NewReader(comma rune) *Reader {
	return &Reader{Comma: comma}
}

// ReadRows implements core.RowSource.
//
// Rows may have differing lengths; quoting is parsed leniently. A leading
// BOM is dropped and invalid UTF-8 is replaced with U+FFFD.
func (r *Reader) ReadRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", core.ErrFileNotFound, err)
		}
		return nil, err
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.Write(data[:size])
		}
		data = data[size:]
	}

	return buf.Bytes()
}
