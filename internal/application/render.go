package application

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/JonMunkholm/csvedit/internal/core"
)

// renderWindow formats the rows returned for w, one line per row.
//
// With align set, each table column is padded to the widest cell shown for
// it, and the clipped first row is indented so its cells stay under their
// columns. Widths are terminal display widths, so wide runes line up.
func renderWindow(w core.Window, rows [][]string, sep string, align bool) []string {
	lines := make([]string, 0, len(rows))
	if !align {
		for _, row := range rows {
			lines = append(lines, strings.Join(row, sep))
		}
		return lines
	}

	// A single-row window has nothing to line up against.
	firstOffset := w.Start.Col
	if len(rows) < 2 {
		firstOffset = 0
	}
	offset := func(i int) int {
		if i == 0 {
			return firstOffset
		}
		return 0
	}

	var widths []int
	for i, row := range rows {
		for j, cell := range row {
			col := offset(i) + j
			for len(widths) <= col {
				widths = append(widths, 0)
			}
			widths[col] = max(widths[col], runewidth.StringWidth(cell))
		}
	}

	sepWidth := runewidth.StringWidth(sep)
	for i, row := range rows {
		var b strings.Builder
		off := offset(i)
		for col := 0; col < off; col++ {
			b.WriteString(strings.Repeat(" ", widths[col]+sepWidth))
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString(sep)
			}
			if j == len(row)-1 {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(cell, widths[off+j]))
		}
		lines = append(lines, b.String())
	}
	return lines
}
