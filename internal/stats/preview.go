package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	previewCellWidth = 18
	previewEdgeCols  = 4
	ellipsis         = "..."
)

// Preview writes the first n rows of t as an aligned text grid. Wide tables show
// the first and last few columns around a "..." column.
func Preview(w io.Writer, t *Table, n int) error {
	if n <= 0 || t == nil || len(t.Columns) == 0 {
		return nil
	}
	return render(w, t, n, previewColumns(len(t.Columns)))
}

// PreviewAll writes every row and every column of t in the Preview layout.
func PreviewAll(w io.Writer, t *Table) error {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}
	idx := make([]int, len(t.Columns))
	for i := range idx {
		idx[i] = i
	}
	return render(w, t, t.Len(), idx)
}

func render(w io.Writer, t *Table, n int, idx []int) error {
	if n > t.Len() {
		n = t.Len()
	}
	lines := make([][]string, 0, n+1)

	head := []string{""}
	for _, i := range idx {
		head = append(head, columnAt(t.Columns, i))
	}
	lines = append(lines, head)
	for r := 0; r < n; r++ {
		line := []string{fmt.Sprint(r)}
		for _, i := range idx {
			if i < 0 {
				line = append(line, ellipsis)
				continue
			}
			line = append(line, t.Rows[r][t.Columns[i]])
		}
		lines = append(lines, line)
	}

	widths := make([]int, len(head))
	for _, line := range lines {
		for j, cell := range line {
			cw := runewidth.StringWidth(runewidth.Truncate(cell, previewCellWidth, "…"))
			if cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	for _, line := range lines {
		var sb strings.Builder
		for j, cell := range line {
			if j > 0 {
				sb.WriteString("  ")
			}
			cell = runewidth.Truncate(cell, previewCellWidth, "…")
			if j == 0 {
				sb.WriteString(runewidth.FillLeft(cell, widths[j]))
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[j]))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n[%d rows x %d columns]\n", t.Len(), len(t.Columns))
	return err
}

// previewColumns returns column indexes to show; -1 marks the elided gap.
func previewColumns(total int) []int {
	if total <= 2*previewEdgeCols {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*previewEdgeCols+1)
	for i := 0; i < previewEdgeCols; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := total - previewEdgeCols; i < total; i++ {
		out = append(out, i)
	}
	return out
}

func columnAt(cols []string, i int) string {
	if i < 0 {
		return ellipsis
	}
	return cols[i]
}
