package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler180/nwsl-stats-backends/internal/fbref"
)

// ErrSchemaMismatch means a table does not have the shape its category expects.
var ErrSchemaMismatch = errors.New("schema mismatch")

// TeamColumn is appended to every row by Tag.
const TeamColumn = "Team"

// RankSentinel is the rank value carried by header rows repeated inside tbody.
const RankSentinel = "Rk"

// Row maps a flattened column name to its cell text.
type Row map[string]string

// Float parses a numeric cell ("1,234", "12.5"). ok is false for blanks and text.
func (r Row) Float(col string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(r[col]), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Table is an ordered set of rows sharing one column list.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Values returns row i in column order; missing cells are "".
func (t *Table) Values(i int) []string {
	out := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		out[j] = t.Rows[i][c]
	}
	return out
}

// FlattenHeader joins the non-empty labels of each column with "_".
// Duplicate names get ".1", ".2", ... in source order.
func FlattenHeader(levels [][]string) []string {
	if len(levels) == 0 {
		return nil
	}
	width := len(levels[0])
	cols := make([]string, width)
	seen := map[string]int{}
	for c := 0; c < width; c++ {
		var parts []string
		for _, level := range levels {
			if c >= len(level) {
				continue
			}
			if lbl := strings.TrimSpace(level[c]); lbl != "" {
				parts = append(parts, lbl)
			}
		}
		name := strings.TrimSpace(strings.Join(parts, "_"))
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		cols[c] = name
	}
	return cols
}

// Flatten converts a raw table into rows keyed by flattened column names and
// checks it against the category's required columns.
func Flatten(raw *fbref.RawTable, cat Category) (*Table, error) {
	cols := FlattenHeader(raw.Header)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %q has no header", ErrSchemaMismatch, raw.ID)
	}

	t := &Table{Columns: cols}
	for _, req := range cat.Required {
		if !t.HasColumn(req) {
			return nil, fmt.Errorf("%w: table %q missing column %q", ErrSchemaMismatch, raw.ID, req)
		}
	}

	t.Rows = make([]Row, 0, len(raw.Rows))
	for i, cells := range raw.Rows {
		if len(cells) > len(cols) {
			return nil, fmt.Errorf("%w: table %q row %d has %d cells, header has %d",
				ErrSchemaMismatch, raw.ID, i, len(cells), len(cols))
		}
		row := make(Row, len(cols))
		for j, c := range cols {
			if j < len(cells) {
				row[c] = cells[j]
			} else {
				row[c] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// RankColumn picks the rank column of a flattened header: "Rk_Rk", then "Rk".
// It returns "" when the table has no rank column.
func RankColumn(cols []string) string {
	var single bool
	for _, c := range cols {
		if c == RankSentinel+"_"+RankSentinel {
			return c
		}
		if c == RankSentinel {
			single = true
		}
	}
	if single {
		return RankSentinel
	}
	return ""
}

// Sanitize drops rows whose rankColumn value is exactly "Rk".
// Order is kept. An empty rankColumn is a no-op.
func Sanitize(rows []Row, rankColumn string) []Row {
	if rankColumn == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if v, ok := r[rankColumn]; ok && v == RankSentinel {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsTotal reports whether a Player cell names a footer aggregate such as
// "Squad Total" or "Opponent Total" rather than a player.
func IsTotal(player string) bool {
	return strings.Contains(strings.ToLower(player), "total")
}

// Tag sets the Team column on every row, adding the column if needed.
func Tag(t *Table, team string) {
	if !t.HasColumn(TeamColumn) {
		t.Columns = append(t.Columns, TeamColumn)
	}
	for _, r := range t.Rows {
		r[TeamColumn] = team
	}
}
