package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

// WriteCSV creates or truncates path and writes t: one header line with the
// column names, then one line per row. No index column.
func WriteCSV(path string, t *stats.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeCSV(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func EncodeCSV(w io.Writer, t *stats.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for i := range t.Rows {
		if err := cw.Write(t.Values(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVBytes renders t in the same format as WriteCSV.
func CSVBytes(t *stats.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV loads a file produced by WriteCSV.
func ReadCSV(path string) (*stats.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(recs) == 0 {
		return &stats.Table{}, nil
	}
	t := &stats.Table{Columns: recs[0], Rows: make([]stats.Row, 0, len(recs)-1)}
	for _, rec := range recs[1:] {
		row := make(stats.Row, len(t.Columns))
		for j, c := range t.Columns {
			if j < len(rec) {
				row[c] = rec[j]
			} else {
				row[c] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// DistinctTeams lists unique Team values in first-seen order, skipping blanks
// and squad/opponent total rows.
func DistinctTeams(t *stats.Table) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, r := range t.Rows {
		team := strings.TrimSpace(r[stats.TeamColumn])
		if team == "" || strings.Contains(strings.ToLower(team), "total") {
			continue
		}
		if _, ok := seen[team]; ok {
			continue
		}
		seen[team] = struct{}{}
		out = append(out, team)
	}
	return out
}
