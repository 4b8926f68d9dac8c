package store

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

// ParquetSchema builds an all-optional string schema, one leaf per column,
// named by stats.ColumnKeys.
func ParquetSchema(name string, cols []string) (*parquet.Schema, []string) {
	keys := stats.ColumnKeys(cols)
	g := parquet.Group{}
	for _, k := range keys {
		g[k] = parquet.Optional(parquet.String())
	}
	return parquet.NewSchema(name, g), keys
}

// WriteParquet writes t with Snappy compression. Empty cells become nulls.
func WriteParquet(w io.Writer, name string, t *stats.Table) error {
	schema, keys := ParquetSchema(name, t.Columns)
	if n := len(schema.Columns()); n != len(keys) {
		return fmt.Errorf("parquet schema has %d leaves for %d columns", n, len(keys))
	}

	// Group fields are ordered by name; map each table column to its leaf.
	leaf := make(map[string]int, len(keys))
	for i, p := range schema.Columns() {
		leaf[p[0]] = i
	}
	colLeaf := make([]int, len(keys))
	for j, k := range keys {
		idx, ok := leaf[k]
		if !ok {
			return fmt.Errorf("parquet schema missing column %q", k)
		}
		colLeaf[j] = idx
	}

	pw := parquet.NewWriter(w, schema, parquet.Compression(&parquet.Snappy))
	rows := make([]parquet.Row, 0, t.Len())
	for i := range t.Rows {
		vals := t.Values(i)
		row := make(parquet.Row, len(keys))
		for j, v := range vals {
			idx := colLeaf[j]
			if v == "" {
				row[idx] = parquet.NullValue().Level(0, 0, idx)
			} else {
				row[idx] = parquet.ByteArrayValue([]byte(v)).Level(0, 1, idx)
			}
		}
		rows = append(rows, row)
	}
	if _, err := pw.WriteRows(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return pw.Close()
}

func ParquetBytes(name string, t *stats.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteParquet(&buf, name, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
