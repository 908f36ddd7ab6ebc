// Package tabular provides loading and missing-value semantics for the
// delimited files a coverage audit reads: the reference CSV and the node
// TSV exports.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is a fully loaded delimited file. Rows shorter than the header are
// padded with empty cells; cells beyond the header width are ignored.
type Table struct {
	Name    string // base file name
	Columns []string
	Rows    [][]string

	index map[string]int // column name to position, first occurrence wins
}

// LoadTable reads a whole delimited file into memory. An empty file is an
// error, matching the behavior of dataframe loaders on headerless input.
func LoadTable(path string, sep rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no columns to parse from %s", path)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	t := &Table{
		Name:    filepath.Base(path),
		Columns: header,
		index:   make(map[string]int, len(header)),
	}
	for i, name := range header {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}

	ncol := len(header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d of %s: %w", len(t.Rows)+2, path, err)
		}
		if len(rec) < ncol {
			padded := make([]string, ncol)
			copy(padded, rec)
			rec = padded
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column. With duplicate
// headers the first occurrence wins.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// NumRows returns the number of data rows, excluding the header.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Value returns the cell at the given row and column. Positions outside
// the table yield an empty cell.
func (t *Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
