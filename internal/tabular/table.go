// Package tabular provides the boundary to tabular data sources with named
// columns. Column positions are resolved once against the header, so row
// access is by integer index rather than per-row name lookup.
package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSourceMissing reports that the file backing a table does not exist.
var ErrSourceMissing = errors.New("tabular source missing")

// SchemaError reports that a required column could not be located. It carries
// the column names that were actually found to aid diagnosis.
type SchemaError struct {
	Missing string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("no column name contains %q (columns: %s)",
		e.Missing, strings.Join(e.Columns, ", "))
}

// Table holds an in-memory tabular source: a header of column names and
// string-typed data rows. Rows may be ragged; missing cells read as empty.
type Table struct {
	columns []string
	rows    [][]string
}

// New builds a Table from a header and rows.
func New(columns []string, rows [][]string) *Table {
	return &Table{columns: columns, rows: rows}
}

// Columns returns the header column names.
func (t *Table) Columns() []string { return t.columns }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the cell at (row, col), or the empty string when the row is
// shorter than the resolved column index.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	r := t.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// FindColumn locates the first column whose name contains token,
// case-insensitively. It returns a SchemaError when no column matches.
func (t *Table) FindColumn(token string) (int, error) {
	needle := strings.ToLower(token)
	for i, name := range t.columns {
		if strings.Contains(strings.ToLower(name), needle) {
			return i, nil
		}
	}
	return -1, &SchemaError{Missing: token, Columns: t.columns}
}
