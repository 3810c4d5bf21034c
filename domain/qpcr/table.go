package qpcr

import (
	"fmt"

	"qpcrfold/domain/core"
)

// Table is the canonical observation table: a header row of column names and
// string-valued cells. Readers produce it, the normalizer reorders it, and the
// expression transformer derives the wDCt response from it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table and checks row shape against the header.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, core.ErrEmptyTable
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, core.NewShapeError(core.ErrRaggedRow,
				fmt.Sprintf("row %d has %d cells, header has %d", i+1, len(row), len(columns)))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// ColumnIndex returns the 0-based index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all cell values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, core.NewShapeError(core.ErrColumnNotFound, name)
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// RowCount returns the number of observation rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := append([]string(nil), t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return &Table{Columns: columns, Rows: rows}
}
