// Package table reads and writes the spreadsheets the converter works on.
//
// A Table is fully materialized in memory. Cells are strings; a cell that is
// empty in the source file is reported as absent, the same way a dataframe
// reader reports it as missing.
package table

import "strings"

// Cell is a single spreadsheet value that may be absent.
type Cell struct {
	Value string
	Valid bool
}

// Null is the absent cell.
var Null = Cell{}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// String returns the cell value, or "" when absent.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// IsEmpty reports whether the cell is absent or holds the empty string.
func (c Cell) IsEmpty() bool {
	return !c.Valid || c.Value == ""
}

// Table is a header row plus data rows. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// New builds a table from a header and raw string rows. Empty strings become
// absent cells; short rows are padded and long rows truncated to the header.
func New(header []string, raw [][]string) *Table {
	t := &Table{
		Header: make([]string, len(header)),
		Rows:   make([][]Cell, 0, len(raw)),
	}
	for i, h := range header {
		t.Header[i] = strings.TrimSpace(h)
	}
	for _, r := range raw {
		row := make([]Cell, len(header))
		for i := range row {
			if i < len(r) && r[i] != "" {
				row[i] = Text(r[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at row and column index, or Null if col is out of range.
func (t *Table) Get(row, col int) Cell {
	if col < 0 || col >= len(t.Rows[row]) {
		return Null
	}
	return t.Rows[row][col]
}

// Strings returns the header followed by every row as plain strings.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Header...))
	for _, row := range t.Rows {
		r := make([]string, len(row))
		for i, c := range row {
			r[i] = c.String()
		}
		out = append(out, r)
	}
	return out
}
