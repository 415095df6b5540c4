// Package enrich turns raw HTE rows into records with stable identifiers,
// hierarchy signatures and resolved broader links.
//
// Enrichment runs in three ordered phases over the whole record set:
//
//  1. identifier assignment (override table, source category id, counter)
//  2. derived fields (signature, alternate path, label, HTE URL), pure per row
//  3. parent resolution against a signature index built once from phase 2
//
// Phase 3 only reads the index, so it never depends on record order beyond
// the first-match rule for colliding signatures.
package enrich

import (
	"fmt"
	"strings"

	"github.com/ben-tinc/trm-preview/table"
)

// HTEURLPrefix is the public Historical Thesaurus category page.
const HTEURLPrefix = "https://ht.ac.uk/category/?id="

// AltPathSeparator joins secondary path components.
const AltPathSeparator = "."

// Record is one thesaurus entry.
type Record struct {
	// Position is the zero-based data row index in the source table.
	Position int

	// Source cells
	CategoryID table.Cell
	Path       []table.Cell
	AltPath    []table.Cell
	Pos        table.Cell
	RawLabel   table.Cell

	// Derived fields
	Identifier    string
	Signature     string
	AlternatePath string
	Label         string
	HTEURL        string
	Broader       string
}

// Segments returns the non-empty primary path components in order.
func (r *Record) Segments() []string {
	segs := make([]string, 0, len(r.Path))
	for _, c := range r.Path {
		if !c.IsEmpty() {
			segs = append(segs, c.Value)
		}
	}
	return segs
}

// Depth is the number of non-empty primary path components.
func (r *Record) Depth() int {
	n := 0
	for _, c := range r.Path {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Signature concatenates the non-empty primary path components without separator.
func Signature(path []table.Cell) string {
	var sb strings.Builder
	for _, c := range path {
		if !c.IsEmpty() {
			sb.WriteString(c.Value)
		}
	}
	return sb.String()
}

// AlternatePath joins the non-empty secondary components with "." and
// appends pos verbatim.
func AlternatePath(path []table.Cell, pos table.Cell) string {
	parts := make([]string, 0, len(path))
	for _, c := range path {
		if !c.IsEmpty() {
			parts = append(parts, c.Value)
		}
	}
	return strings.Join(parts, AltPathSeparator) + pos.String()
}

// trimCell strips surrounding whitespace; a blank cell becomes absent.
func trimCell(c table.Cell) table.Cell {
	v := strings.TrimSpace(c.Value)
	if !c.Valid || v == "" {
		return table.Null
	}
	return table.Text(v)
}

// derive computes the per-row fields. It reads nothing but r.
func (r *Record) derive() {
	r.Signature = Signature(r.Path)
	r.AlternatePath = AlternatePath(r.AltPath, r.Pos)
	r.Label = strings.TrimSpace(r.RawLabel.String())
	r.HTEURL = ""
	if !r.CategoryID.IsEmpty() {
		r.HTEURL = HTEURLPrefix + r.CategoryID.Value
	}
}

// Columns names the input columns a record is built from.
type Columns struct {
	CategoryID string
	Primary    []string
	Secondary  []string
	Position   string
	Label      string

	// Drop lists further columns left out of the prepared table.
	Drop []string
}

// Load builds one record per table row. Every named column must exist.
func Load(t *table.Table, cols Columns) ([]Record, error) {
	idx := func(name string) (int, error) {
		i := t.Column(name)
		if i < 0 {
			return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return i, nil
	}

	catCol, err := idx(cols.CategoryID)
	if err != nil {
		return nil, err
	}
	labelCol, err := idx(cols.Label)
	if err != nil {
		return nil, err
	}
	posCol := -1
	if cols.Position != "" {
		if posCol, err = idx(cols.Position); err != nil {
			return nil, err
		}
	}
	primary := make([]int, len(cols.Primary))
	for i, name := range cols.Primary {
		if primary[i], err = idx(name); err != nil {
			return nil, err
		}
	}
	secondary := make([]int, len(cols.Secondary))
	for i, name := range cols.Secondary {
		if secondary[i], err = idx(name); err != nil {
			return nil, err
		}
	}

	records := make([]Record, t.Len())
	for row := range records {
		r := &records[row]
		r.Position = row
		r.CategoryID = t.Get(row, catCol)
		r.RawLabel = t.Get(row, labelCol)
		r.Pos = t.Get(row, posCol)
		r.Path = make([]table.Cell, len(primary))
		for i, col := range primary {
			r.Path[i] = t.Get(row, col)
		}
		r.AltPath = make([]table.Cell, len(secondary))
		for i, col := range secondary {
			r.AltPath[i] = t.Get(row, col)
		}
	}
	return records, nil
}
