package enrich

import "github.com/ben-tinc/trm-preview/table"

// Prepared table column names.
const (
	ColumnIdentifier = "trmid"
	ColumnConcat     = "concat"
	ColumnHTEURL     = "hte_url"
	ColumnSignature  = "signature"
	ColumnBroader    = "broader"
	ColumnPrefLabel  = "prefLabel"
)

// Prepared builds the inspection table for an enriched run.
//
// Path, position and dropped columns are removed, the label column is renamed
// to prefLabel in place and holds the trimmed label, and the derived columns
// are appended. The broader column holds the broader concept IRI.
// records must be the enriched rows of src, in order.
func Prepared(src *table.Table, cols Columns, records []Record, conceptIRI func(string) string) *table.Table {
	drop := make(map[string]bool)
	for _, names := range [][]string{cols.Primary, cols.Secondary, cols.Drop} {
		for _, name := range names {
			drop[name] = true
		}
	}
	if cols.Position != "" {
		drop[cols.Position] = true
	}

	var keep []int
	out := &table.Table{}
	for i, h := range src.Header {
		if drop[h] {
			continue
		}
		keep = append(keep, i)
		if h == cols.Label {
			h = ColumnPrefLabel
		}
		out.Header = append(out.Header, h)
	}
	out.Header = append(out.Header, ColumnIdentifier, ColumnConcat, ColumnHTEURL, ColumnSignature, ColumnBroader)
	labelCol := src.Column(cols.Label)

	out.Rows = make([][]table.Cell, 0, len(records))
	for row, r := range records {
		cells := make([]table.Cell, 0, len(out.Header))
		for _, col := range keep {
			if col == labelCol {
				cells = append(cells, optional(r.Label))
				continue
			}
			cells = append(cells, src.Get(row, col))
		}
		broader := table.Null
		if r.Broader != "" {
			broader = table.Text(conceptIRI(r.Broader))
		}
		cells = append(cells,
			table.Text(r.Identifier),
			optional(r.AlternatePath),
			optional(r.HTEURL),
			optional(r.Signature),
			broader,
		)
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func optional(s string) table.Cell {
	if s == "" {
		return table.Null
	}
	return table.Text(s)
}
