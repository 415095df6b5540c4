package enrich

import (
	"fmt"
	"log/slog"
)

// Stats summarizes one enrichment run.
type Stats struct {
	Rows             int
	Overridden       int
	Kept             int
	Synthesized      int
	Linked           int
	Roots            int
	Unresolved       int
	MissingAncestors int
	Collisions       int
}

// Result is the enriched record set plus everything that was recovered from.
type Result struct {
	Records   []Record
	Anomalies []Anomaly
	Stats     Stats
}

// Enricher assigns identifiers and resolves hierarchy links.
type Enricher struct {
	counter   *Counter
	overrides map[int]string
	logger    *slog.Logger
}

// NewEnricher creates an enricher. overrides maps table positions to fixed
// identifiers and wins over any source category id.
func NewEnricher(counter *Counter, overrides map[int]string, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		counter:   counter,
		overrides: overrides,
		logger:    logger,
	}
}

// Enrich mutates records in place and returns them with the run's anomalies.
// Identifiers are final for every record before any parent is resolved.
func (e *Enricher) Enrich(records []Record) (*Result, error) {
	res := &Result{Records: records}
	res.Stats.Rows = len(records)

	// The counter must step over every identifier that is not its own.
	for _, id := range e.overrides {
		e.counter.Reserve(id)
	}
	for i := range records {
		records[i].CategoryID = trimCell(records[i].CategoryID)
		if !records[i].CategoryID.IsEmpty() {
			e.counter.Reserve(records[i].CategoryID.Value)
		}
	}

	for i := range records {
		r := &records[i]
		switch e.assign(r) {
		case sourceOverride:
			res.Stats.Overridden++
		case sourceCategory:
			res.Stats.Kept++
		case sourceCounter:
			res.Stats.Synthesized++
		}
		r.derive()
	}

	if err := checkUnique(records); err != nil {
		return nil, err
	}

	ix := NewSignatureIndex(records)
	for _, a := range ix.Collisions() {
		e.logger.Warn("Duplicate signature, keeping first record",
			"signature", a.Signature,
			"row", a.Position,
			"first_row", a.FirstPosition)
	}
	res.Anomalies = append(res.Anomalies, ix.Collisions()...)
	res.Stats.Collisions = len(ix.Collisions())

	for i := range records {
		r := &records[i]
		broader, misses := ix.ResolveParent(r)
		for _, a := range misses {
			e.logger.Warn("Missing ancestor concept",
				"path", a.Path,
				"ancestor", a.Signature,
				"row", a.Position,
				"identifier", a.Identifier)
		}
		res.Anomalies = append(res.Anomalies, misses...)
		res.Stats.MissingAncestors += len(misses)

		r.Broader = broader
		switch {
		case broader != "":
			res.Stats.Linked++
		case r.Depth() <= 1:
			res.Stats.Roots++
		default:
			res.Stats.Unresolved++
		}
	}

	e.logger.Debug("Enrichment complete",
		"rows", res.Stats.Rows,
		"signatures", ix.Len(),
		"linked", res.Stats.Linked,
		"anomalies", len(res.Anomalies))

	return res, nil
}

type idSource int

const (
	sourceOverride idSource = iota
	sourceCategory
	sourceCounter
)

func (e *Enricher) assign(r *Record) idSource {
	if id, ok := e.overrides[r.Position]; ok {
		r.Identifier = id
		return sourceOverride
	}
	if !r.CategoryID.IsEmpty() {
		r.Identifier = r.CategoryID.Value
		return sourceCategory
	}
	r.Identifier = e.counter.Next()
	return sourceCounter
}

func checkUnique(records []Record) error {
	seen := make(map[string]int, len(records))
	for _, r := range records {
		if first, ok := seen[r.Identifier]; ok {
			return fmt.Errorf("%w: %s on rows %d and %d", ErrDuplicateIdentifier, r.Identifier, first, r.Position)
		}
		seen[r.Identifier] = r.Position
	}
	return nil
}

// CategoryIDs returns the present source category ids in table order.
func CategoryIDs(records []Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if !r.CategoryID.IsEmpty() {
			ids = append(ids, r.CategoryID.Value)
		}
	}
	return ids
}
