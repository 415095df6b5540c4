package enrich

import "errors"

// Common enrichment errors. All of them abort the run.
var (
	// ErrMalformedIdentifier is returned when a category id cannot seed the counter.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrDuplicateIdentifier is returned when two records end up with the same identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrMissingColumn is returned when the input table lacks a required column.
	ErrMissingColumn = errors.New("missing column")
)
