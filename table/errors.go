package table

import "errors"

// Common table errors.
var (
	// ErrUnsupportedFormat is returned for file extensions other than .xlsx and .csv.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrNoHeader is returned when a sheet has no header row.
	ErrNoHeader = errors.New("missing header row")
)
