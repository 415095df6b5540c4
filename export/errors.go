package export

import "errors"

// ErrUnsupportedFormat is returned for serialization formats outside FormatRegistry.
var ErrUnsupportedFormat = errors.New("unsupported export format")
