package extract

import "errors"

var (
	// ErrUnsupportedFormat indicates the artifact's extension maps to no known format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDecode indicates a plain-text artifact contained invalid UTF-8.
	ErrDecode = errors.New("invalid text encoding")

	// ErrMalformedDocument indicates a document could not be parsed at all.
	ErrMalformedDocument = errors.New("malformed document")
)
