package timetable

import "errors"

// Extraction failure kinds. Structural failures abort immediately;
// everything else is collected into the result's warning list.
var (
	// ErrUnsupportedFormat means the file extension is not one of the
	// accepted spreadsheet or delimited-text formats.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMalformedTable means the grid cannot be interpreted at all
	// (too few rows, or no day columns in the header).
	ErrMalformedTable = errors.New("malformed timetable")

	// ErrNoEntries means the grid was structurally valid but yielded
	// zero usable cells.
	ErrNoEntries = errors.New("no valid entries")
)
