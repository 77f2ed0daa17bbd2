package kobo

import "errors"

var (
	// ErrStoreUnavailable indicates the database file cannot be opened or
	// does not look like a Kobo annotation database.
	ErrStoreUnavailable = errors.New("annotation store unavailable")

	// ErrBookNotFound indicates no annotated book exists with the given ID.
	ErrBookNotFound = errors.New("book not found")
)
