package store

import "errors"

// Store errors.
var (
	// ErrIndexOutOfRange is returned when an index-addressed operation
	// receives an index outside the current list. This is defensive:
	// normal flow never passes an invalid index because indices are
	// re-derived from a fresh render after every mutation.
	ErrIndexOutOfRange = errors.New("list index out of range")
)
