package models

import "errors"

var (
	// ErrNotFound: no row matched the requested id.
	ErrNotFound = errors.New("not found")

	// ErrConflict: unique-constraint violation, or a delete that would break
	// a live reference (e.g. removing an upload file that is still attached).
	ErrConflict = errors.New("conflict")
)
