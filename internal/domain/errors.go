package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a unique constraint rejects an insert,
	// e.g. two clients racing to create the same chat pair.
	ErrAlreadyExists = errors.New("resource already exists")
)
