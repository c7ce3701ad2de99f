package points

import "errors"

var (
	// ErrNotFound is returned when an operation references a user,
	// category, task or reward that is not in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName rejects catalog entities whose name is blank after
	// trimming.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrInvalidPoints rejects non-positive point values on tasks and
	// rewards.
	ErrInvalidPoints = errors.New("point value must be a positive integer")

	// ErrModeMismatch is returned when restoring a snapshot taken under a
	// different accounting mode.
	ErrModeMismatch = errors.New("snapshot mode does not match service mode")

	// ErrNoSnapshot is returned by a Repository whose backing store holds
	// no snapshot yet.
	ErrNoSnapshot = errors.New("no snapshot stored")
)
