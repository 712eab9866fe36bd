package domain

import "errors"

var (
	// ErrNotFound is returned when a path or id resolves to nothing.
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned by mutations on a document locked by
	// another user.
	ErrLocked = errors.New("locked by another user")
	// ErrDuplicateName is returned when a sibling with the same name
	// already exists and duplicates are not permitted.
	ErrDuplicateName = errors.New("name already exists in folder")
	// ErrNotEmpty is returned when removing a folder that still has
	// children.
	ErrNotEmpty = errors.New("folder is not empty")
)
