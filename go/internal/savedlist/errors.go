package savedlist

import "errors"

var (
	// ErrInvalidName is returned for a blank list name
	ErrInvalidName = errors.New("invalid list name")
	// ErrEmptyRoster is returned when saving a list with no players
	ErrEmptyRoster = errors.New("roster is empty")
	// ErrNameCollision is returned when a list with the same name exists and overwrite was not requested
	ErrNameCollision = errors.New("list name already exists")
	// ErrNotFound is returned when no list matches the requested name
	ErrNotFound = errors.New("list not found")
	// ErrInvalidFormat is returned when an import payload does not have the expected shape
	ErrInvalidFormat = errors.New("invalid import format")
)
