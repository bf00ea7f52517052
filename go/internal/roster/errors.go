package roster

import "errors"

var (
	// ErrInvalidName is returned when a player name is blank or too long
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateName is returned when another player already uses the name, ignoring case
	ErrDuplicateName = errors.New("duplicate name")
	// ErrNotFound is returned when no player has the requested id
	ErrNotFound = errors.New("player not found")
	// ErrCapacityExceeded is returned when activating a player would exceed the active cap
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
