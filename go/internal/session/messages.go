package session

import (
	"errors"

	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/savedlist"
)

// Message turns an operation error into text suitable for the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, roster.ErrInvalidName):
		return "Please enter a player name of at most 20 characters"
	case errors.Is(err, roster.ErrDuplicateName):
		return "A player with this name already exists"
	case errors.Is(err, roster.ErrNotFound):
		return "That player no longer exists"
	case errors.Is(err, roster.ErrCapacityExceeded):
		return "The maximum number of active players has been reached"
	case errors.Is(err, savedlist.ErrInvalidName):
		return "Please enter a name for the list"
	case errors.Is(err, savedlist.ErrEmptyRoster):
		return "Add some players before saving a list"
	case errors.Is(err, savedlist.ErrNameCollision):
		return "A saved list with this name already exists"
	case errors.Is(err, savedlist.ErrNotFound):
		return "No saved list with that name"
	case errors.Is(err, savedlist.ErrInvalidFormat):
		return "The file is not a valid saved lists export"
	default:
		return "Something went wrong"
	}
}
