package storage

import "errors"

// ErrNoState is returned by Load when nothing has been saved yet.
var ErrNoState = errors.New("no saved state")
