package models

// PlayerState is a read-only view of one player at a point in time
type PlayerState struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ElapsedMs int64  `json:"elapsedMs"`
	Elapsed   string `json:"elapsed"`
	IsActive  bool   `json:"isActive"`
	IsRunning bool   `json:"isRunning"`
}

// ClockState is a read-only view of the master clock
type ClockState struct {
	ElapsedMs int64  `json:"elapsedMs"`
	Elapsed   string `json:"elapsed"`
	IsRunning bool   `json:"isRunning"`
}

// SessionState is an immutable frame of the whole session handed to renderers
type SessionState struct {
	Master      ClockState    `json:"master"`
	Players     []PlayerState `json:"players"`
	ActiveCount int           `json:"activeCount"`
	MaxActive   int           `json:"maxActive"`
	SavedLists  []SavedList   `json:"savedLists"`
}
