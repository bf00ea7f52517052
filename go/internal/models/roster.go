package models

// SavedList is a named, ordered list of player names. It never carries timer state.
type SavedList struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Players   []string `json:"players"`
	CreatedAt string   `json:"createdAt"` // YYYY-MM-DD
}

// StoredPlayer is a player as written to the persistence adapter
type StoredPlayer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Elapsed  int64  `json:"elapsed"` // milliseconds
	IsActive bool   `json:"isActive"`
}

// StoredState is the document written to the persistence adapter after every
// mutation and read once at startup.
type StoredState struct {
	Players      []StoredPlayer `json:"players"`
	NextPlayerID int            `json:"nextPlayerId"`
	SavedLists   []SavedList    `json:"savedLists"`
}
