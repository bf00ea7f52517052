// Package roster holds the ordered player registry and the activation rules
// that couple player timers to the master timer.
package roster

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcdev12/playclock/go/internal/stopwatch"
	"golang.org/x/text/cases"
)

// MaxNameLength is the maximum player name length in characters.
const MaxNameLength = 20

// Entity is a single roster player.
type Entity struct {
	ID     int
	Name   string
	Clock  *stopwatch.Stopwatch
	Active bool
}

// BatchOutcome records what happened to one name of a batch add.
type BatchOutcome struct {
	Name string
	ID   int
	Err  error
}

// BatchResult summarizes a batch add.
type BatchResult struct {
	Added    int
	Skipped  int
	Outcomes []BatchOutcome
}

// Registry is the ordered collection of players. It owns id assignment and
// name uniqueness. It is not safe for concurrent use.
type Registry struct {
	entities []*Entity
	nextID   int
}

// NewRegistry creates an empty registry whose first id is 1.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// NameKey returns the comparison key used for case-insensitive name matching.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// ValidateName trims name and checks its length.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return trimmed, nil
}

// Add appends a new player and returns its id.
func (r *Registry) Add(name string) (int, error) {
	trimmed, err := ValidateName(name)
	if err != nil {
		return 0, err
	}
	if r.nameTaken(trimmed, 0) {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
	}

	e := &Entity{
		ID:    r.nextID,
		Name:  trimmed,
		Clock: stopwatch.New(),
	}
	r.nextID++
	r.entities = append(r.entities, e)
	return e.ID, nil
}

// AddBatch adds every comma separated name in raw. Invalid or duplicate
// names are skipped without affecting the rest.
func (r *Registry) AddBatch(raw string) BatchResult {
	return r.AddAll(strings.Split(raw, ","))
}

// AddAll adds names in order, skipping blank, invalid or duplicate ones.
func (r *Registry) AddAll(names []string) BatchResult {
	var res BatchResult
	for _, token := range names {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		id, err := r.Add(name)
		res.Outcomes = append(res.Outcomes, BatchOutcome{Name: name, ID: id, Err: err})
		if err != nil {
			res.Skipped++
			continue
		}
		res.Added++
	}
	return res
}

// Remove stops the player's clock and drops it from the order.
func (r *Registry) Remove(id int, now time.Time) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	r.entities[idx].Clock.Stop(now)
	r.entities = slices.Delete(r.entities, idx, idx+1)
	return nil
}

// Rename changes a player's name in place.
func (r *Registry) Rename(id int, name string) error {
	e, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	trimmed, err := ValidateName(name)
	if err != nil {
		return err
	}
	if r.nameTaken(trimmed, id) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
	}
	e.Name = trimmed
	return nil
}

// Reorder moves movedID into targetID's slot. Players between the two shift
// by one. Unknown ids and movedID == targetID are ignored.
func (r *Registry) Reorder(movedID, targetID int) bool {
	if movedID == targetID {
		return false
	}
	from := r.indexOf(movedID)
	to := r.indexOf(targetID)
	if from < 0 || to < 0 {
		return false
	}
	moved := r.entities[from]
	r.entities = slices.Delete(r.entities, from, from+1)
	r.entities = slices.Insert(r.entities, to, moved)
	return true
}

// Get returns the player with the given id.
func (r *Registry) Get(id int) (*Entity, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return r.entities[idx], true
}

// Entities returns the players in roster order. The slice is a copy; the
// entities are shared.
func (r *Registry) Entities() []*Entity {
	return slices.Clone(r.entities)
}

// Names returns player names in roster order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entities))
	for _, e := range r.entities {
		names = append(names, e.Name)
	}
	return names
}

// Len returns the number of players.
func (r *Registry) Len() int {
	return len(r.entities)
}

// NextID returns the id the next added player will receive.
func (r *Registry) NextID() int {
	return r.nextID
}

// Clear stops and drops every player. Ids are not reused afterwards.
func (r *Registry) Clear(now time.Time) {
	for _, e := range r.entities {
		e.Clock.Stop(now)
	}
	r.entities = nil
}

// Restore replaces the registry content with previously saved players. The
// next id is raised past the highest restored id if needed.
func (r *Registry) Restore(entities []*Entity, nextID int) {
	r.entities = slices.Clone(entities)
	r.nextID = max(nextID, 1)
	for _, e := range r.entities {
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
}

func (r *Registry) indexOf(id int) int {
	return slices.IndexFunc(r.entities, func(e *Entity) bool { return e.ID == id })
}

func (r *Registry) nameTaken(name string, exceptID int) bool {
	key := NameKey(name)
	return slices.ContainsFunc(r.entities, func(e *Entity) bool {
		return e.ID != exceptID && NameKey(e.Name) == key
	})
}
