package savedlist

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/tidwall/gjson"
)

// ExportVersion is the current export document version.
const ExportVersion = 1

// ExportDocument is the portable form of every saved list.
type ExportDocument struct {
	Version    int                `json:"version"`
	ExportedAt time.Time          `json:"exportedAt"`
	SavedLists []models.SavedList `json:"savedLists"`

	// Invalid counts entries of a parsed payload that could not be decoded.
	Invalid int `json:"-"`
}

// ImportResult reports the outcome of an import. Added includes replacements.
type ImportResult struct {
	Added    int `json:"added"`
	Replaced int `json:"replaced"`
	Skipped  int `json:"skipped"`
}

// Decider is asked whether incoming should replace existing when both share a name.
type Decider func(existing, incoming models.SavedList) bool

// Export returns a document holding every saved list.
func (s *Store) Export(now time.Time) ExportDocument {
	return ExportDocument{
		Version:    ExportVersion,
		ExportedAt: now.UTC(),
		SavedLists: s.List(),
	}
}

// ParseExport validates the shape of an import payload and decodes it.
// Entries that cannot be decoded are counted in Invalid rather than failing
// the whole payload.
func ParseExport(data []byte) (ExportDocument, error) {
	if !gjson.ValidBytes(data) {
		return ExportDocument{}, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidFormat)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ExportDocument{}, fmt.Errorf("%w: payload is not an object", ErrInvalidFormat)
	}

	lists := root.Get("savedLists")
	if !lists.Exists() {
		return ExportDocument{}, fmt.Errorf("%w: savedLists is missing", ErrInvalidFormat)
	}
	if !lists.IsArray() {
		return ExportDocument{}, fmt.Errorf("%w: savedLists is not a list", ErrInvalidFormat)
	}

	version := int(root.Get("version").Int())
	if version > ExportVersion {
		return ExportDocument{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, version)
	}

	doc := ExportDocument{Version: version}
	if ts := root.Get("exportedAt"); ts.Exists() {
		doc.ExportedAt, _ = time.Parse(time.RFC3339Nano, ts.String())
	}
	for _, item := range lists.Array() {
		var list models.SavedList
		if err := json.Unmarshal([]byte(item.Raw), &list); err != nil {
			doc.Invalid++
			continue
		}
		doc.SavedLists = append(doc.SavedLists, list)
	}
	return doc, nil
}

// Import merges doc into the store. Lists whose name matches an existing one
// are passed to decide; a nil decide skips every collision.
func (s *Store) Import(doc ExportDocument, decide Decider, now time.Time) ImportResult {
	res := ImportResult{Skipped: doc.Invalid}
	for _, incoming := range doc.SavedLists {
		incoming.Name = strings.TrimSpace(incoming.Name)
		incoming.Players = cleanPlayers(incoming.Players)
		if incoming.Name == "" || len(incoming.Players) == 0 {
			res.Skipped++
			continue
		}
		if incoming.CreatedAt == "" {
			incoming.CreatedAt = dateLabel(now)
		}

		idx := s.indexOf(incoming.Name)
		if idx >= 0 {
			existing := s.lists[idx]
			if decide == nil || !decide(cloneList(existing), cloneList(incoming)) {
				res.Skipped++
				continue
			}
			incoming.ID = existing.ID
			s.lists[idx] = incoming
			res.Added++
			res.Replaced++
			continue
		}

		if incoming.ID == "" || s.idTaken(incoming.ID) {
			incoming.ID = s.newID()
		}
		s.lists = append(s.lists, incoming)
		res.Added++
	}
	return res
}

func cleanPlayers(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return slices.Clip(out)
}
