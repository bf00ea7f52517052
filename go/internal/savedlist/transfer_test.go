package savedlist

import (
	"encoding/json"
	"testing"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore()
	_, _ = src.Save("Squad1", []string{"A", "B"}, false, day)
	_, _ = src.Save("Squad2", []string{"C"}, false, day)

	data, err := json.Marshal(src.Export(day))
	require.NoError(t, err)

	doc, err := ParseExport(data)
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, doc.Version)
	assert.True(t, doc.ExportedAt.Equal(day))

	dst := newTestStore()
	res := dst.Import(doc, nil, day)
	assert.Equal(t, ImportResult{Added: 2}, res)

	want := map[string][]string{}
	for _, l := range src.List() {
		want[l.Name] = l.Players
	}
	got := map[string][]string{}
	for _, l := range dst.List() {
		got[l.Name] = l.Players
	}
	assert.Equal(t, want, got)
}

func TestParseExportRejectsBadShapes(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"savedLists": [`,
		"not an object":   `[1, 2]`,
		"missing lists":   `{"version": 1}`,
		"lists not array": `{"version": 1, "savedLists": {"name": "x"}}`,
		"future version":  `{"version": 99, "savedLists": []}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseExport([]byte(payload))
			require.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParseExportCountsUndecodableEntries(t *testing.T) {
	doc, err := ParseExport([]byte(`{"savedLists": [{"name": "A", "players": ["x"]}, {"name": 5}, "junk"]}`))
	require.NoError(t, err)
	assert.Len(t, doc.SavedLists, 1)
	assert.Equal(t, 2, doc.Invalid)
}

func TestImportCollisionDecisions(t *testing.T) {
	s := newTestStore()
	_, _ = s.Save("Keep", []string{"A"}, false, day)
	_, _ = s.Save("Swap", []string{"B"}, false, day)

	doc := ExportDocument{SavedLists: []models.SavedList{
		{Name: "keep", Players: []string{"X"}},
		{Name: "SWAP", Players: []string{"Y"}},
		{Name: "New", Players: []string{"Z"}},
	}}
	var asked []string
	res := s.Import(doc, func(existing, incoming models.SavedList) bool {
		asked = append(asked, existing.Name)
		return incoming.Name == "SWAP"
	}, day)

	assert.Equal(t, []string{"Keep", "Swap"}, asked)
	assert.Equal(t, ImportResult{Added: 2, Replaced: 1, Skipped: 1}, res)

	keep, _ := s.Load("Keep")
	assert.Equal(t, []string{"A"}, keep)
	swap, ok := s.Get("swap")
	require.True(t, ok)
	assert.Equal(t, []string{"Y"}, swap.Players)
	assert.Equal(t, "list-2", swap.ID, "replacement keeps the existing id")
	assert.Equal(t, 3, s.Len())
}

func TestImportSkipsInvalidEntries(t *testing.T) {
	s := newTestStore()
	doc := ExportDocument{
		Invalid: 1,
		SavedLists: []models.SavedList{
			{Name: " ", Players: []string{"A"}},
			{Name: "Empty", Players: []string{" ", ""}},
			{Name: "Ok", Players: []string{" A ", ""}},
		},
	}
	res := s.Import(doc, nil, day)
	assert.Equal(t, ImportResult{Added: 1, Skipped: 3}, res)

	ok, _ := s.Get("Ok")
	assert.Equal(t, []string{"A"}, ok.Players)
	assert.Equal(t, "2025-03-01", ok.CreatedAt)
}

func TestImportReassignsTakenIDs(t *testing.T) {
	s := newTestStore()
	existing, _ := s.Save("A", []string{"x"}, false, day)

	res := s.Import(ExportDocument{SavedLists: []models.SavedList{
		{ID: existing.ID, Name: "B", Players: []string{"y"}},
	}}, nil, day)
	assert.Equal(t, 1, res.Added)

	b, _ := s.Get("B")
	assert.NotEqual(t, existing.ID, b.ID)
}
