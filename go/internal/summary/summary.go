// Package summary projects the roster into a report ordered by playing time.
package summary

import (
	"slices"
	"time"

	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/stopwatch"
)

// Row is one line of the summary report.
type Row struct {
	Rank      int           `json:"rank"`
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Elapsed   time.Duration `json:"-"`
	ElapsedMs int64         `json:"elapsedMs"`
	Formatted string        `json:"elapsed"`
	IsActive  bool          `json:"isActive"`
}

// Report is a summary frozen at a single instant.
type Report struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	Rows          []Row     `json:"rows"`
	Total         string    `json:"total"`
	ActivePlayers int       `json:"activePlayers"`
}

// Summarize orders players by elapsed time, longest first. Players with equal
// time keep their roster order. Every elapsed value is read at now.
func Summarize(entities []*roster.Entity, now time.Time) Report {
	rows := make([]Row, 0, len(entities))
	var total time.Duration
	active := 0
	for _, e := range entities {
		elapsed := e.Clock.Elapsed(now)
		total += elapsed
		if e.Active {
			active++
		}
		rows = append(rows, Row{
			ID:        e.ID,
			Name:      e.Name,
			Elapsed:   elapsed,
			ElapsedMs: elapsed.Milliseconds(),
			Formatted: stopwatch.Format(elapsed),
			IsActive:  e.Active,
		})
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.Elapsed > b.Elapsed:
			return -1
		case a.Elapsed < b.Elapsed:
			return 1
		}
		return 0
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return Report{
		GeneratedAt:   now,
		Rows:          rows,
		Total:         stopwatch.Format(total),
		ActivePlayers: active,
	}
}
