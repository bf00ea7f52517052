package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/savedlist"
	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/mcdev12/playclock/go/internal/summary"
	"github.com/rs/zerolog/log"
)

// AddPlayersRequest adds one player by Name or several by comma separated Names
type AddPlayersRequest struct {
	Name  string `json:"name"`
	Names string `json:"names"`
}

// BatchOutcome is one name of a batch add
type BatchOutcome struct {
	Name  string `json:"name"`
	ID    int    `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// AddPlayersResponse reports the outcome of an add
type AddPlayersResponse struct {
	Added    int            `json:"added"`
	Skipped  int            `json:"skipped"`
	Outcomes []BatchOutcome `json:"outcomes"`
}

// RenamePlayerRequest renames a player
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// ToggleResponse reports a player's new active flag
type ToggleResponse struct {
	ID       int  `json:"id"`
	IsActive bool `json:"isActive"`
}

// MovePlayerRequest drops a player onto the slot of TargetID
type MovePlayerRequest struct {
	TargetID int `json:"targetId"`
}

// MoveResponse reports whether the order changed
type MoveResponse struct {
	Moved bool `json:"moved"`
}

// SaveListRequest saves the roster names under Name
type SaveListRequest struct {
	Name      string `json:"name"`
	Overwrite bool   `json:"overwrite"`
}

// LoadListRequest replaces the roster with a saved list
type LoadListRequest struct {
	Name    string `json:"name"`
	Confirm bool   `json:"confirm"`
}

// ImportListsRequest carries an exported document. Replace answers every
// name collision.
type ImportListsRequest struct {
	Replace  bool            `json:"replace"`
	Document json.RawMessage `json:"document"`
}

// ImportListsResponse reports the outcome of an import
type ImportListsResponse struct {
	savedlist.ImportResult
	Declined []string `json:"declined,omitempty"`
}

// ClearRequest confirms wiping all data
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

func newAddPlayersResponse(res roster.BatchResult) AddPlayersResponse {
	out := AddPlayersResponse{
		Added:    res.Added,
		Skipped:  res.Skipped,
		Outcomes: make([]BatchOutcome, 0, len(res.Outcomes)),
	}
	for _, o := range res.Outcomes {
		item := BatchOutcome{Name: o.Name, ID: o.ID}
		if o.Err != nil {
			item.Error = session.Message(o.Err)
		}
		out.Outcomes = append(out.Outcomes, item)
	}
	return out
}

// handleGetState handles GET /api/state
func (s *Service) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleGetSummary handles GET /api/summary
func (s *Service) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	var report summary.Report
	s.with(func(sess *session.Session) {
		report = sess.Summary()
	})
	writeJSON(w, http.StatusOK, report)
}

// handleAddPlayers handles POST /api/players
func (s *Service) handleAddPlayers(w http.ResponseWriter, r *http.Request) {
	var req AddPlayersRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ctx := r.Context()

	if req.Names != "" {
		var res roster.BatchResult
		s.mutate(func(sess *session.Session) {
			res = sess.AddPlayers(ctx, req.Names)
		})
		status := http.StatusOK
		if res.Added > 0 {
			status = http.StatusCreated
		}
		writeJSON(w, status, newAddPlayersResponse(res))
		return
	}

	var (
		id  int
		err error
	)
	s.mutate(func(sess *session.Session) {
		id, err = sess.AddPlayer(ctx, req.Name)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AddPlayersResponse{
		Added:    1,
		Outcomes: []BatchOutcome{{Name: req.Name, ID: id}},
	})
}

// handleRenamePlayer handles PUT /api/players/{id}
func (s *Service) handleRenamePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req RenamePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		err = sess.RenamePlayer(ctx, id, req.Name)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleDeletePlayer handles DELETE /api/players/{id}?confirm=true
func (s *Service) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	c := &confirmation{answer: r.URL.Query().Get("confirm") == "true"}
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		_, err = sess.DeletePlayer(ctx, id, c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if p, declined := c.declined(); declined {
		writeConfirmationRequired(w, p)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleActive handles POST /api/players/{id}/toggle
func (s *Service) handleToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var active bool
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		active, err = sess.ToggleActive(ctx, id)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{ID: id, IsActive: active})
}

// handleMovePlayer handles POST /api/players/{id}/move
func (s *Service) handleMovePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req MovePlayerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var moved bool
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		moved = sess.MovePlayer(ctx, id, req.TargetID)
	})
	writeJSON(w, http.StatusOK, MoveResponse{Moved: moved})
}

// handleResetPlayers handles POST /api/players/reset
func (s *Service) handleResetPlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		sess.ResetPlayers(ctx)
	})
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleMaster handles POST /api/master/{start|pause|reset}
func (s *Service) handleMaster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var op func(sess *session.Session)
	switch action := r.PathValue("action"); action {
	case "start":
		op = func(sess *session.Session) { sess.StartMaster(ctx) }
	case "pause":
		op = func(sess *session.Session) { sess.PauseMaster(ctx) }
	case "reset":
		op = func(sess *session.Session) { sess.ResetMaster(ctx) }
	default:
		writeError(w, fmt.Errorf("%w: unknown master action %q", errBadRequest, action))
		return
	}

	s.mutate(op)
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleGetLists handles GET /api/lists
func (s *Service) handleGetLists(w http.ResponseWriter, r *http.Request) {
	var lists []models.SavedList
	s.with(func(sess *session.Session) {
		lists = sess.SavedLists()
	})
	writeJSON(w, http.StatusOK, lists)
}

// handleSaveList handles POST /api/lists
func (s *Service) handleSaveList(w http.ResponseWriter, r *http.Request) {
	var req SaveListRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		saved models.SavedList
		err   error
	)
	c := &confirmation{answer: req.Overwrite}
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		saved, _, err = sess.SaveList(ctx, req.Name, c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if p, declined := c.declined(); declined {
		writeConfirmationRequired(w, p)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleLoadList handles POST /api/lists/load
func (s *Service) handleLoadList(w http.ResponseWriter, r *http.Request) {
	var req LoadListRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var (
		res roster.BatchResult
		err error
	)
	c := &confirmation{answer: req.Confirm}
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		res, _, err = sess.LoadList(ctx, req.Name, c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if p, declined := c.declined(); declined {
		writeConfirmationRequired(w, p)
		return
	}
	writeJSON(w, http.StatusOK, newAddPlayersResponse(res))
}

// handleExportLists handles GET /api/lists/export
func (s *Service) handleExportLists(w http.ResponseWriter, r *http.Request) {
	var doc savedlist.ExportDocument
	s.with(func(sess *session.Session) {
		doc = sess.ExportLists()
	})

	filename := fmt.Sprintf("roster-lists-%s.json", doc.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, doc)
}

// handleImportLists handles POST /api/lists/import
func (s *Service) handleImportLists(w http.ResponseWriter, r *http.Request) {
	var req ImportListsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Document) == 0 {
		writeError(w, fmt.Errorf("%w: document is required", errBadRequest))
		return
	}

	var (
		res savedlist.ImportResult
		err error
	)
	c := &confirmation{answer: req.Replace}
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		res, err = sess.ImportLists(ctx, req.Document, c)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	out := ImportListsResponse{ImportResult: res}
	if !req.Replace {
		for _, p := range c.prompts {
			out.Declined = append(out.Declined, p.Subject)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleClearAll handles POST /api/clear
func (s *Service) handleClearAll(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c := &confirmation{answer: req.Confirm}
	ctx := r.Context()
	s.mutate(func(sess *session.Session) {
		sess.ClearAll(ctx, c)
	})
	if p, declined := c.declined(); declined {
		writeConfirmationRequired(w, p)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

// handleStateConnection handles GET /ws/state. The client receives the
// current frame right away and then every broadcast.
func (s *Service) handleStateConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.connections.UpgradeConnection(w, r)
	if err != nil {
		// Upgrade already replied to the client
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	event, err := NewEvent(EventTypeState, s.clock.Now(), s.snapshot())
	if err == nil {
		err = conn.SendEvent(event)
	}
	if err != nil {
		log.Warn().Err(err).Str("connection_id", conn.ID).Msg("failed to send initial frame")
	}
}

// handleHealth handles GET /health
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo handles GET /info
func (s *Service) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.GetStats())
}
