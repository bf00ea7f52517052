package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/savedlist"
	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConfirmationResponse is returned when a destructive operation was not
// confirmed. Clients ask the user and repeat the request with the flag set.
type ConfirmationResponse struct {
	ConfirmationRequired bool           `json:"confirmationRequired"`
	Prompt               session.Prompt `json:"prompt"`
}

// StatusFor maps an operation error to an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, roster.ErrNotFound), errors.Is(err, savedlist.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, roster.ErrCapacityExceeded),
		errors.Is(err, roster.ErrDuplicateName),
		errors.Is(err, savedlist.ErrNameCollision):
		return http.StatusConflict
	case errors.Is(err, roster.ErrInvalidName),
		errors.Is(err, savedlist.ErrInvalidName),
		errors.Is(err, savedlist.ErrEmptyRoster):
		return http.StatusUnprocessableEntity
	case errors.Is(err, savedlist.ErrInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	msg := session.Message(err)
	if errors.Is(err, errBadRequest) {
		msg = err.Error()
	}
	writeJSON(w, StatusFor(err), ErrorResponse{Error: msg})
}

func writeConfirmationRequired(w http.ResponseWriter, p session.Prompt) {
	writeJSON(w, http.StatusPreconditionRequired, ConfirmationResponse{
		ConfirmationRequired: true,
		Prompt:               p,
	})
}

// decodeBody reads an optional JSON body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid player id %q", errBadRequest, r.PathValue("id"))
	}
	return id, nil
}

// confirmation answers every prompt of one request with the flag the client
// sent and remembers what was asked.
type confirmation struct {
	answer  bool
	prompts []session.Prompt
}

func (c *confirmation) Confirm(_ context.Context, p session.Prompt) bool {
	c.prompts = append(c.prompts, p)
	return c.answer
}

// declined returns the first prompt that was answered with no.
func (c *confirmation) declined() (session.Prompt, bool) {
	if c.answer || len(c.prompts) == 0 {
		return session.Prompt{}, false
	}
	return c.prompts[0], true
}
