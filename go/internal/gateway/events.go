package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope for everything pushed to WebSocket clients
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType represents the type of a pushed event
type EventType string

const (
	// EventTypeState carries a models.SessionState frame.
	EventTypeState EventType = "state"
	// EventTypeNotice carries a session.Notice.
	EventTypeNotice EventType = "notice"
)

// NewEvent wraps payload in an event envelope
func NewEvent(eventType EventType, at time.Time, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: at.UTC(),
		Data:      data,
	}, nil
}
