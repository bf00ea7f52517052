package gateway

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/rs/zerolog/log"
)

// BroadcastNotifier logs notices and pushes them to every WebSocket client.
type BroadcastNotifier struct {
	connections *ConnectionManager
	clock       clockwork.Clock
	logger      session.LogNotifier
}

// NewBroadcastNotifier creates a notifier that broadcasts through cm.
func NewBroadcastNotifier(cm *ConnectionManager, clock clockwork.Clock) *BroadcastNotifier {
	return &BroadcastNotifier{connections: cm, clock: clock}
}

func (n *BroadcastNotifier) Notify(ctx context.Context, notice session.Notice) {
	n.logger.Notify(ctx, notice)

	event, err := NewEvent(EventTypeNotice, n.clock.Now(), notice)
	if err != nil {
		log.Error().Err(err).Msg("failed to build notice event")
		return
	}
	n.connections.Broadcast(event)
}
