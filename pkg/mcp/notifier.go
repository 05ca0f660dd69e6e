package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/chillax-ai/codemap/internal/streaming"
)

// PlaybackNotifier forwards playback events from the hub to the MCP
// client that loaded the trace, as MCP push notifications.
// Best-effort: events for sessions with no connected client are dropped.
type PlaybackNotifier struct {
	mcpServer *server.MCPServer
	sessions  *SessionRegistry
	hub       streaming.EventHub
	logger    *slog.Logger
}

// NewPlaybackNotifier creates a notifier bridging the hub to MCP push.
func NewPlaybackNotifier(mcpServer *server.MCPServer, sessions *SessionRegistry, hub streaming.EventHub, logger *slog.Logger) *PlaybackNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackNotifier{
		mcpServer: mcpServer,
		sessions:  sessions,
		hub:       hub,
		logger:    logger,
	}
}

// Run subscribes to playback events and forwards them until ctx is
// cancelled.
func (n *PlaybackNotifier) Run(ctx context.Context) error {
	ch, cancel, err := n.hub.Subscribe(ctx, streaming.EventFilter{
		EventTypes: []string{streaming.EventStepShown, streaming.EventPlaybackState},
	})
	if err != nil {
		return err
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			n.forward(event)
		}
	}
}

func (n *PlaybackNotifier) forward(event streaming.StreamEvent) {
	mcpSession, ok := n.sessions.SessionFor(event.SessionID)
	if !ok {
		return // no client owns this session, best-effort
	}

	err := n.mcpServer.SendNotificationToSpecificClient(mcpSession, "notifications/message", map[string]any{
		"event_type": event.EventType,
		"session_id": event.SessionID,
		"file":       event.File,
		"payload":    event.Payload,
	})
	if errors.Is(err, server.ErrSessionNotFound) {
		// Session expired between lookup and send.
		n.sessions.Remove(mcpSession)
		return
	}
	if err != nil {
		n.logger.Warn("playback notification failed",
			slog.String("session_id", event.SessionID),
			slog.String("error", err.Error()))
	}
}
