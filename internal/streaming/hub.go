package streaming

import "context"

// Event types emitted by the visualization core. The Electron shell (the
// diagram-rendering collaborator) consumes these over SSE.
const (
	EventModelReplaced = "model.replaced"
	EventStepShown     = "step.shown"
	EventHighlight     = "step.highlight"
	EventPlaybackState = "playback.state"
	EventNodeSelected  = "node.selected"
)

// StreamEvent is a real-time event emitted by the scene or the playback
// controller.
type StreamEvent struct {
	SessionID string `json:"session_id,omitempty"`
	File      string `json:"file,omitempty"`
	EventType string `json:"event_type"`
	Payload   any    `json:"payload,omitempty"`
}

// EventFilter specifies which events a subscriber wants to receive.
type EventFilter struct {
	SessionID  string   `json:"session_id,omitempty"`
	EventTypes []string `json:"event_types,omitempty"`
}

// EventHub provides pub/sub for real-time visualization events.
type EventHub interface {
	Publish(ctx context.Context, event StreamEvent) error
	Subscribe(ctx context.Context, filter EventFilter) (<-chan StreamEvent, func(), error)
}
