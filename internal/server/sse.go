package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/chillax-ai/codemap/internal/streaming"
)

// handleSSE streams visualization events to the client via Server-Sent
// Events. ?session= narrows to one playback session; ?types= is a
// comma-separated event-type allowlist. The hub replays its retained
// events first, so a webview reconnecting mid-session is repainted with
// the current model and playback state before live events resume.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	filter := streaming.EventFilter{
		SessionID: r.URL.Query().Get("session"),
	}
	if types := r.URL.Query().Get("types"); types != "" {
		filter.EventTypes = strings.Split(types, ",")
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch, cancel, err := s.deps.Hub.Subscribe(r.Context(), filter)
	if err != nil {
		s.deps.Logger.Error("SSE subscribe failed", "error", err)
		http.Error(w, "subscribe failed", http.StatusInternalServerError)
		return
	}
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, data)
			flusher.Flush()
		}
	}
}
