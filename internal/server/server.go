// Package server exposes the visualization core over HTTP: loading
// analysis results and traces, driving step playback, filtering, and a
// Server-Sent Events stream the IDE shell subscribes to.
package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/chillax-ai/codemap/internal/streaming"
	"github.com/chillax-ai/codemap/internal/workspace"
)

// Deps holds the dependencies for the API server.
type Deps struct {
	Workspace *workspace.Workspace
	Frames    *FrameStore
	Hub       streaming.EventHub
	Logger    *slog.Logger
}

// Server serves the codemap HTTP API.
type Server struct {
	deps Deps
}

// NewServer creates a new API server.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return &Server{deps: deps}
}

// Handler returns the HTTP handler for the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Code map.
	mux.HandleFunc("POST /api/codemap", s.handleLoadCodemap)
	mux.HandleFunc("GET /api/codemap", s.handleGetCodemap)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/filter", s.handleFilter)
	mux.HandleFunc("POST /api/query", s.handleQuery)

	// Trace and diagrams.
	mux.HandleFunc("POST /api/trace", s.handleLoadTrace)
	mux.HandleFunc("GET /api/trace/diagram.mmd", s.handleDiagramMermaid)
	mux.HandleFunc("GET /api/trace/diagram.png", s.handleDiagramPNG)
	mux.HandleFunc("GET /api/trace/diagram.txt", s.handleDiagramText)

	// Playback.
	mux.HandleFunc("POST /api/playback/{action}", s.handlePlaybackAction)
	mux.HandleFunc("PUT /api/playback/speed", s.handlePlaybackSpeed)
	mux.HandleFunc("GET /api/playback", s.handlePlaybackState)

	// SSE stream.
	mux.HandleFunc("GET /api/events", s.handleSSE)

	mux.HandleFunc("GET /api/health", s.handleHealth)

	return mux
}
