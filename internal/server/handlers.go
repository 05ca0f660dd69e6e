package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chillax-ai/codemap/internal/diagram"
)

// handleLoadCodemap validates an analyzer payload and swaps it into the
// scene. The previous map is replaced wholesale.
func (s *Server) handleLoadCodemap(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}

	model, result, err := s.deps.Workspace.LoadAnalysis(r.Context(), raw)
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"revision": model.Revision,
		"nodes":    model.Nodes,
		"edges":    model.Edges,
		"stats":    result.Stats,
	})
}

// handleGetCodemap returns the current model and analysis stats.
func (s *Server) handleGetCodemap(w http.ResponseWriter, r *http.Request) {
	analysis := s.deps.Workspace.Analysis()
	if analysis == nil {
		writeError(w, http.StatusNotFound, "no code map loaded")
		return
	}

	model := s.deps.Workspace.Scene().Model()
	writeJSON(w, http.StatusOK, map[string]any{
		"revision": model.Revision,
		"nodes":    model.Nodes,
		"edges":    model.Edges,
		"stats":    analysis.Stats,
	})
}

// handleSearch matches modules by keyword against paths, function names,
// and class names. Keywords come comma- or space-separated in ?q=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	keywords := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(keywords) == 0 {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	matches, err := s.deps.Workspace.Search(keywords)
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"keywords": keywords,
		"modules":  matches,
		"count":    len(matches),
	})
}

// handleFilter evaluates a node predicate and returns matching node IDs.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Engine     string `json:"engine"`
		Expression string `json:"expression"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if body.Engine == "" {
		writeError(w, http.StatusBadRequest, "engine is required")
		return
	}

	ids, err := s.deps.Workspace.Filter(r.Context(), body.Engine, body.Expression)
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"engine":  body.Engine,
		"matched": ids,
		"count":   len(ids),
	})
}

// handleQuery runs a jq expression over the analysis document.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Expression string `json:"expression"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	results, err := s.deps.Workspace.Query(r.Context(), body.Expression)
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleLoadTrace validates a trace payload and loads it into the
// playback controller, starting a fresh session.
func (s *Server) handleLoadTrace(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
		return
	}

	sessionID, trace, err := s.deps.Workspace.LoadTrace(raw)
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"file":       trace.File,
		"steps":      len(trace.Steps),
		"mermaid":    diagram.RenderMermaid(diagram.FromTrace(trace)),
	})
}

// handleDiagramMermaid renders the loaded trace as Mermaid text.
func (s *Server) handleDiagramMermaid(w http.ResponseWriter, r *http.Request) {
	trace := s.deps.Workspace.Trace()
	if trace == nil {
		writeError(w, http.StatusNotFound, "no trace loaded")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, diagram.RenderMermaid(diagram.FromTrace(trace)))
}

// handleDiagramPNG renders the loaded trace as a PNG image.
func (s *Server) handleDiagramPNG(w http.ResponseWriter, r *http.Request) {
	trace := s.deps.Workspace.Trace()
	if trace == nil {
		writeError(w, http.StatusNotFound, "no trace loaded")
		return
	}

	png, err := diagram.RenderPNG(r.Context(), diagram.FromTrace(trace))
	if err != nil {
		writeCodemapError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleDiagramText renders the loaded trace as an ASCII tree.
func (s *Server) handleDiagramText(w http.ResponseWriter, r *http.Request) {
	trace := s.deps.Workspace.Trace()
	if trace == nil {
		writeError(w, http.StatusNotFound, "no trace loaded")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, diagram.RenderASCII(diagram.FromTrace(trace)))
}

// handlePlaybackAction dispatches play/pause/step/reset.
func (s *Server) handlePlaybackAction(w http.ResponseWriter, r *http.Request) {
	if s.deps.Workspace.Trace() == nil {
		writeError(w, http.StatusNotFound, "no trace loaded")
		return
	}

	controller := s.deps.Workspace.Controller()
	switch action := r.PathValue("action"); action {
	case "play":
		controller.Play()
	case "pause":
		controller.Pause()
	case "step":
		controller.StepForward()
	case "reset":
		controller.Reset()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", action))
		return
	}

	writeJSON(w, http.StatusOK, controller.Snapshot())
}

// handlePlaybackSpeed sets the speed slider value.
func (s *Server) handlePlaybackSpeed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	controller := s.deps.Workspace.Controller()
	controller.SetSpeed(body.Value)
	writeJSON(w, http.StatusOK, controller.Snapshot())
}

// handlePlaybackState reports the controller snapshot and the current
// highlight frame, if any.
func (s *Server) handlePlaybackState(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"playback": s.deps.Workspace.Controller().Snapshot(),
	}
	if s.deps.Frames != nil {
		if frame := s.deps.Frames.Current(); frame != nil {
			resp["frame"] = frame
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
