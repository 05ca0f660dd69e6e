// Package workspace owns the currently loaded analysis result and
// execution trace, and the operations over them. The HTTP API and the
// MCP server are both thin surfaces over one Workspace.
package workspace

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chillax-ai/codemap/internal/filter"
	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/internal/logging"
	"github.com/chillax-ai/codemap/internal/playback"
	"github.com/chillax-ai/codemap/internal/scene"
	"github.com/chillax-ai/codemap/internal/streaming"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// Deps holds the collaborators a Workspace coordinates.
type Deps struct {
	Scene      *scene.Scene
	Controller *playback.Controller
	Validator  *schema.Validator
	Selector   *filter.Selector
	Hub        streaming.EventHub
	Logger     *slog.Logger
}

// Workspace is the single holder of loaded documents. Loading replaces
// the previous document wholesale; there is no merging.
type Workspace struct {
	deps Deps

	mu       sync.RWMutex
	analysis *schema.AnalysisResult
	trace    *schema.Trace
}

// New creates a Workspace with nothing loaded.
func New(deps Deps) *Workspace {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Workspace{deps: deps}
}

// Scene returns the render/interaction scene.
func (w *Workspace) Scene() *scene.Scene { return w.deps.Scene }

// Controller returns the playback controller.
func (w *Workspace) Controller() *playback.Controller { return w.deps.Controller }

// LoadAnalysis validates an analyzer payload, swaps it into the scene,
// and announces the replacement on the event hub.
func (w *Workspace) LoadAnalysis(ctx context.Context, raw []byte) (*graph.Model, *schema.AnalysisResult, error) {
	result, err := w.deps.Validator.ValidateAnalysis(raw)
	if err != nil {
		return nil, nil, err
	}
	return w.ApplyAnalysis(ctx, result), result, nil
}

// ApplyAnalysis swaps an already validated analysis into the scene and
// announces the replacement. Used by the refresh loop, which validates
// at the source.
func (w *Workspace) ApplyAnalysis(ctx context.Context, result *schema.AnalysisResult) *graph.Model {
	model := w.deps.Scene.LoadAnalysis(result)

	w.mu.Lock()
	w.analysis = result
	w.mu.Unlock()

	ctx = logging.WithRevision(ctx, model.Revision)
	if w.deps.Hub != nil {
		err := w.deps.Hub.Publish(ctx, streaming.StreamEvent{
			EventType: streaming.EventModelReplaced,
			Payload: map[string]any{
				"revision": model.Revision,
				"nodes":    len(model.Nodes),
				"edges":    len(model.Edges),
				"stats":    result.Stats,
			},
		})
		if err != nil {
			logging.LogWith(ctx, w.deps.Logger).Error("publish model.replaced failed",
				"error", err.Error())
		}
	}

	return model
}

// Analysis returns the loaded analysis, or nil.
func (w *Workspace) Analysis() *schema.AnalysisResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.analysis
}

// LoadTrace validates a trace payload and loads it into the playback
// controller, starting a fresh session.
func (w *Workspace) LoadTrace(raw []byte) (string, *schema.Trace, error) {
	trace, err := w.deps.Validator.ValidateTrace(raw)
	if err != nil {
		return "", nil, err
	}

	sessionID := w.deps.Controller.Load(trace)

	w.mu.Lock()
	w.trace = trace
	w.mu.Unlock()

	return sessionID, trace, nil
}

// Trace returns the loaded trace, or nil.
func (w *Workspace) Trace() *schema.Trace {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.trace
}

// Filter evaluates a node predicate against the current model and
// returns matching node IDs.
func (w *Workspace) Filter(ctx context.Context, engine, expression string) ([]string, error) {
	analysis := w.Analysis()
	if analysis == nil {
		return nil, schema.NewError(schema.ErrCodeNotFound, "no code map loaded")
	}
	return w.deps.Selector.Select(ctx, engine, expression, w.deps.Scene.Model(), analysis)
}

// Query runs a jq expression over the loaded analysis document.
func (w *Workspace) Query(ctx context.Context, expression string) ([]any, error) {
	analysis := w.Analysis()
	if analysis == nil {
		return nil, schema.NewError(schema.ErrCodeNotFound, "no code map loaded")
	}
	return w.deps.Selector.Query(ctx, expression, analysis)
}

// Search matches modules by keyword against paths, function names, and
// class names.
func (w *Workspace) Search(keywords []string) ([]schema.ModuleInfo, error) {
	analysis := w.Analysis()
	if analysis == nil {
		return nil, schema.NewError(schema.ErrCodeNotFound, "no code map loaded")
	}
	return schema.Search(analysis, keywords), nil
}
