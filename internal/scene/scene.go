// Package scene owns the per-frame update loop, the pan/zoom camera, and
// pointer interaction for the code map. It is driven by a single render
// goroutine; model replacement from other goroutines is a guarded pointer
// swap, so a frame never observes a half-replaced model.
package scene

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/chillax-ai/codemap/internal/anim"
	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/internal/layout"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// clickSlop is the maximum accumulated pointer travel, in pixels, for a
// down→up pair to count as a click rather than a drag.
const clickSlop = 5.0

// hitPadding widens every node's hit circle slightly.
const hitPadding = 5.0

// Callbacks are the navigation hooks the scene invokes on node clicks.
// Both receive the module path (for members, the owning module's path).
type Callbacks struct {
	OnFileSelect    func(path string)
	OnFunctionClick func(path string)
}

// Scene is the render/interaction loop state for one code map panel.
type Scene struct {
	mu        sync.Mutex
	bounds    graph.Bounds
	camera    Camera
	scheduler *anim.Scheduler
	particles *anim.ParticleSystem
	callbacks Callbacks
	logger    *slog.Logger

	pointerDown  bool
	downPointer  graph.Vec2
	downPan      graph.Vec2
	lastPointer  graph.Vec2
	travel       float64
}

// NewScene creates a scene with an empty model.
func NewScene(bounds graph.Bounds, callbacks Callbacks, logger *slog.Logger) *Scene {
	if logger == nil {
		logger = slog.Default()
	}
	particles := anim.NewParticleSystem(rand.New(rand.NewSource(time.Now().UnixNano())))
	return &Scene{
		bounds:    bounds,
		camera:    NewCamera(),
		scheduler: anim.NewScheduler(graph.Build(nil, bounds), particles),
		particles: particles,
		callbacks: callbacks,
		logger:    logger,
	}
}

// LoadAnalysis builds and solves a fresh model from the analysis result
// and swaps it in atomically. The solver runs to completion here, before
// the render loop can see any of the new nodes.
func (s *Scene) LoadAnalysis(result *schema.AnalysisResult) *graph.Model {
	s.mu.Lock()
	defer s.mu.Unlock()

	model := graph.Build(result, s.bounds)
	layout.Solve(model, s.bounds)
	s.scheduler.Replace(model)

	s.logger.Info("code map replaced",
		slog.String("revision", model.Revision),
		slog.Int("nodes", len(model.Nodes)),
		slog.Int("edges", len(model.Edges)),
	)
	return model
}

// Model returns the current model. Safe snapshot for read-only use.
func (s *Scene) Model() *graph.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Model()
}

// Camera returns the current transform.
func (s *Scene) Camera() Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// Advance runs one frame's worth of animation updates. All entity state
// for the frame is settled when this returns, so the caller can draw.
func (s *Scene) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Advance(dt)
}

// Settled reports whether the entrance animation has finished.
func (s *Scene) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Settled()
}

// Particles exposes the decorative particle system for drawing.
func (s *Scene) Particles() *anim.ParticleSystem {
	return s.particles
}

// Resize re-measures the drawable surface. Layout is not recomputed and
// the camera is left alone; only future builds use the new bounds.
func (s *Scene) Resize(bounds graph.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
}

// PointerDown begins a potential drag or click at p (screen pixels).
func (s *Scene) PointerDown(p graph.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerDown = true
	s.downPointer = p
	s.lastPointer = p
	s.downPan = s.camera.Pan
	s.travel = 0
}

// PointerMove drags the pan while the pointer is held down.
func (s *Scene) PointerMove(p graph.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pointerDown {
		return
	}
	d := p.Sub(s.lastPointer)
	s.travel += abs(d.X) + abs(d.Y)
	s.lastPointer = p
	s.camera.Pan = s.downPan.Add(p.Sub(s.downPointer))
}

// PointerUp ends the gesture. A pair with under 5px of travel is a
// click: the topmost started node under the cursor is resolved and the
// matching navigation callback fires (outside the lock).
func (s *Scene) PointerUp(p graph.Vec2) {
	s.mu.Lock()
	if !s.pointerDown {
		s.mu.Unlock()
		return
	}
	s.pointerDown = false
	isClick := s.travel < clickSlop

	var hit *graph.Node
	if isClick {
		hit = s.hitTest(p)
	}
	cb := s.callbacks
	s.mu.Unlock()

	if hit == nil {
		return
	}
	if graph.IsMember(hit.ID) {
		if cb.OnFunctionClick != nil {
			cb.OnFunctionClick(graph.OwningModule(hit.ID))
		}
		return
	}
	if cb.OnFileSelect != nil {
		cb.OnFileSelect(hit.ID)
	}
}

// Wheel applies a cursor-anchored zoom step.
func (s *Scene) Wheel(cursor graph.Vec2, deltaY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.ApplyWheel(cursor, deltaY)
}

// hitTest resolves the first started node whose padded radius contains
// the screen point, compared in model space. Caller holds the lock.
func (s *Scene) hitTest(screen graph.Vec2) *graph.Node {
	p := s.camera.ScreenToModel(screen)
	for _, n := range s.scheduler.Model().Nodes {
		if n.Phase == graph.PhaseNotStarted {
			continue
		}
		d := p.Sub(n.Current)
		r := n.Radius + hitPadding
		if d.X*d.X+d.Y*d.Y <= r*r {
			return n
		}
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
