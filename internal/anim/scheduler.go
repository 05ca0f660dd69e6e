package anim

import (
	"github.com/chillax-ai/codemap/internal/graph"
)

// Entrance timing. A node drops in from above its target over Duration
// seconds; the edge reveal uses the same duration.
const (
	Duration    = 0.6
	dropHeight  = 50.0
	opacityRamp = 3.0 // opacity reaches 1 over the first third of Duration

	arrowheadThreshold = 0.4
	particleWindowLo   = 0.1
	particleWindowHi   = 0.9
	particleChance     = 0.3
)

// Scheduler advances the entrance timeline of every node and edge in a
// model against a single monotonic clock. All state updates for a frame
// complete before that frame is drawn.
type Scheduler struct {
	model     *graph.Model
	particles *ParticleSystem
	clock     float64
}

// NewScheduler wraps a solved model. Particles may be nil to disable
// decorative effects (they never affect timing either way).
func NewScheduler(model *graph.Model, particles *ParticleSystem) *Scheduler {
	return &Scheduler{model: model, particles: particles}
}

// Model returns the model being animated.
func (s *Scheduler) Model() *graph.Model {
	return s.model
}

// Clock returns the global elapsed time in seconds.
func (s *Scheduler) Clock() float64 {
	return s.clock
}

// Replace swaps in a freshly built model and restarts the clock. The old
// model is discarded wholesale.
func (s *Scheduler) Replace(model *graph.Model) {
	s.model = model
	s.clock = 0
}

// Advance moves the global clock forward by dt seconds and updates every
// entity. Node phases only ever move forward; an edge reveals only after
// both of its endpoints have started.
func (s *Scheduler) Advance(dt float64) {
	if s.model == nil {
		return
	}
	s.clock += dt

	for _, n := range s.model.Nodes {
		s.advanceNode(n, dt)
	}
	for _, e := range s.model.Edges {
		s.advanceEdge(e, dt)
	}
	if s.particles != nil {
		s.particles.Update(dt)
	}
}

func (s *Scheduler) advanceNode(n *graph.Node, dt float64) {
	switch n.Phase {
	case graph.PhaseNotStarted:
		if s.clock < n.StartDelay {
			return
		}
		n.Phase = graph.PhaseEntering
		n.Elapsed = 0
		if s.particles != nil {
			s.particles.Emit(n.Target, n.Color, 8, 3, 0.6, 4)
		}
		fallthrough

	case graph.PhaseEntering:
		n.Elapsed += dt
		p := n.Elapsed / Duration
		if p > 1 {
			p = 1
		}
		n.Current.X = n.Target.X
		n.Current.Y = Lerp(n.Target.Y-dropHeight, n.Target.Y, OutBack(p))
		n.Scale = OutElastic(p)
		n.Opacity = clamp01(p * opacityRamp)
		if p >= 1 {
			n.Phase = graph.PhaseIdle
			n.Current = n.Target
			n.Opacity = 1
		}

	case graph.PhaseIdle:
		// Low-amplitude pulse, consumed by the hover glow only.
		n.PulsePhase += dt * 2
	}
}

func (s *Scheduler) advanceEdge(e *graph.Edge, dt float64) {
	if !e.Started {
		if s.clock < e.StartDelay {
			return
		}
		// Both endpoints must have begun entering before the line grows.
		src := s.model.NodeByID(e.SourceID)
		dst := s.model.NodeByID(e.TargetID)
		if src == nil || dst == nil ||
			src.Phase == graph.PhaseNotStarted || dst.Phase == graph.PhaseNotStarted {
			return
		}
		e.Started = true
		e.Elapsed = 0
	}

	e.Elapsed += dt
	t := e.Elapsed / Duration
	if t > 1 {
		t = 1
	}
	e.RevealProgress = OutCubic(t)

	if s.particles != nil &&
		e.RevealProgress > particleWindowLo && e.RevealProgress < particleWindowHi &&
		s.particles.Chance(particleChance) {
		if tip, ok := s.edgeTip(e); ok {
			s.particles.Emit(tip, e.Color, 2, 1.5, 0.4, 2)
		}
	}
}

// edgeTip is the current end point of the partially revealed line.
func (s *Scheduler) edgeTip(e *graph.Edge) (graph.Vec2, bool) {
	src := s.model.NodeByID(e.SourceID)
	dst := s.model.NodeByID(e.TargetID)
	if src == nil || dst == nil {
		return graph.Vec2{}, false
	}
	return graph.Vec2{
		X: Lerp(src.Current.X, dst.Current.X, e.RevealProgress),
		Y: Lerp(src.Current.Y, dst.Current.Y, e.RevealProgress),
	}, true
}

// ShowArrowhead reports whether the edge has revealed enough of its
// length for the arrowhead to appear.
func ShowArrowhead(e *graph.Edge) bool {
	return e.RevealProgress > arrowheadThreshold
}

// Settled reports whether every node has finished entering and every
// edge is fully revealed.
func (s *Scheduler) Settled() bool {
	if s.model == nil {
		return true
	}
	for _, n := range s.model.Nodes {
		if n.Phase != graph.PhaseIdle {
			return false
		}
	}
	for _, e := range s.model.Edges {
		if e.RevealProgress < 1 {
			return false
		}
	}
	return true
}
