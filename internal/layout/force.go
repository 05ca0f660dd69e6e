// Package layout computes final 2-D coordinates for a code map using a
// fixed-iteration force-directed simulation. The solver runs once,
// synchronously, before any animation starts; the render loop never
// observes a partial layout.
package layout

import (
	"math"

	"github.com/chillax-ai/codemap/internal/graph"
)

// Simulation constants. Tuned for module graphs in the tens of nodes;
// changing them changes every layout, so treat them as part of the
// output contract.
const (
	Iterations = 80

	repulsion     = 18000.0
	spring        = 0.015
	restLength    = 70.0
	centerGravity = 0.001
	damping       = 0.85

	// Minimum pair separation is this factor times the radius sum,
	// which keeps the inverse-square term away from the singularity.
	minSeparationFactor = 2.5

	// Margin keeps every node inside the canvas.
	Margin = 40.0
)

// Solve runs the fixed-iteration simulation over the model's nodes and
// edges, overwriting each node's Target (and Current) position with the
// settled coordinates. Deterministic for identical input order and
// bounds. Overlap is discouraged, not forbidden.
func Solve(model *graph.Model, bounds graph.Bounds) {
	if model == nil || len(model.Nodes) == 0 {
		return
	}

	nodes := model.Nodes
	n := len(nodes)

	pos := make([]graph.Vec2, n)
	vel := make([]graph.Vec2, n)
	index := make(map[string]int, n)
	for i, node := range nodes {
		pos[i] = node.Seed
		index[node.ID] = i
	}

	center := graph.Vec2{X: bounds.Width / 2, Y: bounds.Height / 2}

	for iter := 0; iter < Iterations; iter++ {
		force := make([]graph.Vec2, n)

		// Pairwise inverse-square repulsion.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := pos[i].Sub(pos[j])
				dist := math.Hypot(delta.X, delta.Y)
				minSep := minSeparationFactor * (nodes[i].Radius + nodes[j].Radius)
				if dist < minSep {
					dist = minSep
				}
				mag := repulsion / (dist * dist)
				unit := delta.Scale(1 / dist)
				force[i] = force[i].Add(unit.Scale(mag))
				force[j] = force[j].Sub(unit.Scale(mag))
			}
		}

		// Linear springs along every edge toward the rest length.
		for _, e := range model.Edges {
			si, sok := index[e.SourceID]
			ti, tok := index[e.TargetID]
			if !sok || !tok {
				continue
			}
			delta := pos[ti].Sub(pos[si])
			dist := math.Hypot(delta.X, delta.Y)
			if dist == 0 {
				continue
			}
			stretch := dist - restLength
			pull := delta.Scale(1 / dist).Scale(spring * stretch)
			force[si] = force[si].Add(pull)
			force[ti] = force[ti].Sub(pull)
		}

		// Weak pull toward the canvas center to stop drift.
		for i := 0; i < n; i++ {
			force[i] = force[i].Add(center.Sub(pos[i]).Scale(centerGravity))
		}

		// Integrate with damping, then clamp to the canvas.
		for i := 0; i < n; i++ {
			vel[i] = vel[i].Add(force[i]).Scale(damping)
			pos[i] = pos[i].Add(vel[i])
			pos[i].X = clamp(pos[i].X, Margin, bounds.Width-Margin)
			pos[i].Y = clamp(pos[i].Y, Margin, bounds.Height-Margin)
		}
	}

	for i, node := range nodes {
		node.Target = pos[i]
		node.Current = pos[i]
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
