package graph

import (
	"math"

	"github.com/google/uuid"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// Placement constants. Module nodes sit on a circle scaled to the canvas;
// member nodes orbit their module at a fixed distance.
const (
	moduleCircleFactor = 0.32
	childOrbitRadius   = 50.0
	moduleRadius       = 28.0
	memberRadius       = 20.0

	moduleDelayStep   = 0.10 // seconds between module entrances
	childDelayStep    = 0.06
	childEdgeLag      = 0.02
	crossEdgeStep     = 0.12

	maxChildFunctions = 2
	maxChildClasses   = 1
)

// Build converts an analysis result into a fresh Model with seed positions
// and stagger delays. Module nodes are placed on a circle in input order;
// up to two functions and one class per module become child nodes. Edges
// that reference a module absent from the input are dropped.
//
// An empty or nil analysis yields an empty model (the presentation layer
// shows an empty state, not an error).
func Build(result *schema.AnalysisResult, bounds Bounds) *Model {
	model := &Model{
		Revision: uuid.New().String(),
		index:    make(map[string]*Node),
	}
	if result == nil || len(result.Modules) == 0 {
		return model
	}

	center := Vec2{bounds.Width / 2, bounds.Height / 2}
	circleR := moduleCircleFactor * math.Min(bounds.Width, bounds.Height)
	moduleCount := len(result.Modules)

	for i, mod := range result.Modules {
		angle := 2*math.Pi*float64(i)/float64(moduleCount) - math.Pi/2
		seed := Vec2{
			X: center.X + circleR*math.Cos(angle),
			Y: center.Y + circleR*math.Sin(angle),
		}
		moduleDelay := float64(i) * moduleDelayStep
		model.addNode(&Node{
			ID:         mod.Path,
			Label:      mod.Path,
			Kind:       NodeKindModule,
			Seed:       seed,
			Target:     seed,
			Current:    seed,
			Radius:     moduleRadius,
			Color:      ColorModule,
			StartDelay: moduleDelay,
			Scale:      0,
		})

		model.addChildren(mod, seed, moduleDelay)
	}

	for i, edge := range result.Edges {
		// Unknown module references are dropped, not reported.
		if model.index[edge.Source] == nil || model.index[edge.Target] == nil {
			continue
		}
		model.Edges = append(model.Edges, &Edge{
			SourceID:   edge.Source,
			TargetID:   edge.Target,
			Kind:       EdgeKindCrossModule,
			Color:      ColorCrossModule,
			StartDelay: float64(moduleCount)*moduleDelayStep + float64(i)*crossEdgeStep,
		})
	}

	return model
}

// addChildren creates up to two function nodes and one class node around
// the module's seed position, each with its membership edge.
func (m *Model) addChildren(mod schema.ModuleInfo, parentSeed Vec2, parentDelay float64) {
	type child struct {
		name  string
		kind  NodeKind
		color string
	}

	var children []child
	for _, fn := range mod.Functions {
		if len(children) == maxChildFunctions {
			break
		}
		children = append(children, child{fn.Name, NodeKindFunction, ColorFunction})
	}
	for i, cls := range mod.Classes {
		if i == maxChildClasses {
			break
		}
		children = append(children, child{cls.Name, NodeKindClass, ColorClass})
	}
	if len(children) == 0 {
		return
	}

	for idx, c := range children {
		angle := 2*math.Pi*float64(idx)/float64(len(children)) - math.Pi/2
		seed := Vec2{
			X: parentSeed.X + childOrbitRadius*math.Cos(angle),
			Y: parentSeed.Y + childOrbitRadius*math.Sin(angle),
		}
		delay := parentDelay + float64(idx+1)*childDelayStep
		id := MemberID(mod.Path, c.name)
		m.addNode(&Node{
			ID:         id,
			Label:      c.name,
			Kind:       c.kind,
			Seed:       seed,
			Target:     seed,
			Current:    seed,
			Radius:     memberRadius,
			Color:      c.color,
			StartDelay: delay,
			Scale:      0,
		})
		m.Edges = append(m.Edges, &Edge{
			SourceID:   mod.Path,
			TargetID:   id,
			Kind:       EdgeKindParentChild,
			Color:      ColorParentChild,
			StartDelay: delay + childEdgeLag,
		})
	}
}

func (m *Model) addNode(n *Node) {
	m.Nodes = append(m.Nodes, n)
	m.index[n.ID] = n
}
