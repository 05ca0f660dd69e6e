package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/pkg/schema"
)

var testBounds = graph.Bounds{Width: 1280, Height: 800}

func twoModuleResult() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Modules: []schema.ModuleInfo{
			{Path: "a.py", Functions: []schema.FunctionInfo{{Name: "f"}}},
			{Path: "b.py", Classes: []schema.ClassInfo{{Name: "C"}}},
		},
		Edges: []schema.ImportEdge{{Source: "a.py", Target: "b.py"}},
	}
}

func TestSolve_Deterministic(t *testing.T) {
	m1 := graph.Build(twoModuleResult(), testBounds)
	m2 := graph.Build(twoModuleResult(), testBounds)

	Solve(m1, testBounds)
	Solve(m2, testBounds)

	require.Equal(t, len(m1.Nodes), len(m2.Nodes))
	for i := range m1.Nodes {
		assert.Equal(t, m1.Nodes[i].Target, m2.Nodes[i].Target,
			"node %s diverged between identical runs", m1.Nodes[i].ID)
	}
}

func TestSolve_AllNodesWithinBounds(t *testing.T) {
	result := &schema.AnalysisResult{
		Modules: []schema.ModuleInfo{
			{Path: "a.py", Functions: []schema.FunctionInfo{{Name: "f"}, {Name: "g"}}},
			{Path: "b.py", Classes: []schema.ClassInfo{{Name: "C"}}},
			{Path: "c.py", Functions: []schema.FunctionInfo{{Name: "h"}}},
			{Path: "d.py"},
			{Path: "e.py"},
		},
		Edges: []schema.ImportEdge{
			{Source: "a.py", Target: "b.py"},
			{Source: "b.py", Target: "c.py"},
			{Source: "c.py", Target: "a.py"}, // import cycle is fine
			{Source: "d.py", Target: "e.py"},
		},
	}

	m := graph.Build(result, testBounds)
	Solve(m, testBounds)

	for _, n := range m.Nodes {
		assert.GreaterOrEqual(t, n.Target.X, Margin, "node %s X below margin", n.ID)
		assert.LessOrEqual(t, n.Target.X, testBounds.Width-Margin, "node %s X beyond margin", n.ID)
		assert.GreaterOrEqual(t, n.Target.Y, Margin, "node %s Y below margin", n.ID)
		assert.LessOrEqual(t, n.Target.Y, testBounds.Height-Margin, "node %s Y beyond margin", n.ID)
	}
}

func TestSolve_TwoModuleScenarioInBounds(t *testing.T) {
	m := graph.Build(twoModuleResult(), testBounds)

	require.Len(t, m.Nodes, 4)
	require.Len(t, m.Edges, 3)

	Solve(m, testBounds)

	for _, n := range m.Nodes {
		assert.True(t, n.Target.X >= Margin && n.Target.X <= testBounds.Width-Margin,
			"node %s out of horizontal bounds: %v", n.ID, n.Target)
		assert.True(t, n.Target.Y >= Margin && n.Target.Y <= testBounds.Height-Margin,
			"node %s out of vertical bounds: %v", n.ID, n.Target)
		// Current snaps to the settled target before animation starts.
		assert.Equal(t, n.Target, n.Current)
	}
}

func TestSolve_SpringsSeparateConnectedNodes(t *testing.T) {
	m := graph.Build(twoModuleResult(), testBounds)
	Solve(m, testBounds)

	// Connected module nodes should settle apart, not collapse onto
	// one point; statistical separation only, so just demand nonzero.
	a := m.NodeByID("a.py")
	b := m.NodeByID("b.py")
	require.NotNil(t, a)
	require.NotNil(t, b)
	d := a.Target.Sub(b.Target)
	assert.Greater(t, d.X*d.X+d.Y*d.Y, 1.0)
}

func TestSolve_EmptyAndNilModel(t *testing.T) {
	Solve(nil, testBounds) // must not panic

	m := graph.Build(&schema.AnalysisResult{}, testBounds)
	Solve(m, testBounds)
	assert.Empty(t, m.Nodes)
}

func TestSolve_SingleNodeHeldByGravity(t *testing.T) {
	m := graph.Build(&schema.AnalysisResult{
		Modules: []schema.ModuleInfo{{Path: "solo.py"}},
	}, testBounds)
	Solve(m, testBounds)

	n := m.NodeByID("solo.py")
	require.NotNil(t, n)
	assert.True(t, n.Target.X >= Margin && n.Target.X <= testBounds.Width-Margin)
	assert.True(t, n.Target.Y >= Margin && n.Target.Y <= testBounds.Height-Margin)
}
