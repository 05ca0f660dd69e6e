package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillax-ai/codemap/pkg/schema"
)

func chainTrace(n int) []schema.Step {
	steps := make([]schema.Step, n)
	for i := range steps {
		steps[i] = schema.Step{
			ID:    i + 1,
			SID:   "n" + string(rune('0'+i+1)),
			Kind:  schema.StepKindCall,
			Label: "step",
		}
		if i > 0 {
			steps[i].Parent = i
		}
	}
	steps[0].Kind = schema.StepKindStart
	return steps
}

func TestBuildFrame_TrailInvariant(t *testing.T) {
	steps := chainTrace(5)

	for i := 0; i < len(steps); i++ {
		f := BuildFrame(steps, i)

		require.Len(t, f.Nodes, i+1, "trail covers exactly steps 0..i")
		assert.InDelta(t, DimNodeOpacity, f.BaseNodeOpacity, 1e-9)
		assert.InDelta(t, DimEdgeOpacity, f.BaseEdgeOpacity, 1e-9)

		for j, hl := range f.Nodes {
			assert.GreaterOrEqual(t, hl.Opacity, 0.5, "trail step %d visible", j)
			if j == i {
				assert.True(t, hl.Glow)
				assert.InDelta(t, 1.0, hl.Opacity, 1e-9)
			} else {
				assert.False(t, hl.Glow)
			}
		}

		// Every non-root trail step contributes its parent edge.
		assert.Len(t, f.Edges, i)
		for _, e := range f.Edges {
			assert.True(t, e.Dashed)
		}
	}
}

func TestBuildFrame_OutOfRange(t *testing.T) {
	steps := chainTrace(2)

	for _, i := range []int{-1, 2, 50} {
		f := BuildFrame(steps, i)
		assert.Empty(t, f.Nodes)
		assert.Empty(t, f.Edges)
		assert.Equal(t, i, f.Index)
	}
}

func TestBuildFrame_BranchingTrace(t *testing.T) {
	// A condition with two children: both reference the same parent.
	steps := []schema.Step{
		{ID: 1, SID: "n1", Kind: schema.StepKindStart, Label: "entry"},
		{ID: 2, SID: "n2", Parent: 1, Kind: schema.StepKindCondition, Label: "if x"},
		{ID: 3, SID: "n3", Parent: 2, Kind: schema.StepKindCall, Label: "a()"},
		{ID: 4, SID: "n4", Parent: 2, Kind: schema.StepKindCall, Label: "b()"},
	}

	f := BuildFrame(steps, 3)
	require.Len(t, f.Edges, 3)
	assert.Equal(t, "n2", f.Edges[1].FromSID)
	assert.Equal(t, "n3", f.Edges[1].ToSID)
	assert.Equal(t, "n2", f.Edges[2].FromSID)
	assert.Equal(t, "n4", f.Edges[2].ToSID)
}

func TestKindColor(t *testing.T) {
	assert.Equal(t, "#58a6ff", schema.KindColor(schema.StepKindStart))
	assert.Equal(t, "#3fb950", schema.KindColor(schema.StepKindCall))
	assert.Equal(t, "#f85149", schema.KindColor(schema.StepKindReturn))
	assert.Equal(t, "#8b949e", schema.KindColor(schema.StepKindAssign))
	assert.Equal(t, "#8b949e", schema.KindColor(schema.StepKind("unknown")))
}
