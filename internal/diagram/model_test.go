package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// --- Test trace builders ---

func sampleTrace() *schema.Trace {
	return &schema.Trace{
		File: "app.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindStart, Label: "app.py"},
			{ID: 2, SID: "n2", Parent: 1, Kind: schema.StepKindImport, Label: "import os", Line: 1},
			{ID: 3, SID: "n3", Parent: 1, Kind: schema.StepKindDefine, Label: "def main()", Line: 3},
			{ID: 4, SID: "n4", Parent: 3, Kind: schema.StepKindCall, Label: "print(x)", Line: 4},
			{ID: 5, SID: "n5", Parent: 3, Kind: schema.StepKindReturn, Label: "return x", Line: 5},
		},
	}
}

func branchingTrace() *schema.Trace {
	return &schema.Trace{
		File: "branchy.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindStart, Label: "branchy.py"},
			{ID: 2, SID: "n2", Parent: 1, Kind: schema.StepKindCondition, Label: "if ready", Line: 2},
			{ID: 3, SID: "n3", Parent: 2, Kind: schema.StepKindLoop, Label: "for item in items", Line: 3},
			{ID: 4, SID: "n4", Parent: 2, Kind: schema.StepKindClass, Label: "class Widget", Line: 7},
		},
	}
}

func TestFromTrace(t *testing.T) {
	model := FromTrace(sampleTrace())

	assert.Equal(t, "app.py", model.Title)
	require.Len(t, model.Nodes, 5)
	assert.Equal(t, "n1", model.Nodes[0].SID)
	assert.Equal(t, schema.StepKindStart, model.Nodes[0].Kind)
	assert.Equal(t, 3, model.Nodes[2].Line)

	require.Len(t, model.Edges, 4)
	assert.Equal(t, Edge{From: "n1", To: "n2"}, model.Edges[0])
	assert.Equal(t, Edge{From: "n3", To: "n4"}, model.Edges[2])
	assert.Equal(t, Edge{From: "n3", To: "n5"}, model.Edges[3])
}

func TestFromTraceEmpty(t *testing.T) {
	model := FromTrace(&schema.Trace{File: "empty.py"})

	assert.Equal(t, "empty.py", model.Title)
	assert.Empty(t, model.Nodes)
	assert.Empty(t, model.Edges)
}

func TestFromTraceSkipsUnknownParent(t *testing.T) {
	trace := &schema.Trace{
		File: "orphan.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindStart, Label: "orphan.py"},
			{ID: 2, SID: "n2", Parent: 99, Kind: schema.StepKindCall, Label: "f()"},
		},
	}

	model := FromTrace(trace)

	require.Len(t, model.Nodes, 2)
	assert.Empty(t, model.Edges)
}
