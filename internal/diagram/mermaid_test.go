package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillax-ai/codemap/pkg/schema"
)

func TestRenderMermaidShapes(t *testing.T) {
	out := RenderMermaid(FromTrace(branchingTrace()))

	require.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, `n1(("branchy.py"))`)
	assert.Contains(t, out, `n2{"if ready:2"}`)
	assert.Contains(t, out, `n3(["for item in items:3"])`)
	assert.Contains(t, out, `n4[["class Widget:7"]]`)
}

func TestRenderMermaidDefaultAndReturnShapes(t *testing.T) {
	trace := &schema.Trace{
		File: "shapes.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindAssign, Label: "x = 1", Line: 1},
			{ID: 2, SID: "n2", Parent: 1, Kind: schema.StepKindReturn, Label: "return x", Line: 2},
			{ID: 3, SID: "n3", Parent: 1, Kind: schema.StepKindDefine, Label: "def f()", Line: 3},
		},
	}

	out := RenderMermaid(FromTrace(trace))

	assert.Contains(t, out, `n1["x = 1:1"]`)
	assert.Contains(t, out, `n2[/"return x:2"/]`)
	assert.Contains(t, out, `n3(["def f():3"])`)
}

func TestRenderMermaidEdgesAndClasses(t *testing.T) {
	out := RenderMermaid(FromTrace(sampleTrace()))

	assert.Contains(t, out, "n1 --> n2")
	assert.Contains(t, out, "n3 --> n5")
	assert.Contains(t, out, "class n1 start")
	assert.Contains(t, out, "class n4 call")
	assert.Contains(t, out, "classDef start fill:#58a6ff")
	assert.Contains(t, out, "classDef return fill:#f85149")
	assert.Contains(t, out, "classDef loop fill:#f778ba")
}

func TestRenderMermaidEscapesLabels(t *testing.T) {
	trace := &schema.Trace{
		File: "tricky.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindAssign, Label: `d = {"k": v[0]}`, Line: 1},
		},
	}

	out := RenderMermaid(FromTrace(trace))

	assert.Contains(t, out, `n1["d = ('k': v(0)):1"]`)
	assert.NotContains(t, out, `{"k"`)
}

func TestRenderMermaidEmpty(t *testing.T) {
	out := RenderMermaid(&Model{Title: "empty.py"})

	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, "classDef start")
	assert.NotContains(t, out, "-->")
}
