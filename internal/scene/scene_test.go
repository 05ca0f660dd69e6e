package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/pkg/schema"
)

var testBounds = graph.Bounds{Width: 1280, Height: 800}

func analysisFixture() *schema.AnalysisResult {
	return &schema.AnalysisResult{
		Modules: []schema.ModuleInfo{
			{Path: "a.py", Functions: []schema.FunctionInfo{{Name: "f"}}},
			{Path: "b.py", Classes: []schema.ClassInfo{{Name: "C"}}},
		},
		Edges: []schema.ImportEdge{{Source: "a.py", Target: "b.py"}},
	}
}

// settle runs the entrance animation to completion.
func settle(s *Scene) {
	for i := 0; i < 300; i++ {
		s.Advance(1.0 / 60)
	}
}

func TestScene_LoadAnalysisReplacesModel(t *testing.T) {
	s := NewScene(testBounds, Callbacks{}, nil)
	first := s.LoadAnalysis(analysisFixture())
	require.Len(t, first.Nodes, 4)

	second := s.LoadAnalysis(analysisFixture())
	assert.NotEqual(t, first.Revision, second.Revision)
	assert.Same(t, second, s.Model())
}

func TestScene_DragPan(t *testing.T) {
	s := NewScene(testBounds, Callbacks{}, nil)
	s.LoadAnalysis(analysisFixture())

	s.PointerDown(graph.Vec2{X: 100, Y: 100})
	s.PointerMove(graph.Vec2{X: 160, Y: 130})
	s.PointerUp(graph.Vec2{X: 160, Y: 130})

	cam := s.Camera()
	assert.InDelta(t, 60.0, cam.Pan.X, 1e-9)
	assert.InDelta(t, 30.0, cam.Pan.Y, 1e-9)
}

func TestScene_ClickModuleFiresFileSelect(t *testing.T) {
	var selected, fnClicked []string
	s := NewScene(testBounds, Callbacks{
		OnFileSelect:    func(p string) { selected = append(selected, p) },
		OnFunctionClick: func(p string) { fnClicked = append(fnClicked, p) },
	}, nil)
	s.LoadAnalysis(analysisFixture())
	settle(s)

	target := s.Model().NodeByID("a.py")
	require.NotNil(t, target)

	// Identity camera: screen == model coordinates.
	p := target.Current
	s.PointerDown(p)
	s.PointerUp(p)

	assert.Equal(t, []string{"a.py"}, selected)
	assert.Empty(t, fnClicked)
}

func TestScene_ClickMemberFiresFunctionClickWithModulePath(t *testing.T) {
	var selected, fnClicked []string
	s := NewScene(testBounds, Callbacks{
		OnFileSelect:    func(p string) { selected = append(selected, p) },
		OnFunctionClick: func(p string) { fnClicked = append(fnClicked, p) },
	}, nil)
	s.LoadAnalysis(analysisFixture())
	settle(s)

	member := s.Model().NodeByID("a.py::f")
	require.NotNil(t, member)

	s.PointerDown(member.Current)
	s.PointerUp(member.Current)

	// The member may sit within its module's padded hit circle; either
	// way the click resolves to exactly one callback.
	assert.Len(t, append(selected, fnClicked...), 1)
	if len(fnClicked) == 1 {
		assert.Equal(t, "a.py", fnClicked[0])
	}
}

func TestScene_DragIsNotAClick(t *testing.T) {
	var selected []string
	s := NewScene(testBounds, Callbacks{
		OnFileSelect: func(p string) { selected = append(selected, p) },
	}, nil)
	s.LoadAnalysis(analysisFixture())
	settle(s)

	target := s.Model().NodeByID("a.py")
	start := target.Current
	s.PointerDown(start)
	s.PointerMove(start.Add(graph.Vec2{X: 12, Y: 0}))
	s.PointerMove(start)
	s.PointerUp(start)

	assert.Empty(t, selected, "a 24px round trip is a drag, not a click")
}

func TestScene_ClickIgnoresUnstartedNodes(t *testing.T) {
	var selected []string
	s := NewScene(testBounds, Callbacks{
		OnFileSelect: func(p string) { selected = append(selected, p) },
	}, nil)
	s.LoadAnalysis(analysisFixture())
	// No Advance: nothing has started yet.

	target := s.Model().NodeByID("a.py")
	s.PointerDown(target.Current)
	s.PointerUp(target.Current)

	assert.Empty(t, selected)
}

func TestScene_ClickUndoesPanZoom(t *testing.T) {
	var selected []string
	s := NewScene(testBounds, Callbacks{
		OnFileSelect: func(p string) { selected = append(selected, p) },
	}, nil)
	s.LoadAnalysis(analysisFixture())
	settle(s)

	// Pan the map, then click where the node now appears on screen.
	s.PointerDown(graph.Vec2{X: 0, Y: 0})
	s.PointerMove(graph.Vec2{X: 200, Y: 120})
	s.PointerUp(graph.Vec2{X: 200, Y: 120})
	require.Empty(t, selected)

	target := s.Model().NodeByID("a.py")
	screen := s.Camera().ModelToScreen(target.Current)
	s.PointerDown(screen)
	s.PointerUp(screen)

	assert.Equal(t, []string{"a.py"}, selected)
}

func TestScene_ResizeKeepsLayoutAndCamera(t *testing.T) {
	s := NewScene(testBounds, Callbacks{}, nil)
	s.LoadAnalysis(analysisFixture())
	settle(s)

	before := s.Model().NodeByID("a.py").Current
	s.Wheel(graph.Vec2{X: 100, Y: 100}, -1)
	camBefore := s.Camera()

	s.Resize(graph.Bounds{Width: 1920, Height: 1080})

	assert.Equal(t, before, s.Model().NodeByID("a.py").Current)
	assert.Equal(t, camBefore, s.Camera())
}

func TestScene_EmptyAnalysisShowsEmptyState(t *testing.T) {
	s := NewScene(testBounds, Callbacks{}, nil)
	m := s.LoadAnalysis(&schema.AnalysisResult{})
	assert.Empty(t, m.Nodes)
	assert.Empty(t, m.Edges)
	s.Advance(1.0 / 60) // must not panic
	assert.True(t, s.Settled())
}
