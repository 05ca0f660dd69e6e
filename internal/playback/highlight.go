package playback

import "github.com/chillax-ai/codemap/pkg/schema"

// Dimming applied to everything outside the trail. The rendering
// collaborator treats these as the neutral-but-faded baseline.
const (
	DimNodeOpacity = 0.2
	DimEdgeOpacity = 0.1

	trailOpacity = 0.55
	fullOpacity  = 1.0
)

// NodeHighlight styles one diagram node, located by the step's sid.
type NodeHighlight struct {
	SID     string  `json:"sid"`
	Opacity float64 `json:"opacity"`
	Glow    bool    `json:"glow"`
	Color   string  `json:"color"`
}

// EdgeHighlight marks the edge between a parent step's diagram node and
// its child's, drawn with an animated dashed stroke.
type EdgeHighlight struct {
	FromSID string `json:"from_sid"`
	ToSID   string `json:"to_sid"`
	Dashed  bool   `json:"dashed"`
}

// Frame is one complete highlight state: everything dimmed, then the
// trail restored, with the current step glowing. Applied atomically by
// the rendering collaborator and is never observed half-applied.
type Frame struct {
	Index           int             `json:"index"`
	BaseNodeOpacity float64         `json:"base_node_opacity"`
	BaseEdgeOpacity float64         `json:"base_edge_opacity"`
	Nodes           []NodeHighlight `json:"nodes"`
	Edges           []EdgeHighlight `json:"edges"`
}

// Highlighter is the diagram-rendering collaborator contract: apply a
// highlight frame, or clear back to neutral.
type Highlighter interface {
	Apply(frame Frame)
	Clear()
}

// BuildFrame computes the highlight frame for showing step index i.
// Steps 0..i form the trail at reduced-but-visible opacity; step i
// itself gets full opacity and a kind-colored glow. Every trail step
// with a recorded parent contributes a dashed edge highlight.
func BuildFrame(steps []schema.Step, i int) Frame {
	frame := Frame{
		Index:           i,
		BaseNodeOpacity: DimNodeOpacity,
		BaseEdgeOpacity: DimEdgeOpacity,
	}
	if i < 0 || i >= len(steps) {
		return frame
	}

	sidByID := make(map[int]string, i+1)
	for j := 0; j <= i; j++ {
		step := steps[j]
		sidByID[step.ID] = step.SID

		hl := NodeHighlight{
			SID:     step.SID,
			Opacity: trailOpacity,
			Color:   schema.KindColor(step.Kind),
		}
		if j == i {
			hl.Opacity = fullOpacity
			hl.Glow = true
		}
		frame.Nodes = append(frame.Nodes, hl)

		if step.Parent != 0 {
			if parentSID, ok := sidByID[step.Parent]; ok {
				frame.Edges = append(frame.Edges, EdgeHighlight{
					FromSID: parentSID,
					ToSID:   step.SID,
					Dashed:  true,
				})
			}
		}
	}
	return frame
}
