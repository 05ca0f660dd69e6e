// Package diagram builds renderable flowchart models from execution
// traces and serializes them to Mermaid text or Graphviz PNG images.
package diagram

import (
	"github.com/chillax-ai/codemap/pkg/schema"
)

// Node is one flowchart node, keyed by the step's short identifier.
type Node struct {
	SID   string
	Kind  schema.StepKind
	Label string
	Line  int
}

// Edge connects a parent step to one of its children.
type Edge struct {
	From string
	To   string
}

// Model is the renderer-independent flowchart built from a trace.
type Model struct {
	Title string
	Nodes []Node
	Edges []Edge
}

// FromTrace builds a flowchart model from a trace. Steps appear in
// trace order; an edge is added for every step that names a parent.
func FromTrace(trace *schema.Trace) *Model {
	model := &Model{Title: trace.File}
	if len(trace.Steps) == 0 {
		return model
	}

	sidByID := make(map[int]string, len(trace.Steps))
	for _, step := range trace.Steps {
		model.Nodes = append(model.Nodes, Node{
			SID:   step.SID,
			Kind:  step.Kind,
			Label: step.Label,
			Line:  step.Line,
		})
		sidByID[step.ID] = step.SID
	}
	for _, step := range trace.Steps {
		parentSID, ok := sidByID[step.Parent]
		if step.Parent == 0 || !ok {
			continue
		}
		model.Edges = append(model.Edges, Edge{From: parentSID, To: step.SID})
	}
	return model
}
