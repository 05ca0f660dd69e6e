package schema

// StepKind classifies an execution-trace step by the statement it represents.
type StepKind string

const (
	StepKindStart     StepKind = "start"
	StepKindImport    StepKind = "import"
	StepKindDefine    StepKind = "define"
	StepKindClass     StepKind = "class"
	StepKindAssign    StepKind = "assign"
	StepKindCall      StepKind = "call"
	StepKindReturn    StepKind = "return"
	StepKindCondition StepKind = "condition"
	StepKindLoop      StepKind = "loop"
)

// KindColor returns the accent color for a step kind, matching the
// IDE's dark palette.
func KindColor(kind StepKind) string {
	switch kind {
	case StepKindStart:
		return "#58a6ff"
	case StepKindImport:
		return "#39d2c0"
	case StepKindDefine:
		return "#bc8cff"
	case StepKindClass:
		return "#d29922"
	case StepKindCall:
		return "#3fb950"
	case StepKindReturn:
		return "#f85149"
	case StepKindCondition:
		return "#d29922"
	case StepKindLoop:
		return "#f778ba"
	default:
		return "#8b949e"
	}
}

// Step is one entry in an execution trace. SID is the identifier the
// diagram-rendering collaborator uses to locate the corresponding diagram
// node; Parent references an earlier step's ID, forming a trace tree.
type Step struct {
	ID     int      `json:"id"`
	SID    string   `json:"sid"`
	Parent int      `json:"parent,omitempty"` // 0 means no parent
	Kind   StepKind `json:"kind"`
	Label  string   `json:"label"`
	Detail string   `json:"detail,omitempty"`
	Line   int      `json:"line,omitempty"`
	Color  string   `json:"color,omitempty"`
}

// Trace is the ordered execution-trace list produced by the external
// analyzer for a single file. The list is totally ordered by index.
type Trace struct {
	File  string `json:"file"`
	Steps []Step `json:"steps"`
}

// TraceEdge is a parent→child relationship between two steps, derived
// from the Parent references.
type TraceEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Edges derives the parent→child edge list from the steps.
func (t *Trace) Edges() []TraceEdge {
	var edges []TraceEdge
	for _, s := range t.Steps {
		if s.Parent != 0 {
			edges = append(edges, TraceEdge{From: s.Parent, To: s.ID})
		}
	}
	return edges
}

// CheckIntegrity enforces the structural invariants JSON Schema cannot
// express: SIDs unique within the trace, and every Parent referencing an
// earlier step's ID.
func (t *Trace) CheckIntegrity() error {
	seenSIDs := make(map[string]struct{}, len(t.Steps))
	seenIDs := make(map[int]struct{}, len(t.Steps))
	for i, s := range t.Steps {
		if _, dup := seenSIDs[s.SID]; dup {
			return NewErrorf(ErrCodeValidation, "duplicate sid %q at step index %d", s.SID, i)
		}
		seenSIDs[s.SID] = struct{}{}
		if s.Parent != 0 {
			if _, ok := seenIDs[s.Parent]; !ok {
				return NewErrorf(ErrCodeValidation,
					"step %d references parent %d which is not an earlier step", s.ID, s.Parent)
			}
		}
		seenIDs[s.ID] = struct{}{}
	}
	return nil
}
