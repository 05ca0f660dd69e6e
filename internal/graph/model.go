package graph

import "strings"

// MemberSeparator joins a module path and a member name into a node ID,
// e.g. "auth.py::login_user".
const MemberSeparator = "::"

// NodeKind classifies a code map node.
type NodeKind string

const (
	NodeKindModule   NodeKind = "module"
	NodeKindFunction NodeKind = "function"
	NodeKindClass    NodeKind = "class"
)

// EdgeKind distinguishes membership edges from import relationships.
type EdgeKind string

const (
	EdgeKindParentChild EdgeKind = "parent-child"
	EdgeKindCrossModule EdgeKind = "cross-module-import"
)

// AnimPhase is the entrance lifecycle of a node. It only advances forward:
// not-started → entering → idle.
type AnimPhase int

const (
	PhaseNotStarted AnimPhase = iota
	PhaseEntering
	PhaseIdle
)

func (p AnimPhase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseIdle:
		return "idle"
	default:
		return "not-started"
	}
}

// Default node colors, matching the IDE's dark palette.
const (
	ColorModule      = "#58a6ff"
	ColorFunction    = "#bc8cff"
	ColorClass       = "#d29922"
	ColorCrossModule = "#39d2c0"
	ColorParentChild = "#58a6ff"
)

// Vec2 is a 2-D point or vector in canvas space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v − o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Bounds is the drawable canvas size in pixels.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a single entity on the code map. Identity is a path-like string:
// the module path for modules, or "module::member" for functions and classes.
// Everything but position, phase, pulse, and opacity is immutable after build.
type Node struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Kind       NodeKind `json:"kind"`
	Seed       Vec2     `json:"seed"`
	Target     Vec2     `json:"target"`
	Current    Vec2     `json:"current"`
	Radius     float64  `json:"radius"`
	Color      string   `json:"color"`
	StartDelay float64  `json:"start_delay"` // seconds on the global clock

	Phase      AnimPhase `json:"-"`
	Elapsed    float64   `json:"-"` // local animation time since start
	Scale      float64   `json:"-"`
	Opacity    float64   `json:"opacity"`
	PulsePhase float64   `json:"-"`
}

// Edge connects two nodes by ID, never by live handle, so the model stays
// serializable even when the underlying import relation contains cycles.
type Edge struct {
	SourceID   string   `json:"source"`
	TargetID   string   `json:"target"`
	Kind       EdgeKind `json:"kind"`
	Color      string   `json:"color"`
	StartDelay float64  `json:"start_delay"`

	Elapsed        float64 `json:"-"`
	Started        bool    `json:"-"`
	RevealProgress float64 `json:"reveal_progress"`
}

// Model is one complete code map: the builder's output, replaced wholesale
// on every analyze call.
type Model struct {
	Revision string  `json:"revision"`
	Nodes    []*Node `json:"nodes"`
	Edges    []*Edge `json:"edges"`

	index map[string]*Node
}

// NodeByID returns the node with the given ID, or nil.
func (m *Model) NodeByID(id string) *Node {
	if m == nil {
		return nil
	}
	return m.index[id]
}

// MemberID builds a member node ID from its module path and member name.
func MemberID(modulePath, member string) string {
	return modulePath + MemberSeparator + member
}

// IsMember reports whether the node ID names a function or class rather
// than a module.
func IsMember(id string) bool {
	return strings.Contains(id, MemberSeparator)
}

// OwningModule returns the module path portion of a node ID. For module
// IDs it returns the ID unchanged.
func OwningModule(id string) string {
	if i := strings.Index(id, MemberSeparator); i >= 0 {
		return id[:i]
	}
	return id
}
