package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// kindTag returns a short ASCII indicator for a step kind.
func kindTag(kind schema.StepKind) string {
	switch kind {
	case schema.StepKindStart:
		return "[START]"
	case schema.StepKindImport:
		return "[IMP]"
	case schema.StepKindDefine:
		return "[DEF]"
	case schema.StepKindClass:
		return "[CLS]"
	case schema.StepKindAssign:
		return "[ASSIGN]"
	case schema.StepKindCall:
		return "[CALL]"
	case schema.StepKindReturn:
		return "[RET]"
	case schema.StepKindCondition:
		return "[IF]"
	case schema.StepKindLoop:
		return "[LOOP]"
	default:
		return ""
	}
}

// RenderASCII renders a flowchart model as an indented text tree,
// children under their parents with box-drawing connectors. Roots are
// steps no edge points at.
func RenderASCII(model *Model) string {
	var b strings.Builder

	if model.Title != "" {
		b.WriteString(fmt.Sprintf("=== %s ===\n\n", model.Title))
	}

	children := make(map[string][]string, len(model.Nodes))
	hasParent := make(map[string]bool, len(model.Nodes))
	for _, edge := range model.Edges {
		children[edge.From] = append(children[edge.From], edge.To)
		hasParent[edge.To] = true
	}
	nodeBySID := make(map[string]Node, len(model.Nodes))
	for _, node := range model.Nodes {
		nodeBySID[node.SID] = node
	}

	var roots []string
	for _, node := range model.Nodes {
		if !hasParent[node.SID] {
			roots = append(roots, node.SID)
		}
	}
	sort.Strings(roots)

	for _, root := range roots {
		renderSubtree(&b, nodeBySID, children, root, "", true)
	}
	return b.String()
}

func renderSubtree(b *strings.Builder, nodes map[string]Node, children map[string][]string, sid, prefix string, last bool) {
	node, ok := nodes[sid]
	if !ok {
		return
	}

	connector := "├── "
	childPrefix := prefix + "│   "
	if last {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	if prefix == "" && last {
		connector = ""
		childPrefix = "    "
	}

	line := node.Label
	if node.Line > 0 {
		line = fmt.Sprintf("%s:%d", line, node.Line)
	}
	b.WriteString(fmt.Sprintf("%s%s%s %s\n", prefix, connector, kindTag(node.Kind), line))

	kids := children[sid]
	for i, kid := range kids {
		renderSubtree(b, nodes, children, kid, childPrefix, i == len(kids)-1)
	}
}
