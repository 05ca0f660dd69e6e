package diagram

import (
	"fmt"
	"strings"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// RenderMermaid serializes a flowchart model to Mermaid flowchart
// syntax, one node per step with a kind-specific shape and style.
func RenderMermaid(model *Model) string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	for _, node := range model.Nodes {
		lhs, rhs := shapeDelimiters(node.Kind)
		label := node.Label
		if node.Line > 0 {
			label = fmt.Sprintf("%s:%d", label, node.Line)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", node.SID, lhs, escapeLabel(label), rhs))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", node.SID, string(node.Kind)))
	}

	for _, edge := range model.Edges {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", edge.From, edge.To))
	}

	for _, kind := range styledKinds {
		sb.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:%s,color:#ffffff\n",
			string(kind), schema.KindColor(kind), schema.KindColor(kind)))
	}

	return sb.String()
}

// styledKinds fixes the classDef emission order so output is stable.
var styledKinds = []schema.StepKind{
	schema.StepKindStart,
	schema.StepKindImport,
	schema.StepKindDefine,
	schema.StepKindClass,
	schema.StepKindAssign,
	schema.StepKindCall,
	schema.StepKindReturn,
	schema.StepKindCondition,
	schema.StepKindLoop,
}

// shapeDelimiters returns the Mermaid shape delimiters for a step kind.
func shapeDelimiters(kind schema.StepKind) (string, string) {
	switch kind {
	case schema.StepKindCondition:
		return "{", "}"
	case schema.StepKindLoop, schema.StepKindDefine:
		return "([", "])"
	case schema.StepKindClass:
		return "[[", "]]"
	case schema.StepKindReturn:
		return "[/", "/]"
	case schema.StepKindStart:
		return "((", "))"
	default:
		return "[", "]"
	}
}

// escapeLabel strips characters that break Mermaid node labels.
func escapeLabel(label string) string {
	r := strings.NewReplacer(
		`"`, "'",
		"\n", " ",
		"[", "(",
		"]", ")",
		"{", "(",
		"}", ")",
	)
	return r.Replace(label)
}
