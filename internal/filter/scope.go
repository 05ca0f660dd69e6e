package filter

import (
	"encoding/json"

	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// NodeScope builds the evaluation environment for one code-map node.
// Predicates see three top-level variables:
//   - node:   id, label, kind, module, member
//   - module: the owning module's analysis entry (path, functions, classes, imports)
//   - stats:  aggregate counts for the whole analysis
func NodeScope(node *graph.Node, result *schema.AnalysisResult) map[string]any {
	modulePath := node.ID
	member := ""
	if graph.IsMember(node.ID) {
		modulePath = graph.OwningModule(node.ID)
		member = node.Label
	}

	scope := map[string]any{
		"node": map[string]any{
			"id":     node.ID,
			"label":  node.Label,
			"kind":   string(node.Kind),
			"module": modulePath,
			"member": member,
		},
		"module": map[string]any{},
		"stats":  map[string]any{},
	}

	if result == nil {
		return scope
	}

	for i := range result.Modules {
		if result.Modules[i].Path == modulePath {
			scope["module"] = toDocument(result.Modules[i])
			break
		}
	}
	scope["stats"] = toDocument(result.Stats)

	return scope
}

// AnalysisDocument converts an analysis result into the generic JSON
// form jq queries operate on.
func AnalysisDocument(result *schema.AnalysisResult) map[string]any {
	if result == nil {
		return map[string]any{}
	}
	return toDocument(result)
}

// toDocument round-trips a value through JSON, yielding only
// map[string]any, []any, float64, string, bool, and nil.
func toDocument(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}
