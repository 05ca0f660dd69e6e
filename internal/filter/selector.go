package filter

import (
	"context"

	"github.com/chillax-ai/codemap/internal/graph"
	"github.com/chillax-ai/codemap/pkg/schema"
)

// Selector runs node predicates and document queries against a loaded
// code map. It owns one instance of each engine; compiled-expression
// caches live for the Selector's lifetime.
type Selector struct {
	engines map[string]Engine
	jq      *GoJQEngine
}

// NewSelector creates a Selector with all three engines registered.
func NewSelector() (*Selector, error) {
	celEngine, err := NewCELEngine()
	if err != nil {
		return nil, err
	}
	jq := NewGoJQEngine()

	engines := make(map[string]Engine, 3)
	for _, e := range []Engine{celEngine, NewExprEngine(), jq} {
		engines[e.Name()] = e
	}
	return &Selector{engines: engines, jq: jq}, nil
}

// Engines returns the registered engine names.
func (s *Selector) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}

// Select evaluates a predicate against every node in the model and
// returns the IDs of nodes where the result is truthy, in model order.
// The jq engine receives the same per-node scope as the others.
func (s *Selector) Select(ctx context.Context, engineName, expression string, model *graph.Model, result *schema.AnalysisResult) ([]string, error) {
	engine, ok := s.engines[engineName]
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeValidation, "unknown filter engine %q", engineName)
	}

	matched := make([]string, 0)
	for _, node := range model.Nodes {
		out, err := engine.Evaluate(ctx, expression, NodeScope(node, result))
		if err != nil {
			return nil, err
		}
		if truthy(out) {
			matched = append(matched, node.ID)
		}
	}
	return matched, nil
}

// Query runs a jq expression over the full analysis document and
// returns all outputs.
func (s *Selector) Query(ctx context.Context, expression string, result *schema.AnalysisResult) ([]any, error) {
	return s.jq.EvaluateAll(ctx, expression, AnalysisDocument(result))
}

// truthy follows jq semantics: false and null are falsy, everything
// else (including 0 and "") is truthy.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}
