// Package filter evaluates user-supplied expressions against code-map
// nodes and analysis documents. Three engines: CEL and Expr for node
// predicates, GoJQ for document queries.
package filter

import "context"

// Engine evaluates one expression language.
type Engine interface {
	Name() string
	Evaluate(ctx context.Context, expression string, data map[string]any) (any, error)
}
