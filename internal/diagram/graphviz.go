package diagram

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// RenderPNG renders a flowchart model to a PNG image using graphviz.
func RenderPNG(ctx context.Context, model *Model) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeRender, "initialize graphviz").WithCause(err)
	}
	defer gv.Close()

	gv.SetLayout(graphviz.DOT)

	graph, err := gv.Graph()
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeRender, "create graph").WithCause(err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.TBRank)
	graph.SetBackgroundColor("#0d1117")
	if model.Title != "" {
		graph.SetLabel(model.Title)
		graph.SetFontColor("#c9d1d9")
	}

	gvNodes := make(map[string]*cgraph.Node, len(model.Nodes))
	for _, node := range model.Nodes {
		gvNode, nErr := graph.CreateNodeByName(node.SID)
		if nErr != nil {
			return nil, schema.NewErrorf(schema.ErrCodeRender, "create node %s", node.SID).WithCause(nErr)
		}
		gvNode.SetLabel(node.Label)
		applyNodeStyle(gvNode, node.Kind)
		gvNodes[node.SID] = gvNode
	}

	for _, edge := range model.Edges {
		from, to := gvNodes[edge.From], gvNodes[edge.To]
		if from == nil || to == nil {
			continue
		}
		gvEdge, eErr := graph.CreateEdgeByName("", from, to)
		if eErr != nil {
			return nil, schema.NewErrorf(schema.ErrCodeRender, "create edge %s->%s", edge.From, edge.To).WithCause(eErr)
		}
		gvEdge.SetColor("#8b949e")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.PNG, &buf); err != nil {
		return nil, schema.NewError(schema.ErrCodeRender, "render PNG").WithCause(err)
	}
	return buf.Bytes(), nil
}

// applyNodeStyle maps step kinds to graphviz shapes and the palette's
// fill colors.
func applyNodeStyle(gvNode *cgraph.Node, kind schema.StepKind) {
	switch kind {
	case schema.StepKindCondition:
		gvNode.SetShape(cgraph.DiamondShape)
	case schema.StepKindLoop, schema.StepKindDefine:
		gvNode.SetShape(cgraph.EllipseShape)
	case schema.StepKindClass:
		gvNode.SetShape(cgraph.HexagonShape)
	case schema.StepKindReturn:
		gvNode.SetShape(cgraph.ParallelogramShape)
	case schema.StepKindStart:
		gvNode.SetShape(cgraph.CircleShape)
		gvNode.SetWidth(0.5)
		gvNode.SetHeight(0.5)
	default:
		gvNode.SetShape(cgraph.BoxShape)
	}
	gvNode.SetStyle(cgraph.FilledNodeStyle)
	gvNode.SetFillColor(schema.KindColor(kind))
	gvNode.SetFontColor("white")
}
