package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chillax-ai/codemap/internal/diagram"
)

// handleLoad validates an analysis result and replaces the code map.
func (s *CodemapServer) handleLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analysis := mcp.ParseStringMap(req, "analysis", nil)
	if analysis == nil {
		return mcp.NewToolResultError("analysis is required"), nil
	}

	raw, err := json.Marshal(analysis)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis: %v", err)), nil
	}

	model, result, loadErr := s.workspace.LoadAnalysis(ctx, raw)
	if loadErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", loadErr)), nil
	}

	return marshalResult(map[string]any{
		"revision": model.Revision,
		"nodes":    len(model.Nodes),
		"edges":    len(model.Edges),
		"stats":    result.Stats,
	})
}

// handleQuery runs a jq expression over the analysis document.
func (s *CodemapServer) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError("expression is required"), nil
	}

	results, queryErr := s.workspace.Query(ctx, expression)
	if queryErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", queryErr)), nil
	}

	return marshalResult(map[string]any{"results": results})
}

// handleSearch matches modules by keyword.
func (s *CodemapServer) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("keywords")
	if err != nil {
		return mcp.NewToolResultError("keywords is required"), nil
	}

	keywords := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(keywords) == 0 {
		return mcp.NewToolResultError("keywords is required"), nil
	}

	matches, searchErr := s.workspace.Search(keywords)
	if searchErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", searchErr)), nil
	}

	return marshalResult(map[string]any{
		"modules": matches,
		"count":   len(matches),
	})
}

// handleFilter selects code-map nodes matching a predicate.
func (s *CodemapServer) handleFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engine, err := req.RequireString("engine")
	if err != nil {
		return mcp.NewToolResultError("engine is required"), nil
	}
	expression, err := req.RequireString("expression")
	if err != nil {
		return mcp.NewToolResultError("expression is required"), nil
	}

	ids, filterErr := s.workspace.Filter(ctx, engine, expression)
	if filterErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("filter failed: %v", filterErr)), nil
	}

	return marshalResult(map[string]any{
		"matched": ids,
		"count":   len(ids),
	})
}

// handleTraceLoad validates a trace and starts a fresh playback session.
func (s *CodemapServer) handleTraceLoad(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trace := mcp.ParseStringMap(req, "trace", nil)
	if trace == nil {
		return mcp.NewToolResultError("trace is required"), nil
	}

	raw, err := json.Marshal(trace)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trace: %v", err)), nil
	}

	sessionID, loaded, loadErr := s.workspace.LoadTrace(raw)
	if loadErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", loadErr)), nil
	}

	// Map the playback session to the MCP client for notifications.
	s.captureSession(ctx, sessionID)

	return marshalResult(map[string]any{
		"session_id": sessionID,
		"file":       loaded.File,
		"steps":      len(loaded.Steps),
	})
}

// handleTraceDiagram renders the loaded trace as a flowchart.
func (s *CodemapServer) handleTraceDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := req.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError("format is required"), nil
	}

	trace := s.workspace.Trace()
	if trace == nil {
		return mcp.NewToolResultError("no trace loaded"), nil
	}

	model := diagram.FromTrace(trace)
	switch format {
	case "mermaid":
		return mcp.NewToolResultText(diagram.RenderMermaid(model)), nil
	case "ascii":
		return mcp.NewToolResultText(diagram.RenderASCII(model)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format: %s", format)), nil
	}
}

// handlePlayback drives the step playback controller.
func (s *CodemapServer) handlePlayback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("action is required"), nil
	}

	controller := s.workspace.Controller()
	if action != "status" && s.workspace.Trace() == nil {
		return mcp.NewToolResultError("no trace loaded"), nil
	}

	switch action {
	case "play":
		controller.Play()
	case "pause":
		controller.Pause()
	case "step":
		controller.StepForward()
	case "reset":
		controller.Reset()
	case "show":
		controller.ShowStep(req.GetInt("index", 0))
	case "speed":
		controller.SetSpeed(req.GetInt("value", 0))
	case "status":
		// Snapshot only.
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action: %s", action)), nil
	}

	return marshalResult(controller.Snapshot())
}

// marshalResult marshals a value to a JSON tool result.
func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultJSON(json.RawMessage(data))
}

// captureSession maps a playback session to its MCP client session for
// notifications.
func (s *CodemapServer) captureSession(ctx context.Context, playbackSession string) {
	if session := server.ClientSessionFromContext(ctx); session != nil {
		s.sessions.Register(playbackSession, session.SessionID())
	}
}
