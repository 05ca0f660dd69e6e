// Package mcp exposes the codemap workspace to agents over the Model
// Context Protocol: loading analysis results and traces, querying the
// code map, and driving step playback.
package mcp

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chillax-ai/codemap/internal/streaming"
	"github.com/chillax-ai/codemap/internal/workspace"
)

// CodemapServerDeps holds the dependencies for creating a CodemapServer.
type CodemapServerDeps struct {
	Workspace *workspace.Workspace
	Hub       streaming.EventHub
	Logger    *slog.Logger
}

// CodemapServer wraps an MCP server with codemap-specific tool handlers.
type CodemapServer struct {
	workspace *workspace.Workspace
	hub       streaming.EventHub
	sessions  *SessionRegistry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewCodemapServer creates a new CodemapServer with all 7 tools registered.
func NewCodemapServer(deps CodemapServerDeps) *CodemapServer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	s := &CodemapServer{
		workspace: deps.Workspace,
		hub:       deps.Hub,
		sessions:  NewSessionRegistry(),
		logger:    logger,
	}

	mcpSrv := server.NewMCPServer(
		"codemap",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Codemap visualizes a project's structure and execution. Use codemap.load to load an analysis result, codemap.query/codemap.search/codemap.filter to inspect the map, trace.load to load an execution trace, trace.diagram to render it, and playback.control to step through it."),
	)

	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	return s
}

// Serve starts the stdio transport and blocks until ctx is cancelled or stdin closes.
func (s *CodemapServer) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying MCPServer for testing or custom transports.
func (s *CodemapServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Sessions returns the playback-to-MCP session registry, shared with
// the playback notifier.
func (s *CodemapServer) Sessions() *SessionRegistry {
	return s.sessions
}

// tools returns the registered MCP tools as ServerTool entries.
func (s *CodemapServer) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: loadTool(), Handler: s.handleLoad},
		{Tool: queryTool(), Handler: s.handleQuery},
		{Tool: searchTool(), Handler: s.handleSearch},
		{Tool: filterTool(), Handler: s.handleFilter},
		{Tool: traceLoadTool(), Handler: s.handleTraceLoad},
		{Tool: traceDiagramTool(), Handler: s.handleTraceDiagram},
		{Tool: playbackTool(), Handler: s.handlePlayback},
	}
}

// --- Tool definitions ---

func loadTool() mcp.Tool {
	return mcp.NewTool("codemap.load",
		mcp.WithDescription("Load an analysis result and replace the current code map"),
		mcp.WithObject("analysis", mcp.Required(), mcp.Description("The analyzer output: modules, edges, and optional stats")),
	)
}

func queryTool() mcp.Tool {
	return mcp.NewTool("codemap.query",
		mcp.WithDescription("Run a jq expression over the loaded analysis document"),
		mcp.WithString("expression", mcp.Required(), mcp.Description("jq expression, e.g. '.modules[].path'")),
	)
}

func searchTool() mcp.Tool {
	return mcp.NewTool("codemap.search",
		mcp.WithDescription("Find modules whose path, functions, or classes match keywords"),
		mcp.WithString("keywords", mcp.Required(), mcp.Description("Comma-separated keywords, matched case-insensitively")),
	)
}

func filterTool() mcp.Tool {
	return mcp.NewTool("codemap.filter",
		mcp.WithDescription("Select code-map nodes matching a predicate expression"),
		mcp.WithString("engine", mcp.Required(),
			mcp.Enum("cel", "expr", "jq"),
			mcp.Description("Expression engine to evaluate the predicate with"),
		),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Predicate over node, module, and stats variables")),
	)
}

func traceLoadTool() mcp.Tool {
	return mcp.NewTool("trace.load",
		mcp.WithDescription("Load an execution trace and start a fresh playback session"),
		mcp.WithObject("trace", mcp.Required(), mcp.Description("The trace: file and ordered steps")),
	)
}

func traceDiagramTool() mcp.Tool {
	return mcp.NewTool("trace.diagram",
		mcp.WithDescription("Render the loaded trace as a flowchart"),
		mcp.WithString("format", mcp.Required(),
			mcp.Enum("mermaid", "ascii"),
			mcp.Description("Output format"),
		),
	)
}

func playbackTool() mcp.Tool {
	return mcp.NewTool("playback.control",
		mcp.WithDescription("Drive step playback of the loaded trace"),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("play", "pause", "step", "reset", "show", "speed", "status"),
			mcp.Description("Playback action to perform"),
		),
		mcp.WithNumber("index", mcp.Description("Step index (for action=show)")),
		mcp.WithNumber("value", mcp.Description("Speed slider value in milliseconds (for action=speed)")),
	)
}
