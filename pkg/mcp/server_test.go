package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodemapServer(t *testing.T) {
	s := NewCodemapServer(CodemapServerDeps{})
	require.NotNil(t, s)
	assert.NotNil(t, s.mcpServer)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.sessions)
}

func TestToolRegistration(t *testing.T) {
	s := NewCodemapServer(CodemapServerDeps{})

	tools := s.mcpServer.ListTools()
	require.Len(t, tools, 7)

	expectedTools := []string{
		"codemap.load",
		"codemap.query",
		"codemap.search",
		"codemap.filter",
		"trace.load",
		"trace.diagram",
		"playback.control",
	}
	for _, name := range expectedTools {
		tool := s.mcpServer.GetTool(name)
		assert.NotNil(t, tool, "tool %s should be registered", name)
	}
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name        string
		toolName    string
		description string
	}{
		{"load", "codemap.load", "Load an analysis result and replace the current code map"},
		{"query", "codemap.query", "Run a jq expression over the loaded analysis document"},
		{"search", "codemap.search", "Find modules whose path, functions, or classes match keywords"},
		{"filter", "codemap.filter", "Select code-map nodes matching a predicate expression"},
		{"traceLoad", "trace.load", "Load an execution trace and start a fresh playback session"},
		{"traceDiagram", "trace.diagram", "Render the loaded trace as a flowchart"},
		{"playback", "playback.control", "Drive step playback of the loaded trace"},
	}

	s := NewCodemapServer(CodemapServerDeps{})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tool := s.mcpServer.GetTool(tc.toolName)
			require.NotNil(t, tool)
			assert.Equal(t, tc.description, tool.Tool.Description)
		})
	}
}
