package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all strata analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all strata tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "strata",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all strata analyzer tools to the server.
func (s *Server) registerTools() {
	// Full fact extraction
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_facts",
		Description: describeFacts(),
	}, handleAnalyzeFacts)

	// Complexity analysis
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, handleAnalyzeComplexity)

	// Dependency graph
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_graph",
		Description: describeGraph(),
	}, handleAnalyzeGraph)

	// Architecture assessment
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_architecture",
		Description: describeArchitecture(),
	}, handleAnalyzeArchitecture)
}
