package mcp

import "github.com/mark3labs/mcp-go/server"

// RegisterAll wires every migration tool, resource, and prompt into the
// MCP server.
func RegisterAll(srv *server.MCPServer, s *Server) {
	registerScanTools(srv, s)
	registerMigrationTools(srv, s)
	registerValidationTools(srv, s)
	registerSnippetTools(srv, s)
	registerResources(srv, s)
	registerPrompts(srv, s)
}
