package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerValidationTools wires the three validation batteries and the
// migration score. Each runs against the current snapshot and returns
// issues as data; an invalid project is a normal tool result.
func registerValidationTools(srv *server.MCPServer, s *Server) {
	preTool := mcp.NewTool("validate_preflight",
		mcp.WithDescription("Check that the scanned project is migratable: wallet content present, entry points found, no conflicting Para SDK install"),
	)
	srv.AddTool(preTool, s.handleValidatePreFlight)

	postTool := mcp.NewTool("validate_post_migration",
		mcp.WithDescription("Check the migrated project: ParaModal imported, stylesheet present, environment uses the enum, old dependencies removed, Para dependency present"),
	)
	srv.AddTool(postTool, s.handleValidatePostMigration)

	completionTool := mcp.NewTool("validate_completion",
		mcp.WithDescription("Check for migration leftovers: old imports, old hooks, and the number of Para providers"),
	)
	srv.AddTool(completionTool, s.handleValidateCompletion)

	scoreTool := mcp.NewTool("migration_score",
		mcp.WithDescription("Compute the weighted 0-100 migration success score for the scanned project"),
	)
	srv.AddTool(scoreTool, s.handleMigrationScore)
}

func (s *Server) handleValidatePreFlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.engine.ValidatePreFlight()
	if err != nil {
		return errorResult("validating pre-flight", err)
	}
	return jsonResult(result)
}

func (s *Server) handleValidatePostMigration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.engine.ValidatePostMigration()
	if err != nil {
		return errorResult("validating post-migration", err)
	}
	return jsonResult(result)
}

func (s *Server) handleValidateCompletion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.engine.ValidateCompletion()
	if err != nil {
		return errorResult("validating completion", err)
	}
	return jsonResult(result)
}

func (s *Server) handleMigrationScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := s.engine.Score()
	if err != nil {
		return errorResult("scoring migration", err)
	}
	return jsonResult(score)
}
