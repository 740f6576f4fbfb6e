package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/migration"
)

// registerMigrationTools wires plan creation and execution.
func registerMigrationTools(srv *server.MCPServer, s *Server) {
	planTool := mcp.NewTool("create_migration_plan",
		mcp.WithDescription("Build a replacement plan for the scanned project. Every operation is paired with its inverse so a failed migration rolls back in reverse order"),
		mcp.WithString("strategy",
			mcp.Description("Strategy name (privy, reown, web3modal); omit to auto-detect"),
		),
	)
	srv.AddTool(planTool, s.handleCreatePlan)

	executeTool := mcp.NewTool("execute_migration",
		mcp.WithDescription("Execute the pending plan: pre-flight validation, the operations in order, a fresh scan, post-migration validation, and rollback of completed operations when anything critical fails"),
		mcp.WithBoolean("dry_run",
			mcp.Description("Record the operations without editing any file"),
			mcp.DefaultBool(false),
		),
	)
	srv.AddTool(executeTool, s.handleExecuteMigration)
}

func (s *Server) handleCreatePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	strategyName, _ := args["strategy"].(string)

	plan, err := s.engine.CreatePlan(strategyName)
	if err != nil {
		return errorResult("creating migration plan", err)
	}
	return jsonResult(plan)
}

func (s *Server) handleExecuteMigration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dryRun := false
	if val, ok := args["dry_run"].(bool); ok {
		dryRun = val
	}

	var applier migration.Applier = migration.NewFileApplier(s.logger)
	if dryRun {
		applier = migration.NewDryRunApplier(s.logger)
	}
	if err := s.engine.UseApplier(applier); err != nil {
		return errorResult("preparing execution", err)
	}

	result, err := s.engine.Execute()
	if err != nil {
		return errorResult("executing migration", err)
	}
	return jsonResult(result)
}
