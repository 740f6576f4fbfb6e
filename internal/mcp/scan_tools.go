package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerScanTools wires the project discovery tools.
func registerScanTools(srv *server.MCPServer, s *Server) {
	scanTool := mcp.NewTool("scan_project",
		mcp.WithDescription("Scan a web project for wallet provider dependencies, imports, provider components, hook call sites, stylesheet imports, and entry points"),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Path to the project root (the directory containing package.json)"),
		),
	)
	srv.AddTool(scanTool, s.handleScanProject)

	detectTool := mcp.NewTool("detect_strategy",
		mcp.WithDescription("Detect which wallet provider the scanned project uses, honoring the configured detection order"),
	)
	srv.AddTool(detectTool, s.handleDetectStrategy)

	statusTool := mcp.NewTool("migration_status",
		mcp.WithDescription("Report the engine phase, the scanned project, the pending plan, and the last execution result"),
	)
	srv.AddTool(statusTool, s.handleMigrationStatus)
}

func (s *Server) handleScanProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectPath, ok := args["project_path"].(string)
	if !ok || projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}

	state, err := s.engine.ScanProject(projectPath)
	if err != nil {
		return errorResult("scanning project", err)
	}
	return jsonResult(state)
}

// detectionResult is the structured output of detect_strategy.
type detectionResult struct {
	Detected bool   `json:"detected"`
	Strategy string `json:"strategy,omitempty"`
}

func (s *Server) handleDetectStrategy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := s.engine.DetectStrategy()
	if err != nil {
		return errorResult("detecting strategy", err)
	}
	return jsonResult(detectionResult{Detected: name != "", Strategy: name})
}

func (s *Server) handleMigrationStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.engine.Status())
}
