package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerPrompts wires the migration planning prompt.
func registerPrompts(srv *server.MCPServer, s *Server) {
	planningPrompt := mcp.NewPrompt("migration_planning",
		mcp.WithPromptDescription("Generate a migration plan for moving a web project onto the Para wallet SDK"),
		mcp.WithArgument("provider",
			mcp.ArgumentDescription("Wallet provider being replaced (privy, reown, web3modal)"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("context",
			mcp.ArgumentDescription("Additional context about the project or migration goals"),
		),
	)
	srv.AddPrompt(planningPrompt, s.handleMigrationPlanningPrompt)
}

func (s *Server) handleMigrationPlanningPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments

	provider, ok := args["provider"]
	if !ok || provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	extra := args["context"]

	prompt := fmt.Sprintf(`You are a wallet integration expert. Help plan a migration from %s to the Para SDK (@getpara/react-sdk).`, provider)

	if extra != "" {
		prompt += fmt.Sprintf(`

Context: %s`, extra)
	}

	prompt += `

Use the migration tools in this order:
1. scan_project to capture the project state
2. detect_strategy to confirm which provider the project uses
3. validate_preflight to check the project is migratable
4. create_migration_plan to build the replacement operations
5. execute_migration (dry_run first) to apply them
6. validate_completion and migration_score to verify the result

For each step, report what was found before moving on. Watch out for:
- Providers configured through factory calls instead of JSX components
- Environment values passed as string literals instead of the Environment enum
- Entry points that never import the Para stylesheet
- Wallet hooks left behind in files the plan did not touch

A failed execution rolls completed operations back automatically; if the
result reports rollback failures, stop and ask for manual intervention.`

	return &mcp.GetPromptResult{
		Description: "Wallet migration planning guidance",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: prompt,
				},
			},
		},
	}, nil
}
