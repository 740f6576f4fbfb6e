package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/codegen"
)

// registerSnippetTools wires the code generators. They return source
// text, not JSON, since the caller pastes the output into the project.
func registerSnippetTools(srv *server.MCPServer, s *Server) {
	setupTool := mcp.NewTool("generate_provider_setup",
		mcp.WithDescription("Generate a Providers component that wraps the app in ParaProvider with ParaModal nested inside"),
		mcp.WithString("environment",
			mcp.Description("SDK environment: development or production (default development)"),
		),
		mcp.WithString("api_key_expr",
			mcp.Description("JSX expression for the API key (default import.meta.env.VITE_PARA_API_KEY)"),
		),
	)
	srv.AddTool(setupTool, s.handleGenerateProviderSetup)

	buttonTool := mcp.NewTool("generate_connect_button",
		mcp.WithDescription("Generate a connect button component wired to the Para SDK account and modal hooks"),
	)
	srv.AddTool(buttonTool, s.handleGenerateConnectButton)

	envTool := mcp.NewTool("generate_env_config",
		mcp.WithDescription("Generate the .env lines a migrated project needs"),
		mcp.WithString("environment",
			mcp.Description("SDK environment: development or production (default development)"),
		),
	)
	srv.AddTool(envTool, s.handleGenerateEnvConfig)
}

func (s *Server) handleGenerateProviderSetup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	environment, _ := args["environment"].(string)
	apiKeyExpr, _ := args["api_key_expr"].(string)

	code, err := codegen.ProviderSetup(codegen.SetupParams{
		Environment: environment,
		APIKeyExpr:  apiKeyExpr,
	})
	if err != nil {
		return errorResult("generating provider setup", err)
	}
	return mcp.NewToolResultText(code), nil
}

func (s *Server) handleGenerateConnectButton(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(codegen.ConnectButton()), nil
}

func (s *Server) handleGenerateEnvConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	environment, _ := args["environment"].(string)

	lines, err := codegen.EnvBlock(environment)
	if err != nil {
		return errorResult("generating env config", err)
	}
	return mcp.NewToolResultText(lines), nil
}
