package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteroclub/para-wallet-migration-mcp/internal/config"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/validate"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer(config.Default(), logger)
	require.NoError(t, err)
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", textOf(t, result))
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), v))
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readProjectFile(t *testing.T, root, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(content)
}

// writePrivyProject lays out a minimal Vite app that uses Privy for
// authentication: provider wrapping the tree, one hook call site, and an
// entry point without the Para stylesheet.
func writePrivyProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "package.json", `{
  "name": "privy-demo",
  "private": true,
  "dependencies": {
    "@privy-io/react-auth": "^1.80.0",
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  }
}
`)
	writeProjectFile(t, root, "src/App.tsx", `import { PrivyProvider, usePrivy } from "@privy-io/react-auth";

function Status() {
  const { authenticated } = usePrivy();
  return <span>{authenticated ? "connected" : "disconnected"}</span>;
}

export default function App() {
  return (
    <PrivyProvider appId="demo-app-id">
      <Status />
    </PrivyProvider>
  );
}
`)
	writeProjectFile(t, root, "src/main.tsx", `import React from "react";
import ReactDOM from "react-dom/client";
import App from "./App";

ReactDOM.createRoot(document.getElementById("root")!).render(<App />);
`)
	return root
}

func TestHandleScanProject_RequiresPath(t *testing.T) {
	s := testServer(t)

	result, err := s.handleScanProject(context.Background(), callRequest("scan_project", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "project_path is required")
}

func TestHandleScanProject(t *testing.T) {
	s := testServer(t)
	root := writePrivyProject(t)

	result, err := s.handleScanProject(context.Background(), callRequest("scan_project", map[string]any{
		"project_path": root,
	}))
	require.NoError(t, err)

	var state types.ProjectState
	decodeResult(t, result, &state)
	assert.Contains(t, state.Dependencies, "@privy-io/react-auth")
	assert.Equal(t, []string{"src/main.tsx"}, state.EntryPoints)
	assert.NotEmpty(t, state.Providers)
	assert.NotEmpty(t, state.Hooks)
}

func TestHandleDetectStrategy(t *testing.T) {
	s := testServer(t)

	// Before a scan the engine has nothing to detect against.
	result, err := s.handleDetectStrategy(context.Background(), callRequest("detect_strategy", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	root := writePrivyProject(t)
	_, err = s.engine.ScanProject(root)
	require.NoError(t, err)

	result, err = s.handleDetectStrategy(context.Background(), callRequest("detect_strategy", nil))
	require.NoError(t, err)

	var detection detectionResult
	decodeResult(t, result, &detection)
	assert.True(t, detection.Detected)
	assert.Equal(t, "privy", detection.Strategy)
}

func TestHandleCreatePlan(t *testing.T) {
	s := testServer(t)
	root := writePrivyProject(t)
	_, err := s.engine.ScanProject(root)
	require.NoError(t, err)

	result, err := s.handleCreatePlan(context.Background(), callRequest("create_migration_plan", nil))
	require.NoError(t, err)

	var plan types.MigrationPlan
	decodeResult(t, result, &plan)
	assert.Equal(t, "privy", plan.Strategy)
	assert.NotEmpty(t, plan.ID)
	assert.NotEmpty(t, plan.Operations)
	assert.Len(t, plan.Rollback, len(plan.Operations))

	// An unknown strategy is a tool error, not a protocol error.
	result, err = s.handleCreatePlan(context.Background(), callRequest("create_migration_plan", map[string]any{
		"strategy": "rainbowkit",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "unknown strategy")
}

func TestHandleExecuteMigration_RequiresPlan(t *testing.T) {
	s := testServer(t)

	result, err := s.handleExecuteMigration(context.Background(), callRequest("execute_migration", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "no migration plan")
}

func TestHandleExecuteMigration_DryRun(t *testing.T) {
	s := testServer(t)
	root := writePrivyProject(t)
	_, err := s.engine.ScanProject(root)
	require.NoError(t, err)
	_, err = s.engine.CreatePlan("")
	require.NoError(t, err)

	result, err := s.handleExecuteMigration(context.Background(), callRequest("execute_migration", map[string]any{
		"dry_run": true,
	}))
	require.NoError(t, err)

	var outcome types.MigrationResult
	decodeResult(t, result, &outcome)
	assert.True(t, outcome.Success)
	assert.False(t, outcome.RollbackExecuted)
	assert.Len(t, outcome.ValidationResults, 1)

	// Nothing on disk changed.
	assert.Contains(t, readProjectFile(t, root, "src/App.tsx"), "PrivyProvider")
	assert.Contains(t, readProjectFile(t, root, "package.json"), "@privy-io/react-auth")
}

func TestMigrationEndToEnd(t *testing.T) {
	s := testServer(t)
	root := writePrivyProject(t)
	ctx := context.Background()

	// Scan.
	result, err := s.handleScanProject(ctx, callRequest("scan_project", map[string]any{"project_path": root}))
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))

	// Pre-flight.
	result, err = s.handleValidatePreFlight(ctx, callRequest("validate_preflight", nil))
	require.NoError(t, err)
	var pre types.ValidationResult
	decodeResult(t, result, &pre)
	require.True(t, pre.Valid, "pre-flight issues: %+v", pre.Issues)

	// Plan.
	result, err = s.handleCreatePlan(ctx, callRequest("create_migration_plan", map[string]any{"strategy": "privy"}))
	require.NoError(t, err)
	var plan types.MigrationPlan
	decodeResult(t, result, &plan)

	// Execute for real.
	result, err = s.handleExecuteMigration(ctx, callRequest("execute_migration", map[string]any{"dry_run": false}))
	require.NoError(t, err)
	var outcome types.MigrationResult
	decodeResult(t, result, &outcome)
	require.True(t, outcome.Success, "issues: %+v, validations: %+v", outcome.Issues, outcome.ValidationResults)
	assert.False(t, outcome.RollbackExecuted)
	assert.Len(t, outcome.CompletedOperationIDs, len(plan.Operations))
	assert.Len(t, outcome.ValidationResults, 2)

	// The project on disk moved to the Para SDK.
	app := readProjectFile(t, root, "src/App.tsx")
	assert.Contains(t, app, `from "@getpara/react-sdk"`)
	assert.Contains(t, app, "<ParaProvider environment={Environment.DEVELOPMENT}>")
	assert.Contains(t, app, "<ParaModal />")
	assert.Contains(t, app, "</ParaProvider>")
	assert.Contains(t, app, "useAccount()")
	assert.NotContains(t, app, "Privy")

	manifest := readProjectFile(t, root, "package.json")
	assert.Contains(t, manifest, "@getpara/react-sdk")
	assert.NotContains(t, manifest, "@privy-io/react-auth")

	assert.Contains(t, readProjectFile(t, root, "src/main.tsx"), `import "@getpara/react-sdk/styles.css";`)

	// Status reports the terminal phase.
	result, err = s.handleMigrationStatus(ctx, callRequest("migration_status", nil))
	require.NoError(t, err)
	var status struct {
		Phase string `json:"phase"`
	}
	decodeResult(t, result, &status)
	assert.Equal(t, "succeeded", status.Phase)

	// Completion finds no leftovers.
	result, err = s.handleValidateCompletion(ctx, callRequest("validate_completion", nil))
	require.NoError(t, err)
	var completion types.ValidationResult
	decodeResult(t, result, &completion)
	assert.True(t, completion.Valid, "completion issues: %+v", completion.Issues)

	// And the score is perfect.
	result, err = s.handleMigrationScore(ctx, callRequest("migration_score", nil))
	require.NoError(t, err)
	var score validate.ScoreBreakdown
	decodeResult(t, result, &score)
	assert.Equal(t, 100, score.Total)
}

func TestHandleMigrationScore_RequiresScan(t *testing.T) {
	s := testServer(t)

	result, err := s.handleMigrationScore(context.Background(), callRequest("migration_score", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestReadStateResource(t *testing.T) {
	s := testServer(t)
	req := mcp.ReadResourceRequest{}
	req.Params.URI = stateResourceURI

	_, err := s.readStateResource(context.Background(), req)
	require.Error(t, err)

	root := writePrivyProject(t)
	_, err = s.engine.ScanProject(root)
	require.NoError(t, err)

	contents, err := s.readStateResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, stateResourceURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var state types.ProjectState
	require.NoError(t, json.Unmarshal([]byte(text.Text), &state))
	assert.Contains(t, state.Dependencies, "@privy-io/react-auth")
}

func TestReadScoreResource(t *testing.T) {
	s := testServer(t)
	root := writePrivyProject(t)
	_, err := s.engine.ScanProject(root)
	require.NoError(t, err)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = scoreResourceURI

	contents, err := s.readScoreResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)

	var score validate.ScoreBreakdown
	require.NoError(t, json.Unmarshal([]byte(text.Text), &score))
	// A project that has not migrated yet scores zero.
	assert.Equal(t, 0, score.Total)
}

func TestHandleGenerateProviderSetup(t *testing.T) {
	s := testServer(t)

	result, err := s.handleGenerateProviderSetup(context.Background(), callRequest("generate_provider_setup", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	code := textOf(t, result)
	assert.Contains(t, code, "<ParaProvider")
	assert.Contains(t, code, "<ParaModal />")
	assert.Contains(t, code, "Environment.DEVELOPMENT")
	assert.Contains(t, code, `import "@getpara/react-sdk/styles.css";`)

	result, err = s.handleGenerateProviderSetup(context.Background(), callRequest("generate_provider_setup", map[string]any{
		"environment": "production",
	}))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, result), "Environment.PRODUCTION")

	result, err = s.handleGenerateProviderSetup(context.Background(), callRequest("generate_provider_setup", map[string]any{
		"environment": "staging",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGenerateEnvConfig(t *testing.T) {
	s := testServer(t)

	result, err := s.handleGenerateEnvConfig(context.Background(), callRequest("generate_env_config", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "VITE_PARA_API_KEY")
	assert.Contains(t, textOf(t, result), "VITE_PARA_ENVIRONMENT=DEVELOPMENT")
}

func TestHandleGenerateConnectButton(t *testing.T) {
	s := testServer(t)

	result, err := s.handleGenerateConnectButton(context.Background(), callRequest("generate_connect_button", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textOf(t, result), "useAccount")
	assert.Contains(t, textOf(t, result), "useModal")
}

func TestHandleMigrationPlanningPrompt(t *testing.T) {
	s := testServer(t)

	req := mcp.GetPromptRequest{}
	req.Params.Name = "migration_planning"
	req.Params.Arguments = map[string]string{}

	_, err := s.handleMigrationPlanningPrompt(context.Background(), req)
	require.Error(t, err)

	req.Params.Arguments = map[string]string{
		"provider": "privy",
		"context":  "Next.js app router project",
	}
	result, err := s.handleMigrationPlanningPrompt(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.True(t, strings.Contains(content.Text, "privy"))
	assert.Contains(t, content.Text, "Next.js app router project")
	assert.Contains(t, content.Text, "scan_project")
}

func TestMCPServerConstruction(t *testing.T) {
	s := testServer(t)
	srv := s.MCPServer("0.1.0")
	require.NotNil(t, srv)
}
