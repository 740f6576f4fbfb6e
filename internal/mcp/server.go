// Package mcp exposes the migration engine over the Model Context
// Protocol: tools that scan a project, plan and execute the provider
// replacement, and validate the outcome, plus resources and prompts for
// agent-driven migration workflows.
package mcp

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/fruteroclub/para-wallet-migration-mcp/internal/config"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/migration"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/scan"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/validate"
)

// ServerName identifies this server to MCP clients.
const ServerName = "para-migration-mcp"

// Server bundles the migration engine with the handlers exposed over the
// protocol. One Server drives one migration at a time; the engine
// serializes conflicting calls.
type Server struct {
	engine *migration.Engine
	logger *slog.Logger
}

// NewServer wires the scanner, strategy registry, validator, and file
// applier described by the configuration into a migration engine.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("building strategy registry: %w", err)
	}

	scanner := scan.NewProjectScanner(logger)
	scanner.SetEntryCandidates(cfg.Scanner.EntryPoints)
	scanner.AddSkipDirs(cfg.Scanner.SkipDirs)

	engine := migration.NewEngine(
		scanner,
		registry,
		validate.NewValidator(logger),
		migration.NewFileApplier(logger),
		logger,
	)

	return &Server{engine: engine, logger: logger}, nil
}

// Engine returns the underlying migration engine.
func (s *Server) Engine() *migration.Engine {
	return s.engine
}

// MCPServer builds the protocol server with every tool, resource, and
// prompt registered.
func (s *Server) MCPServer(version string) *server.MCPServer {
	srv := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterAll(srv, s)
	return srv
}
