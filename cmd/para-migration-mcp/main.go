package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/fruteroclub/para-wallet-migration-mcp/internal/config"
	"github.com/fruteroclub/para-wallet-migration-mcp/internal/mcp"
)

const version = "0.1.0"

func main() {
	var (
		projectFlag = flag.String("project", "", "Project directory to scan on startup (optional)")
		configFlag  = flag.String("config", "", "Path to a config file (defaults to standard locations)")
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("para-migration-mcp v%s\n", version)
		fmt.Println("Model Context Protocol server for Para wallet migrations")
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	// Stdout is the MCP transport; logs must go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv, err := mcp.NewServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// An upfront scan is a convenience, not a requirement; the scan_project
	// tool covers the same ground on demand.
	if *projectFlag != "" {
		root, err := filepath.Abs(*projectFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if _, err := srv.Engine().ScanProject(root); err != nil {
			logger.Warn("startup scan failed", "project", root, "error", err)
		} else {
			logger.Info("startup scan complete", "project", root)
		}
	}

	mcpServer := srv.MCPServer(version)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	logger.Info("starting HTTP server", "port", *portFlag)
	if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "HTTP server failed: %v\n", err)
		os.Exit(1)
	}
}
