// Package cli implements the para-migrate command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fruteroclub/para-wallet-migration-mcp/internal/config"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/migration"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/scan"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/validate"
)

// Version is the current version of para-migrate.
const Version = "0.1.0"

var (
	// Global flags
	projectPath string
	configPath  string
	verbose     bool
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "para-migrate",
	Short: "Migrate web projects from Privy, Reown, or Web3Modal to the Para SDK",
	Long: `A CLI tool that scans a web project for wallet provider usage, plans the
replacement operations, and migrates the project to the Para SDK
(@getpara/react-sdk).

The migration is atomic: every operation is paired with its inverse, and a
critical failure rolls completed operations back in reverse order. Use the
validate and score commands to check the project before and after.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", ".", "Path to the project root (the directory containing package.json)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: search standard locations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildEngine wires a fresh migration engine from the configuration.
// Every command invocation gets its own engine; the CLI never holds state
// between runs.
func buildEngine() (*migration.Engine, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	scanner := scan.NewProjectScanner(logger)
	scanner.SetEntryCandidates(cfg.Scanner.EntryPoints)
	scanner.AddSkipDirs(cfg.Scanner.SkipDirs)

	return migration.NewEngine(
		scanner,
		registry,
		validate.NewValidator(logger),
		migration.NewFileApplier(logger),
		logger,
	), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
