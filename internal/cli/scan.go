package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a project for wallet provider usage",
	Long: `Scan the project for wallet SDK dependencies, imports, provider
components, hook call sites, stylesheet imports, and entry points, and
report which migration strategy applies.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Println("🔍 Scanning project for wallet provider usage...")
	}
	state, err := engine.ScanProject(projectPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(state)
	}

	fmt.Printf("📁 %s\n", state.RootPath)
	fmt.Printf("   └─ %d dependencies, %d imports, %d providers, %d hooks, %d stylesheets\n",
		len(state.Dependencies), len(state.Imports), len(state.Providers), len(state.Hooks), len(state.Styles))
	for _, entry := range state.EntryPoints {
		fmt.Printf("   └─ entry point %s\n", entry)
	}
	fmt.Println()

	name, err := engine.DetectStrategy()
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Println("✅ No migratable wallet provider detected")
		return nil
	}

	fmt.Printf("✅ Detected %s; run 'para-migrate plan' to build the migration\n", name)
	return nil
}
