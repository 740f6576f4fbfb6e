package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Report the weighted migration success score",
	Long: `Scan the project and compute the 0-100 migration success score.
The score measures how much of the project already uses the Para SDK;
a fresh, unmigrated project scores 0 and a fully migrated one 100.`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	if _, err := engine.ScanProject(projectPath); err != nil {
		return err
	}
	breakdown, err := engine.Score()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(breakdown)
	}

	fmt.Printf("📊 Migration score: %d/100\n", breakdown.Total)
	fmt.Printf("   └─ dependencies %d/30, imports %d/25, provider %d/25, styles %d/10, hooks %d/10\n",
		breakdown.Dependencies, breakdown.Imports, breakdown.Provider, breakdown.Styles, breakdown.Hooks)
	return nil
}
