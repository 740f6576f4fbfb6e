package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

var planStrategy string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a migration plan without executing it",
	Long: `Scan the project and print the ordered replacement operations a
migration would apply. Every operation is listed with its rollback
inverse already paired; nothing is edited.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planStrategy, "strategy", "", "Strategy name (privy, reown, web3modal); omit to auto-detect")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	if _, err := engine.ScanProject(projectPath); err != nil {
		return err
	}

	plan, err := engine.CreatePlan(planStrategy)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(plan)
	}

	fmt.Printf("📋 %s migration plan %s\n", plan.Strategy, plan.ID)
	fmt.Printf("   └─ %d operations (%d critical), estimated %s\n",
		len(plan.Operations), plan.CriticalCount(), plan.EstimatedDuration)
	fmt.Println()
	for _, op := range plan.Operations {
		location := op.File
		if location == "" {
			location = "package.json"
		}
		fmt.Printf("   %s %-10s %s: %s\n", opMarker(op), op.Kind, location, describeOperation(op))
	}
	fmt.Println()
	fmt.Println("✅ Run 'para-migrate migrate --apply' to execute this plan")
	return nil
}

func opMarker(op types.ReplacementOperation) string {
	if op.Critical {
		return "●"
	}
	return "○"
}

// describeOperation renders one operation as a short human-readable line.
func describeOperation(op types.ReplacementOperation) string {
	switch {
	case op.OldValue == "":
		return fmt.Sprintf("insert %s", firstLine(op.NewValue))
	case op.NewValue == "":
		return fmt.Sprintf("remove %s", firstLine(op.OldValue))
	default:
		return fmt.Sprintf("%s → %s", firstLine(op.OldValue), firstLine(op.NewValue))
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}
