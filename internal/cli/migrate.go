package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/migration"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

var (
	migrateStrategy string
	applyChanges    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Plan and execute the migration",
	Long: `Scan the project, build the replacement plan, and execute it:
pre-flight validation, the operations in order, a fresh scan, and
post-migration validation. A critical failure rolls completed operations
back in reverse order.

Without --apply this is a dry run: the operations are recorded and
reported but no file is edited.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateStrategy, "strategy", "", "Strategy name (privy, reown, web3modal); omit to auto-detect")
	migrateCmd.Flags().BoolVar(&applyChanges, "apply", false, "Edit the project files (default is a dry run)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}

	if !applyChanges {
		if err := engine.UseApplier(migration.NewDryRunApplier(newLogger())); err != nil {
			return err
		}
		if !jsonOutput {
			fmt.Println("🔍 Dry run: no files will be edited (pass --apply to execute)")
		}
	}

	if _, err := engine.ScanProject(projectPath); err != nil {
		return err
	}
	plan, err := engine.CreatePlan(migrateStrategy)
	if err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Printf("📋 %s migration: %d operations (%d critical)\n",
			plan.Strategy, len(plan.Operations), plan.CriticalCount())
	}

	result, err := engine.Execute()
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printIssues(result)
		if result.RollbackExecuted {
			fmt.Println("↩️  Completed operations were rolled back")
		}
	}

	// The exit code reflects the outcome in both output modes.
	if !result.Success {
		return fmt.Errorf("migration failed: %d of %d operations applied",
			len(result.CompletedOperationIDs), len(plan.Operations))
	}
	if jsonOutput {
		return nil
	}

	fmt.Printf("✅ Migration succeeded: %d operations in %dms\n",
		len(result.CompletedOperationIDs), result.DurationMillis)
	if !applyChanges {
		fmt.Println("   └─ Dry run only; run again with --apply to edit the project")
	} else {
		fmt.Println("   └─ Run 'para-migrate validate completion' and 'para-migrate score' to verify")
	}
	return nil
}

// printIssues lists execution and validation issues with their
// remediation, criticals first markers.
func printIssues(result *types.MigrationResult) {
	report := func(issue types.ValidationIssue) {
		marker := "⚠️ "
		if issue.Severity == types.SeverityCritical {
			marker = "❌"
		}
		fmt.Printf("%s [%s] %s\n", marker, issue.Code, issue.Message)
		if issue.Remediation != "" {
			fmt.Printf("   └─ %s\n", issue.Remediation)
		}
	}

	for _, issue := range result.Issues {
		report(issue)
	}
	for _, vr := range result.ValidationResults {
		for _, issue := range vr.Issues {
			report(issue)
		}
	}
}
