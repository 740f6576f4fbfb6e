package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:       "validate [preflight|post|completion]",
	Short:     "Run a validation battery against the project",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"preflight", "post", "completion"},
	Long: `Scan the project and run one of the validation batteries:

  preflight   readiness checks before a migration (default)
  post        checks that the migrated project is complete
  completion  post checks plus absence of leftover source-SDK traces`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	battery := "preflight"
	if len(args) > 0 {
		battery = args[0]
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}
	if _, err := engine.ScanProject(projectPath); err != nil {
		return err
	}

	var result types.ValidationResult
	switch battery {
	case "preflight":
		result, err = engine.ValidatePreFlight()
	case "post":
		result, err = engine.ValidatePostMigration()
	case "completion":
		result, err = engine.ValidateCompletion()
	default:
		return fmt.Errorf("unknown validation battery %q (want preflight, post, or completion)", battery)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printJSON(result); err != nil {
			return err
		}
		if !result.Valid {
			return fmt.Errorf("%s validation failed: %d critical issues", battery, len(result.CriticalIssues()))
		}
		return nil
	}

	for _, issue := range result.Issues {
		marker := "⚠️ "
		if issue.Severity == types.SeverityCritical {
			marker = "❌"
		}
		fmt.Printf("%s [%s] %s\n", marker, issue.Code, issue.Message)
		if issue.Remediation != "" {
			fmt.Printf("   └─ %s\n", issue.Remediation)
		}
	}
	for _, warning := range result.Warnings {
		fmt.Printf("⚠️  %s\n", warning)
	}

	if !result.Valid {
		return fmt.Errorf("%s validation failed: %d critical issues", battery, len(result.CriticalIssues()))
	}
	fmt.Printf("✅ %s validation passed (%d warnings)\n", battery, len(result.Warnings))
	return nil
}
