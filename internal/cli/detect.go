package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the migration strategy the project needs",
	Long: `Scan the project and print the name of the first strategy whose
fingerprints match, honoring the configured detection order. Prints
nothing and exits non-zero when no wallet provider is found.`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	if _, err := engine.ScanProject(projectPath); err != nil {
		return err
	}

	name, err := engine.DetectStrategy()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(struct {
			Detected bool   `json:"detected"`
			Strategy string `json:"strategy,omitempty"`
		}{Detected: name != "", Strategy: name})
	}

	if name == "" {
		return fmt.Errorf("no migratable wallet provider detected in %s", projectPath)
	}
	fmt.Println(name)
	return nil
}
