package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the para-migrate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("para-migrate %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
