package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/codegen"
)

var (
	generateEnvironment string
	generateAPIKeyExpr  string
)

var generateCmd = &cobra.Command{
	Use:       "generate [provider-setup|connect-button|env]",
	Short:     "Print Para SDK boilerplate",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"provider-setup", "connect-button", "env"},
	Long: `Print ready-to-paste Para SDK source:

  provider-setup  a ParaProvider scaffold component
  connect-button  an example component using the SDK hooks
  env             the .env lines a migrated project needs`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateEnvironment, "environment", "", "Para environment (DEVELOPMENT or PRODUCTION)")
	generateCmd.Flags().StringVar(&generateAPIKeyExpr, "api-key-expr", "", "Expression supplying the API key, e.g. import.meta.env.VITE_PARA_API_KEY")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var (
		out string
		err error
	)
	switch args[0] {
	case "provider-setup":
		out, err = codegen.ProviderSetup(codegen.SetupParams{
			Environment: generateEnvironment,
			APIKeyExpr:  generateAPIKeyExpr,
		})
	case "connect-button":
		out = codegen.ConnectButton()
	case "env":
		out, err = codegen.EnvBlock(generateEnvironment)
	default:
		return fmt.Errorf("unknown snippet %q (want provider-setup, connect-button, or env)", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
