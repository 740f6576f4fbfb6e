package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// SetupParams parameterizes the generated provider scaffold.
type SetupParams struct {
	Environment string // DEVELOPMENT or PRODUCTION
	APIKeyExpr  string // JSX expression for the api key, defaults to the Vite env var
}

const defaultAPIKeyExpr = "import.meta.env.VITE_PARA_API_KEY"

var providerSetupTmpl = template.Must(template.New("provider-setup").Parse(`import { ParaProvider, ParaModal, Environment } from "@getpara/react-sdk";
import "@getpara/react-sdk/styles.css";

export function Providers({ children }: { children: React.ReactNode }) {
  return (
    <ParaProvider
      {{.APIKeyAttr}}
      environment={Environment.{{.Environment}}}
    >
      <ParaModal />
      {children}
    </ParaProvider>
  );
}
`))

// ProviderSetup renders a complete provider scaffold file. The output
// always nests the modal component inside the provider.
func ProviderSetup(p SetupParams) (string, error) {
	env, err := NormalizeEnvironment(p.Environment)
	if err != nil {
		return "", err
	}
	expr := p.APIKeyExpr
	if expr == "" {
		expr = defaultAPIKeyExpr
	}

	var buf bytes.Buffer
	data := struct {
		Environment string
		APIKeyAttr  string
	}{
		Environment: env,
		APIKeyAttr:  fmt.Sprintf("apiKey={%s}", expr),
	}
	if err := providerSetupTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering provider setup: %w", err)
	}
	return buf.String(), nil
}

// NormalizeEnvironment maps loose input onto the SDK environment enum.
// An empty value defaults to DEVELOPMENT.
func NormalizeEnvironment(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "dev", "development":
		return "DEVELOPMENT", nil
	case "prod", "production":
		return "PRODUCTION", nil
	}
	return "", fmt.Errorf("unknown environment %q, expected development or production", value)
}

// ProviderBlock returns the provider open tag with the modal nested under
// it, ready to substitute for an old provider's open tag.
func ProviderBlock(environment string) string {
	return fmt.Sprintf("<%s environment={%s.%s}>\n  %s",
		types.ParaProviderName, types.ParaEnvironmentEnum, environment, ModalTag())
}

// ClosingTag returns the provider closing tag.
func ClosingTag() string {
	return fmt.Sprintf("</%s>", types.ParaProviderName)
}

// ModalTag returns the self-closed modal component.
func ModalTag() string {
	return fmt.Sprintf("<%s />", types.ParaModalName)
}

// ImportLine returns the SDK import statement used by migrated files.
func ImportLine() string {
	return fmt.Sprintf(`import { %s, %s, %s } from "%s";`,
		types.ParaProviderName, types.ParaModalName, types.ParaEnvironmentEnum, types.ParaDependency)
}

// StyleImportLine returns the stylesheet import every entry point needs.
func StyleImportLine() string {
	return fmt.Sprintf(`import "%s";`, types.ParaStylesheet)
}

const connectButton = `import { useAccount, useModal } from "@getpara/react-sdk";

export function ConnectButton() {
  const { isConnected, address } = useAccount();
  const { openModal } = useModal();

  return (
    <button onClick={() => openModal()}>
      {isConnected ? address : "Connect Wallet"}
    </button>
  );
}
`

// ConnectButton returns an example component wired to the SDK hooks.
func ConnectButton() string {
	return connectButton
}

// EnvBlock returns the .env lines a migrated project needs.
func EnvBlock(environment string) (string, error) {
	env, err := NormalizeEnvironment(environment)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# Para SDK configuration\nVITE_PARA_API_KEY=your-para-api-key\nVITE_PARA_ENVIRONMENT=%s\n", env), nil
}
