package codegen

import (
	"strings"
	"testing"
)

func TestProviderSetup(t *testing.T) {
	out, err := ProviderSetup(SetupParams{Environment: "production"})
	if err != nil {
		t.Fatalf("ProviderSetup failed: %v", err)
	}

	if !strings.Contains(out, "<ParaModal />") {
		t.Error("Expected setup to nest the modal inside the provider")
	}
	if !strings.Contains(out, "environment={Environment.PRODUCTION}") {
		t.Error("Expected environment to use the enum, not a string literal")
	}
	if strings.Contains(out, `environment="`) {
		t.Error("Expected no string-literal environment prop")
	}
	if !strings.Contains(out, `import "@getpara/react-sdk/styles.css";`) {
		t.Error("Expected the stylesheet import in the scaffold")
	}
	if !strings.Contains(out, "apiKey={import.meta.env.VITE_PARA_API_KEY}") {
		t.Error("Expected the default api key expression")
	}
}

func TestProviderSetup_CustomAPIKeyExpr(t *testing.T) {
	out, err := ProviderSetup(SetupParams{APIKeyExpr: "process.env.NEXT_PUBLIC_PARA_API_KEY"})
	if err != nil {
		t.Fatalf("ProviderSetup failed: %v", err)
	}

	if !strings.Contains(out, "apiKey={process.env.NEXT_PUBLIC_PARA_API_KEY}") {
		t.Error("Expected the custom api key expression")
	}
	if !strings.Contains(out, "environment={Environment.DEVELOPMENT}") {
		t.Error("Expected empty environment to default to DEVELOPMENT")
	}
}

func TestProviderSetup_UnknownEnvironment(t *testing.T) {
	if _, err := ProviderSetup(SetupParams{Environment: "BETA"}); err == nil {
		t.Fatal("Expected an error for an unknown environment")
	}
}

func TestNormalizeEnvironment(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"", "DEVELOPMENT", false},
		{"dev", "DEVELOPMENT", false},
		{"Development", "DEVELOPMENT", false},
		{"prod", "PRODUCTION", false},
		{"PRODUCTION", "PRODUCTION", false},
		{"staging", "", true},
	}

	for _, tc := range testCases {
		got, err := NormalizeEnvironment(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Expected an error for %q", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tc.input, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("Expected %q for %q, got %q", tc.expected, tc.input, got)
		}
	}
}

func TestProviderBlock(t *testing.T) {
	block := ProviderBlock("DEVELOPMENT")

	if !strings.Contains(block, "<ParaProvider environment={Environment.DEVELOPMENT}>") {
		t.Errorf("Expected provider open tag with enum environment, got %q", block)
	}
	if !strings.Contains(block, "<ParaModal />") {
		t.Error("Expected the modal to ride along with every provider rewrite")
	}
}

func TestStaticSnippets(t *testing.T) {
	if got := ClosingTag(); got != "</ParaProvider>" {
		t.Errorf("Expected </ParaProvider>, got %q", got)
	}
	if got := StyleImportLine(); got != `import "@getpara/react-sdk/styles.css";` {
		t.Errorf("Unexpected style import line %q", got)
	}
	if !strings.Contains(ImportLine(), "@getpara/react-sdk") {
		t.Errorf("Expected import line to reference the SDK, got %q", ImportLine())
	}
	if !strings.Contains(ConnectButton(), "useModal") {
		t.Error("Expected the example button to use the modal hook")
	}
}

func TestEnvBlock(t *testing.T) {
	out, err := EnvBlock("prod")
	if err != nil {
		t.Fatalf("EnvBlock failed: %v", err)
	}
	if !strings.Contains(out, "VITE_PARA_API_KEY=") {
		t.Error("Expected the api key variable")
	}
	if !strings.Contains(out, "VITE_PARA_ENVIRONMENT=PRODUCTION") {
		t.Error("Expected the normalized environment")
	}

	if _, err := EnvBlock("qa"); err == nil {
		t.Error("Expected an error for an unknown environment")
	}
}
