package types

import (
	"sort"
	"testing"
)

func testState() *ProjectState {
	return &ProjectState{
		RootPath: "/tmp/app",
		Dependencies: map[string]string{
			"@privy-io/react-auth": "1.80.0",
			"@Privy-io/wagmi":      "0.2.0",
			"react":                "18.3.1",
		},
		Imports: []FileImport{
			{File: "src/App.tsx", Line: 1, Source: "@privy-io/react-auth", Symbols: []string{"PrivyProvider", "usePrivy"}, Tag: TagPrivy},
			{File: "src/App.tsx", Line: 2, Source: "react", Tag: TagOther},
			{File: "src/Wallet.tsx", Line: 3, Source: "@privy-io/react-auth", Symbols: []string{"useWallets"}, Tag: TagPrivy},
		},
		Hooks: []HookUsage{
			{File: "src/Wallet.tsx", Line: 10, Name: "useWallets", Source: "@privy-io/react-auth", Raw: "const { wallets } = useWallets()"},
			{File: "src/Other.tsx", Line: 4, Name: "useState", Source: "react", Raw: "useState(0)"},
		},
		EntryPoints: []string{"src/main.tsx"},
	}
}

func TestProjectState_DependenciesMatching(t *testing.T) {
	state := testState()

	matches := state.DependenciesMatching("privy")
	sort.Strings(matches)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 privy dependencies, got %d: %v", len(matches), matches)
	}
	if matches[0] != "@Privy-io/wagmi" || matches[1] != "@privy-io/react-auth" {
		t.Errorf("Expected case-insensitive matches, got %v", matches)
	}
}

func TestProjectState_HasDependencyContaining(t *testing.T) {
	state := testState()

	if !state.HasDependencyContaining("PRIVY") {
		t.Error("Expected match to ignore case")
	}
	if state.HasDependencyContaining("appkit") {
		t.Error("Expected no appkit dependency")
	}
}

func TestProjectState_IsDevDependency(t *testing.T) {
	state := testState()
	state.DevDependencies = map[string]string{"@Privy-io/wagmi": "0.2.0"}

	if !state.IsDevDependency("@Privy-io/wagmi") {
		t.Error("Expected wagmi to count as a dev dependency")
	}
	if state.IsDevDependency("@privy-io/react-auth") {
		t.Error("Expected react-auth to count as a runtime dependency")
	}
}

func TestProviderUsage_EnvironmentProp(t *testing.T) {
	testCases := []struct {
		name          string
		props         map[string]any
		expectedProp  string
		expectedValue string
	}{
		{"environment prop", map[string]any{"environment": `"production"`}, "environment", `"production"`},
		{"short env prop", map[string]any{"env": `"prod"`}, "env", `"prod"`},
		{"compound name", map[string]any{"appEnvironment": "{Environment.DEVELOPMENT}"}, "appEnvironment", "{Environment.DEVELOPMENT}"},
		{"unrelated props", map[string]any{"appId": `"abc"`}, "", ""},
		{"no props", nil, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usage := ProviderUsage{Props: tc.props}

			prop, value := usage.EnvironmentProp()

			if prop != tc.expectedProp || value != tc.expectedValue {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tc.expectedProp, tc.expectedValue, prop, value)
			}
		})
	}
}

func TestProjectState_ImportsTagged(t *testing.T) {
	state := testState()

	privy := state.ImportsTagged(TagPrivy)
	if len(privy) != 2 {
		t.Errorf("Expected 2 privy-tagged imports, got %d", len(privy))
	}

	if got := state.ImportsTagged(TagWeb3Modal); len(got) != 0 {
		t.Errorf("Expected no web3modal imports, got %d", len(got))
	}
}

func TestProjectState_HasImportSourceContaining(t *testing.T) {
	state := testState()

	if !state.HasImportSourceContaining("privy-io") {
		t.Error("Expected import source match for privy-io")
	}
	if state.HasImportSourceContaining("web3modal") {
		t.Error("Expected no web3modal import source")
	}
}

func TestProjectState_HooksFromSource(t *testing.T) {
	state := testState()

	hooks := state.HooksFromSource("privy")
	if len(hooks) != 1 {
		t.Fatalf("Expected 1 privy hook, got %d", len(hooks))
	}
	if hooks[0].Name != "useWallets" {
		t.Errorf("Expected useWallets, got %s", hooks[0].Name)
	}
}

func TestSourceTags(t *testing.T) {
	tags := SourceTags()

	if len(tags) != 3 {
		t.Fatalf("Expected 3 source tags, got %d", len(tags))
	}
	for _, tag := range tags {
		if tag == TagPara || tag == TagWagmi || tag == TagOther {
			t.Errorf("Expected only migratable source tags, got %s", tag)
		}
	}
}
