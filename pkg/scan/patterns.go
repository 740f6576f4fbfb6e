package scan

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

var (
	// Matches `import <clause> from '<source>'`, including multi-line
	// clauses. The clause never crosses a statement boundary.
	namedImportPattern = regexp.MustCompile(`\bimport\s+([^'";]*?)\s*from\s*['"]([^'"]+)['"]`)

	// Matches bare side-effect imports such as `import './styles.css'`.
	bareImportPattern = regexp.MustCompile(`(?m)^\s*import\s*['"]([^'"]+)['"]`)

	// Matches open tags of the wallet components the scanner tracks.
	componentPattern = regexp.MustCompile(`<(` + alternation(walletComponents) + `)\b`)

	// Matches configuration calls that stand in for a provider component.
	factoryPattern = regexp.MustCompile(`\b(` + alternation(providerFactories) + `)\s*\(`)

	// Matches React hook call sites.
	hookCallPattern = regexp.MustCompile(`\b(use[A-Z][A-Za-z0-9]*)\s*\(`)

	// Matches prop assignments inside a JSX open tag. Values keep their
	// delimiters so callers can tell string literals from expressions.
	propPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*("[^"]*"|'[^']*'|\{[^}]*\})`)
)

// alternation renders map keys as a sorted regexp alternation.
func alternation(names map[string]types.ProviderTag) string {
	keys := make([]string, 0, len(names))
	for name := range names {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// walletComponents maps JSX component names the scanner records to the
// wallet SDK they belong to.
var walletComponents = map[string]types.ProviderTag{
	"PrivyProvider":  types.TagPrivy,
	"AppKitProvider": types.TagReown,
	"Web3Modal":      types.TagWeb3Modal,
	"ParaProvider":   types.TagPara,
	"ParaModal":      types.TagPara,
	"WagmiProvider":  types.TagWagmi,
	"WagmiConfig":    types.TagWagmi,
}

// providerFactories maps configuration-call identifiers that stand in for
// a provider component.
var providerFactories = map[string]types.ProviderTag{
	"createAppKit":    types.TagReown,
	"createWeb3Modal": types.TagWeb3Modal,
}

// walletHooks is the union of every hook name the replacement tables know
// about, used to keep unattributed wallet hooks in the snapshot.
var walletHooks = []string{
	"usePrivy", "useWallets", "useLogin",
	"useAppKit", "useAppKitAccount", "useAppKitProvider", "useWalletInfo",
	"useWeb3Modal", "useWeb3ModalAccount", "useWeb3ModalProvider", "useWeb3ModalState",
	"useDisconnect",
	"useAccount", "useWallet", "useModal", "useClient", "useLogout", "useSignMessage",
}

func isWalletHook(name string) bool {
	return slices.Contains(walletHooks, name)
}

// sourceExtensions are the file extensions the scanner reads.
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// classifySource tags a module specifier with the wallet SDK it belongs to.
func classifySource(source string) types.ProviderTag {
	lower := strings.ToLower(source)
	switch {
	case strings.Contains(lower, "privy"):
		return types.TagPrivy
	case strings.Contains(lower, "reown") || strings.Contains(lower, "appkit"):
		return types.TagReown
	case strings.Contains(lower, "web3modal"):
		return types.TagWeb3Modal
	case strings.Contains(lower, "getpara"):
		return types.TagPara
	case strings.Contains(lower, "wagmi"):
		return types.TagWagmi
	default:
		return types.TagOther
	}
}

// parseImportSymbols extracts the imported identifiers from an import
// clause. Aliased names keep their exported name, since replacement tables
// match on what the package exports. Namespace imports carry no symbols.
func parseImportSymbols(clause string) []string {
	clause = strings.TrimSpace(clause)
	clause = strings.TrimPrefix(clause, "type ")
	if clause == "" {
		return nil
	}

	var symbols []string
	named := clause
	if open := strings.Index(clause, "{"); open >= 0 {
		rest := strings.TrimSuffix(strings.TrimSpace(clause[:open]), ",")
		named = clause[open+1:]
		if closing := strings.Index(named, "}"); closing >= 0 {
			named = named[:closing]
		}
		for _, part := range strings.Split(rest, ",") {
			if sym := cleanSymbol(part); sym != "" {
				symbols = append(symbols, sym)
			}
		}
	} else {
		for _, part := range strings.Split(clause, ",") {
			if sym := cleanSymbol(part); sym != "" {
				symbols = append(symbols, sym)
			}
		}
		return symbols
	}

	for _, part := range strings.Split(named, ",") {
		if sym := cleanSymbol(part); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func cleanSymbol(part string) string {
	part = strings.TrimSpace(part)
	if part == "" || strings.HasPrefix(part, "*") {
		return ""
	}
	part = strings.TrimPrefix(part, "type ")
	if idx := strings.Index(part, " as "); idx >= 0 {
		part = part[:idx]
	}
	return strings.TrimSpace(part)
}

// extractProps pulls the shallow prop assignments out of a JSX open tag.
func extractProps(tag string) map[string]any {
	matches := propPattern.FindAllStringSubmatch(tag, -1)
	if len(matches) == 0 {
		return nil
	}
	props := make(map[string]any, len(matches))
	for _, m := range matches {
		props[m[1]] = m[2]
	}
	return props
}

// isTargetStyle reports whether a stylesheet path is the Para SDK bundle.
func isTargetStyle(path string) bool {
	return strings.Contains(path, "@getpara/") && strings.HasSuffix(path, "styles.css")
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(content string, offset int) int {
	return 1 + strings.Count(content[:offset], "\n")
}

// lineText returns the full text of the line containing the offset.
func lineText(content string, offset int) string {
	start := strings.LastIndexByte(content[:offset], '\n') + 1
	end := strings.IndexByte(content[offset:], '\n')
	if end < 0 {
		return content[start:]
	}
	return content[start : offset+end]
}

// commentedOut reports whether the text at offset sits behind a line or
// JSX comment marker on the same line.
func commentedOut(content string, offset int) bool {
	start := strings.LastIndexByte(content[:offset], '\n') + 1
	prefix := content[start:offset]
	return strings.Contains(prefix, "//") || strings.Contains(prefix, "{/*") || strings.Contains(prefix, "/*")
}
