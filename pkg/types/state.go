package types

import (
	"sort"
	"strings"
	"time"
)

// ProviderTag identifies which wallet SDK an import, dependency, or usage
// belongs to.
type ProviderTag string

const (
	TagPrivy     ProviderTag = "privy"
	TagReown     ProviderTag = "reown"
	TagWeb3Modal ProviderTag = "web3modal"
	TagWagmi     ProviderTag = "wagmi"
	TagPara      ProviderTag = "para"
	TagOther     ProviderTag = "other"
)

// SourceTags lists the provider tags a project can be migrated away from.
// Wagmi is connector plumbing shared by several SDKs and is never a
// migration source on its own.
func SourceTags() []ProviderTag {
	return []ProviderTag{TagPrivy, TagReown, TagWeb3Modal}
}

// SourceFingerprints lists the dependency-name and import-source
// substrings that mark a project as migratable.
func SourceFingerprints() []string {
	return []string{"privy", "reown", "appkit", "web3modal"}
}

// ProjectState is an immutable snapshot of a project's wallet-integration
// surface, produced fresh by each scan. File/line pairs are scanner-supplied
// and treated as opaque identifiers; nothing downstream re-reads file contents.
type ProjectState struct {
	RootPath     string            `json:"root_path"`
	Dependencies map[string]string `json:"dependencies"` // package name -> version
	// DevDependencies tracks the Dependencies entries that were declared
	// under devDependencies, so manifest edits can restore a package to
	// the section it came from.
	DevDependencies map[string]string `json:"dev_dependencies,omitempty"`
	Imports         []FileImport      `json:"imports"`
	Providers       []ProviderUsage   `json:"providers"`
	Hooks           []HookUsage       `json:"hooks"`
	Styles          []StyleImport     `json:"styles"`
	EntryPoints     []string          `json:"entry_points"`
	ScannedAt       time.Time         `json:"scanned_at"`
}

// FileImport is a single import statement found in the project.
type FileImport struct {
	File    string      `json:"file"`
	Line    int         `json:"line"`
	Symbols []string    `json:"symbols"` // imported identifiers, if any
	Source  string      `json:"source"`  // module specifier, e.g. "@privy-io/react-auth"
	Tag     ProviderTag `json:"tag"`
	Raw     string      `json:"raw"` // exact statement text as found
}

// ProviderUsage is an occurrence of a wallet provider component in JSX,
// or of a configuration call that stands in for one.
type ProviderUsage struct {
	File   string         `json:"file"`
	Line   int            `json:"line"`
	Name   string         `json:"name"` // component name, e.g. "PrivyProvider"
	Props  map[string]any `json:"props,omitempty"`
	Active bool           `json:"active"`
	Raw    string         `json:"raw"` // exact open-tag or call-site text
}

// EnvironmentProp returns the name and raw value of the first prop that
// configures the provider environment: "env", "environment", or any name
// containing "environment". Names are checked in sorted order; props whose
// captured value is not a string are skipped. Both strings are empty when
// no such prop exists.
func (u ProviderUsage) EnvironmentProp() (string, string) {
	names := make([]string, 0, len(u.Props))
	for name := range u.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lower := strings.ToLower(name)
		if lower != "env" && !strings.Contains(lower, "environment") {
			continue
		}
		if v, ok := u.Props[name].(string); ok {
			return name, v
		}
	}
	return "", ""
}

// HookUsage is a call site of a wallet SDK hook.
type HookUsage struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Name   string `json:"name"`   // hook identifier, e.g. "usePrivy"
	Source string `json:"source"` // module the hook was imported from
	Raw    string `json:"raw"`    // surrounding call-site text
}

// StyleImport is a stylesheet import statement.
type StyleImport struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Path        string `json:"path"`
	TargetStyle bool   `json:"target_style"` // true for the Para SDK stylesheet
}

// DependenciesMatching returns every dependency name containing the given
// substring (case-insensitive).
func (s *ProjectState) DependenciesMatching(substr string) []string {
	var matches []string
	needle := strings.ToLower(substr)
	for name := range s.Dependencies {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, name)
		}
	}
	return matches
}

// HasDependencyContaining reports whether any dependency name contains the
// given substring (case-insensitive).
func (s *ProjectState) HasDependencyContaining(substr string) bool {
	return len(s.DependenciesMatching(substr)) > 0
}

// IsDevDependency reports whether a package was declared under
// devDependencies rather than dependencies.
func (s *ProjectState) IsDevDependency(name string) bool {
	_, ok := s.DevDependencies[name]
	return ok
}

// ImportsTagged returns every import carrying the given provider tag.
func (s *ProjectState) ImportsTagged(tag ProviderTag) []FileImport {
	var matches []FileImport
	for _, imp := range s.Imports {
		if imp.Tag == tag {
			matches = append(matches, imp)
		}
	}
	return matches
}

// HasImportSourceContaining reports whether any import source contains the
// given substring (case-insensitive).
func (s *ProjectState) HasImportSourceContaining(substr string) bool {
	needle := strings.ToLower(substr)
	for _, imp := range s.Imports {
		if strings.Contains(strings.ToLower(imp.Source), needle) {
			return true
		}
	}
	return false
}

// HooksFromSource returns every hook usage imported from a module whose
// specifier contains the given substring.
func (s *ProjectState) HooksFromSource(substr string) []HookUsage {
	var matches []HookUsage
	needle := strings.ToLower(substr)
	for _, h := range s.Hooks {
		if strings.Contains(strings.ToLower(h.Source), needle) {
			matches = append(matches, h)
		}
	}
	return matches
}
