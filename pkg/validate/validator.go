package validate

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// Validator runs the three check batteries against a project snapshot.
// Every method returns structured results; nothing here panics or errors,
// and nothing mutates the snapshot.
type Validator struct {
	logger *slog.Logger
}

func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{logger: logger}
}

// PreFlight gates execution. It fails when the project has nothing to
// migrate or no entry point to anchor the stylesheet import, and warns
// when the target SDK is already installed.
func (v *Validator) PreFlight(state *types.ProjectState) types.ValidationResult {
	result := types.NewValidationResult()

	if len(sourceDependencies(state)) == 0 && !hasSourceImports(state) {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeNoMigratableContent,
			Message:     "no wallet provider dependencies or imports found to migrate",
			Remediation: "Check that the project root is correct and uses Privy, Reown AppKit, or Web3Modal",
		})
	}

	if len(state.EntryPoints) == 0 {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeNoEntryPoints,
			Message:     "no application entry points detected",
			Remediation: "Create a standard entry point such as src/main.tsx, or configure entry_points in the scanner settings",
		})
	}

	if state.HasDependencyContaining("getpara") {
		result.AddWarning("the Para SDK is already a dependency; migration may overwrite existing configuration")
	}

	v.logger.Debug("pre-flight validation finished", "valid", result.Valid, "issues", len(result.Issues))
	return result
}

// PostMigration runs the five checks covering the most common failure
// causes seen after a migration. Each check fails independently.
func (v *Validator) PostMigration(state *types.ProjectState) types.ValidationResult {
	result := types.NewValidationResult()

	if !hasModalImport(state) {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeMissingParaModal,
			Message:     fmt.Sprintf("no import of %s from %s found", types.ParaModalName, types.ParaDependency),
			Remediation: fmt.Sprintf("Import %s from %q and render it inside the provider", types.ParaModalName, types.ParaDependency),
		})
	}

	if !hasTargetStyle(state) {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeMissingParaCSS,
			Message:     "the Para stylesheet is not imported anywhere",
			Remediation: fmt.Sprintf("Add `import %q;` to every entry point", types.ParaStylesheet),
		})
	}

	for _, usage := range state.Providers {
		if !usage.Active {
			continue
		}
		prop, value := usage.EnvironmentProp()
		if prop == "" || !isStringLiteral(value) {
			continue
		}
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeStringEnvironment,
			Message:     fmt.Sprintf("%s receives %s=%s as a raw string", usage.Name, prop, value),
			File:        usage.File,
			Line:        usage.Line,
			Remediation: fmt.Sprintf("Pass the %s enum instead, e.g. %s={%s.DEVELOPMENT}", types.ParaEnvironmentEnum, prop, types.ParaEnvironmentEnum),
		})
	}

	if old := sourceDependencies(state); len(old) > 0 {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeOldDependenciesPresent,
			Message:     "old wallet provider dependencies remain: " + strings.Join(old, ", "),
			Remediation: "Remove the listed packages from package.json and reinstall",
		})
	}

	if !state.HasDependencyContaining("getpara") {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeMissingParaDependency,
			Message:     fmt.Sprintf("%s is not a dependency", types.ParaDependency),
			Remediation: fmt.Sprintf("Add %s to package.json dependencies", types.ParaDependency),
		})
	}

	v.logger.Debug("post-migration validation finished", "valid", result.Valid, "issues", len(result.Issues))
	return result
}

// Completion is the standalone full-state battery: it reports every
// leftover source import, lagging hooks, and the provider count.
func (v *Validator) Completion(state *types.ProjectState) types.ValidationResult {
	result := types.NewValidationResult()

	for _, tag := range types.SourceTags() {
		for _, imp := range state.ImportsTagged(tag) {
			result.AddIssue(types.ValidationIssue{
				Severity:    types.SeverityCritical,
				Code:        types.CodeOldImportPresent,
				Message:     fmt.Sprintf("import of %s remains", imp.Source),
				File:        imp.File,
				Line:        imp.Line,
				Remediation: fmt.Sprintf("Rewrite this import to %s", types.ParaDependency),
			})
		}
	}

	if len(state.HooksFromSource("getpara")) == 0 {
		result.AddWarning("no hooks from the Para SDK are in use yet; hook migration can follow incrementally")
	}

	providers := targetProviderCount(state)
	switch {
	case providers == 0:
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeNoParaProvider,
			Message:     fmt.Sprintf("no %s found in the component tree", types.ParaProviderName),
			Remediation: fmt.Sprintf("Wrap the application in %s with %s nested inside", types.ParaProviderName, types.ParaModalName),
		})
	case providers > 1:
		result.AddWarning(fmt.Sprintf("%d %s usages found; exactly one is expected", providers, types.ParaProviderName))
	}

	v.logger.Debug("completion validation finished", "valid", result.Valid, "issues", len(result.Issues))
	return result
}

// sourceDependencies returns every dependency name carrying a known
// source-provider fingerprint, sorted.
func sourceDependencies(state *types.ProjectState) []string {
	seen := make(map[string]bool)
	for _, fp := range types.SourceFingerprints() {
		for _, name := range state.DependenciesMatching(fp) {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hasSourceImports(state *types.ProjectState) bool {
	for _, tag := range types.SourceTags() {
		if len(state.ImportsTagged(tag)) > 0 {
			return true
		}
	}
	return false
}

// hasModalImport reports whether any import is sourced from the target
// package and names the modal component.
func hasModalImport(state *types.ProjectState) bool {
	for _, imp := range state.Imports {
		if !strings.Contains(imp.Source, "getpara") {
			continue
		}
		for _, sym := range imp.Symbols {
			if sym == types.ParaModalName {
				return true
			}
		}
	}
	return false
}

func hasTargetStyle(state *types.ProjectState) bool {
	for _, style := range state.Styles {
		if style.TargetStyle {
			return true
		}
	}
	return false
}

// isStringLiteral reports whether a captured prop value is a quoted
// string rather than an expression.
func isStringLiteral(value string) bool {
	return strings.HasPrefix(value, `"`) || strings.HasPrefix(value, `'`)
}

func targetProviderCount(state *types.ProjectState) int {
	n := 0
	for _, usage := range state.Providers {
		if usage.Active && usage.Name == types.ParaProviderName {
			n++
		}
	}
	return n
}
