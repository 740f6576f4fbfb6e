package strategy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/codegen"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// DefaultTargetVersion is the Para SDK version added when none is
// configured.
const DefaultTargetVersion = "latest"

// ReplacementStrategy plans the ordered operations that move a project
// off one wallet SDK. Implementations are pure: they read the snapshot
// and never touch the project.
type ReplacementStrategy interface {
	// Name returns the strategy identifier, e.g. "privy".
	Name() string
	// Matches reports whether the snapshot carries this provider's
	// fingerprint in a dependency name or import source.
	Matches(state *types.ProjectState) bool
	// Validate gates planning. It fails when the snapshot carries no
	// fingerprint for this provider.
	Validate(state *types.ProjectState) types.ValidationResult
	// BuildOperations emits the replacement plan in fixed order:
	// dependency removals, target dependency add, import rewrites,
	// provider rewrites, hook rewrites, style inserts.
	BuildOperations(state *types.ProjectState) ([]types.ReplacementOperation, error)
	// EstimatedDuration is a fixed per-strategy constant used for
	// reporting only.
	EstimatedDuration() time.Duration
}

// tableStrategy implements ReplacementStrategy from fixed associative
// tables. Every supported provider is one instance of it; nothing is
// derived heuristically at plan time.
type tableStrategy struct {
	name          string
	tag           types.ProviderTag
	fingerprints  []string
	importSymbols map[string]string // exported symbol -> target SDK symbol
	componentMap  map[string]string // provider component or factory -> target component
	hookMap       map[string]string // hook identifier -> target hook identifier
	estimate      time.Duration
	targetVersion string
}

func (s *tableStrategy) Name() string {
	return s.name
}

func (s *tableStrategy) EstimatedDuration() time.Duration {
	return s.estimate
}

func (s *tableStrategy) Matches(state *types.ProjectState) bool {
	for _, fp := range s.fingerprints {
		if state.HasDependencyContaining(fp) || state.HasImportSourceContaining(fp) {
			return true
		}
	}
	return false
}

func (s *tableStrategy) Validate(state *types.ProjectState) types.ValidationResult {
	result := types.NewValidationResult()
	if !s.Matches(state) {
		result.AddIssue(types.ValidationIssue{
			Severity:    types.SeverityCritical,
			Code:        types.CodeNoMigratableContent,
			Message:     fmt.Sprintf("no %s dependency or import found in the project", s.name),
			Remediation: "Run strategy detection and plan with the strategy it reports",
		})
	}
	return result
}

func (s *tableStrategy) BuildOperations(state *types.ProjectState) ([]types.ReplacementOperation, error) {
	b := &opBuilder{strategy: s.name}

	for _, name := range s.sourceDependencies(state) {
		section := ""
		if state.IsDevDependency(name) {
			section = types.DevDependenciesSection
		}
		b.addDependency(name+"@"+state.Dependencies[name], "", section)
	}

	b.addDependency("", types.ParaDependency+"@"+s.targetVersion, "")

	for _, imp := range state.Imports {
		if imp.Tag != s.tag {
			continue
		}
		b.add(types.OpImport, imp.File, imp.Line, imp.Raw, s.rewriteImport(imp), true)
	}

	for _, usage := range state.Providers {
		target, ok := s.componentMap[usage.Name]
		if !ok || !usage.Active {
			continue
		}
		s.addProviderOps(b, usage, target)
	}

	for _, hook := range state.Hooks {
		target, ok := s.hookMap[hook.Name]
		if !ok {
			continue
		}
		b.add(types.OpHook, hook.File, hook.Line, hook.Name, target, false)
	}

	styled := make(map[string]bool)
	for _, style := range state.Styles {
		if style.TargetStyle {
			styled[style.File] = true
		}
	}
	for _, entry := range state.EntryPoints {
		if styled[entry] {
			continue
		}
		b.add(types.OpStyle, entry, 0, "", codegen.StyleImportLine(), true)
	}

	return b.ops, nil
}

// sourceDependencies returns the dependency names matching any of the
// strategy's fingerprints, sorted for deterministic plans.
func (s *tableStrategy) sourceDependencies(state *types.ProjectState) []string {
	seen := make(map[string]bool)
	for _, fp := range s.fingerprints {
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

// rewriteImport maps each imported symbol through the lookup table and
// swaps the package specifier for the target SDK. Unmapped symbols keep
// their name and ride along on the package substitution.
func (s *tableStrategy) rewriteImport(imp types.FileImport) string {
	out := imp.Raw
	for _, sym := range imp.Symbols {
		if target, ok := s.importSymbols[sym]; ok && target != sym {
			out = strings.Replace(out, sym, target, 1)
		}
	}
	out = strings.Replace(out, imp.Source, types.ParaDependency, 1)

	// A file that renders the provider also needs the modal and the
	// environment enum in scope.
	if strings.Contains(out, "{") &&
		strings.Contains(out, types.ParaProviderName) &&
		!strings.Contains(out, types.ParaModalName) {
		out = strings.Replace(out, types.ParaProviderName,
			types.ParaProviderName+", "+types.ParaModalName+", "+types.ParaEnvironmentEnum, 1)
	}
	return out
}

// addProviderOps emits the rewrite for one provider usage. Every provider
// rewrite nests the modal; wrapping providers get a companion text
// operation renaming their closing tag.
func (s *tableStrategy) addProviderOps(b *opBuilder, usage types.ProviderUsage, target string) {
	if target == types.ParaModalName {
		b.add(types.OpProvider, usage.File, usage.Line, usage.Raw, codegen.ModalTag(), true)
		return
	}

	env := environmentFor(usage)
	isTag := strings.HasPrefix(usage.Raw, "<")
	if !isTag {
		// Factory calls become a self-contained provider block.
		block := codegen.ProviderBlock(env) + "\n" + codegen.ClosingTag()
		b.add(types.OpProvider, usage.File, usage.Line, usage.Raw, block, true)
		return
	}

	b.add(types.OpProvider, usage.File, usage.Line, usage.Raw, codegen.ProviderBlock(env), true)
	if !strings.HasSuffix(usage.Raw, "/>") {
		b.add(types.OpText, usage.File, 0, "</"+usage.Name+">", codegen.ClosingTag(), true)
	}
}

// environmentFor picks the SDK environment for a rewritten provider,
// honoring a production setting on the old one.
func environmentFor(usage types.ProviderUsage) string {
	if _, v := usage.EnvironmentProp(); strings.Contains(strings.ToLower(v), "prod") {
		return "PRODUCTION"
	}
	return "DEVELOPMENT"
}

// opBuilder numbers operations so every ID is unique within the plan and
// encodes its position.
type opBuilder struct {
	strategy string
	seq      int
	ops      []types.ReplacementOperation
}

func (b *opBuilder) add(kind types.OperationKind, file string, line int, oldValue, newValue string, critical bool) {
	b.push(types.ReplacementOperation{
		Kind:     kind,
		File:     file,
		Line:     line,
		OldValue: oldValue,
		NewValue: newValue,
		Critical: critical,
	})
}

// addDependency emits a package.json edit. The section names the manifest
// section the package belongs to; empty means dependencies.
func (b *opBuilder) addDependency(oldValue, newValue, section string) {
	b.push(types.ReplacementOperation{
		Kind:     types.OpDependency,
		OldValue: oldValue,
		NewValue: newValue,
		Section:  section,
		Critical: true,
	})
}

func (b *opBuilder) push(op types.ReplacementOperation) {
	op.ID = fmt.Sprintf("%s-%s-%d", b.strategy, op.Kind, b.seq)
	b.ops = append(b.ops, op)
	b.seq++
}
