package migration

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// Applier turns replacement operations into project edits. The engine
// feeds it forward operations in plan order and inverse operations during
// rollback; both go through the same Apply.
type Applier interface {
	Apply(root string, op types.ReplacementOperation) error
	// Mutates reports whether Apply changes the project on disk. The
	// engine skips post-migration re-scanning for non-mutating appliers.
	Mutates() bool
}

// FileApplier edits the project in place: package.json for dependency
// operations, source files for everything else.
type FileApplier struct {
	logger *slog.Logger
}

func NewFileApplier(logger *slog.Logger) *FileApplier {
	return &FileApplier{logger: logger}
}

func (a *FileApplier) Mutates() bool {
	return true
}

func (a *FileApplier) Apply(root string, op types.ReplacementOperation) error {
	a.logger.Debug("applying operation", "id", op.ID, "kind", op.Kind, "file", op.File)

	switch op.Kind {
	case types.OpDependency:
		return a.applyDependency(root, op)
	case types.OpHook:
		return a.applyHook(root, op)
	case types.OpStyle, types.OpImport, types.OpProvider, types.OpText:
		return a.applyText(root, op)
	default:
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("unknown operation kind %q", op.Kind),
		}
	}
}

// applyDependency edits package.json. Values are "name@version" pairs;
// the version is split off at the last @ so scoped names survive. The
// operation's Section picks the manifest section, so a rollback restores
// a package to the section it was removed from.
func (a *FileApplier) applyDependency(root string, op types.ReplacementOperation) error {
	path := filepath.Join(root, "package.json")
	content, err := os.ReadFile(path)
	if err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("cannot read package.json: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("malformed package.json: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	deps := readDependencySection(doc, types.DependenciesSection)
	devDeps := readDependencySection(doc, types.DevDependenciesSection)

	if op.OldValue != "" {
		name, _ := splitDependency(op.OldValue)
		_, inDeps := deps[name]
		_, inDev := devDeps[name]
		switch {
		case op.Section == types.DevDependenciesSection && inDev:
			delete(devDeps, name)
			writeDependencySection(doc, types.DevDependenciesSection, devDeps)
		case inDeps:
			delete(deps, name)
			writeDependencySection(doc, types.DependenciesSection, deps)
		case inDev:
			delete(devDeps, name)
			writeDependencySection(doc, types.DevDependenciesSection, devDeps)
		default:
			return &types.MigrationError{
				Type:    types.ApplyError,
				Message: fmt.Sprintf("dependency %s not present", name),
				File:    path,
			}
		}
	}
	if op.NewValue != "" {
		name, version := splitDependency(op.NewValue)
		if op.Section == types.DevDependenciesSection {
			devDeps[name] = version
			writeDependencySection(doc, types.DevDependenciesSection, devDeps)
		} else {
			deps[name] = version
			writeDependencySection(doc, types.DependenciesSection, deps)
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("cannot encode package.json: %v", err),
			File:    path,
			Cause:   err,
		}
	}
	return a.writeFile(path, append(out, '\n'))
}

// applyHook substitutes a hook identifier at its call site. The match is
// word-bounded and starts at the operation's line so an identifier that
// prefixes a longer name is never clipped.
func (a *FileApplier) applyHook(root string, op types.ReplacementOperation) error {
	path := filepath.Join(root, filepath.FromSlash(op.File))
	content, err := os.ReadFile(path)
	if err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("cannot read file: %v", err),
			File:    op.File,
			Line:    op.Line,
			Cause:   err,
		}
	}

	text := string(content)
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(op.OldValue) + `\b`)

	offset := offsetOfLine(text, op.Line)
	loc := re.FindStringIndex(text[offset:])
	if loc == nil {
		offset = 0
		loc = re.FindStringIndex(text)
	}
	if loc == nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("identifier %q not found", op.OldValue),
			File:    op.File,
			Line:    op.Line,
		}
	}

	updated := text[:offset+loc[0]] + op.NewValue + text[offset+loc[1]:]
	return a.writeFile(path, []byte(updated))
}

// applyText covers imports, provider blocks, style lines, and plain text
// swaps. An empty OldValue inserts, an empty NewValue deletes, and both
// set replaces the first occurrence.
func (a *FileApplier) applyText(root string, op types.ReplacementOperation) error {
	path := filepath.Join(root, filepath.FromSlash(op.File))
	content, err := os.ReadFile(path)
	if err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("cannot read file: %v", err),
			File:    op.File,
			Line:    op.Line,
			Cause:   err,
		}
	}
	text := string(content)

	switch {
	case op.OldValue == "":
		text = insertAfterImports(text, op.NewValue)
	case op.NewValue == "":
		if !strings.Contains(text, op.OldValue) {
			return a.notFound(op)
		}
		text = deleteFirst(text, op.OldValue)
	default:
		if !strings.Contains(text, op.OldValue) {
			return a.notFound(op)
		}
		text = strings.Replace(text, op.OldValue, op.NewValue, 1)
	}

	return a.writeFile(path, []byte(text))
}

func (a *FileApplier) notFound(op types.ReplacementOperation) error {
	return &types.MigrationError{
		Type:    types.ApplyError,
		Message: fmt.Sprintf("expected text not found for operation %s", op.ID),
		File:    op.File,
		Line:    op.Line,
	}
}

func (a *FileApplier) writeFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &types.MigrationError{
			Type:    types.ApplyError,
			Message: fmt.Sprintf("cannot write file: %v", err),
			File:    path,
			Cause:   err,
		}
	}
	return nil
}

// DryRunApplier records what would happen without touching the project.
type DryRunApplier struct {
	logger  *slog.Logger
	Applied []types.ReplacementOperation
}

func NewDryRunApplier(logger *slog.Logger) *DryRunApplier {
	return &DryRunApplier{logger: logger}
}

func (a *DryRunApplier) Mutates() bool {
	return false
}

func (a *DryRunApplier) Apply(root string, op types.ReplacementOperation) error {
	a.logger.Info("dry run", "id", op.ID, "kind", op.Kind, "file", op.File)
	a.Applied = append(a.Applied, op)
	return nil
}

func readDependencySection(doc map[string]json.RawMessage, key string) map[string]string {
	section := make(map[string]string)
	if raw, ok := doc[key]; ok {
		// Best effort: a malformed section reads as empty.
		_ = json.Unmarshal(raw, &section)
	}
	return section
}

func writeDependencySection(doc map[string]json.RawMessage, key string, section map[string]string) {
	raw, err := json.Marshal(section)
	if err != nil {
		return
	}
	doc[key] = raw
}

// splitDependency splits "name@version" at the last @, keeping scoped
// package names intact.
func splitDependency(value string) (string, string) {
	if idx := strings.LastIndex(value, "@"); idx > 0 {
		return value[:idx], value[idx+1:]
	}
	return value, ""
}

// offsetOfLine returns the byte offset of the start of a 1-based line.
func offsetOfLine(content string, line int) int {
	if line <= 1 {
		return 0
	}
	offset := 0
	for n := 1; n < line; n++ {
		next := strings.IndexByte(content[offset:], '\n')
		if next < 0 {
			return offset
		}
		offset += next + 1
	}
	return offset
}

// insertAfterImports places a line after the last top-level import, or at
// the top of the file when there are none.
func insertAfterImports(content, line string) string {
	lines := strings.Split(content, "\n")
	last := -1
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "import ") || strings.HasPrefix(strings.TrimSpace(l), "import\"") {
			last = i
		}
	}
	if last < 0 {
		return line + "\n" + content
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:last+1]...)
	out = append(out, line)
	out = append(out, lines[last+1:]...)
	return strings.Join(out, "\n")
}

// deleteFirst removes the first occurrence of text, swallowing one
// trailing newline so deleted lines do not leave gaps.
func deleteFirst(content, text string) string {
	idx := strings.Index(content, text)
	end := idx + len(text)
	if end < len(content) && content[end] == '\n' {
		end++
	}
	return content[:idx] + content[end:]
}
