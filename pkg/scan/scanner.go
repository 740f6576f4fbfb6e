package scan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// Scanner produces a fresh snapshot of a project's wallet-integration
// surface. Implementations never mutate the project.
type Scanner interface {
	Scan(root string) (*types.ProjectState, error)
}

// ProjectScanner walks a web project on disk and extracts dependencies,
// imports, provider usage, hook call sites, stylesheet imports, and entry
// points into a ProjectState.
type ProjectScanner struct {
	logger          *slog.Logger
	entryCandidates []string
	skipDirs        map[string]bool
}

var defaultEntryCandidates = []string{
	"src/main.tsx",
	"src/main.jsx",
	"src/index.tsx",
	"src/index.jsx",
	"app/layout.tsx",
	"pages/_app.tsx",
}

var defaultSkipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	"vendor":       true,
}

func NewProjectScanner(logger *slog.Logger) *ProjectScanner {
	return &ProjectScanner{
		logger:          logger,
		entryCandidates: defaultEntryCandidates,
		skipDirs:        defaultSkipDirs,
	}
}

// SetEntryCandidates overrides the relative paths checked as entry points.
func (s *ProjectScanner) SetEntryCandidates(paths []string) {
	if len(paths) > 0 {
		s.entryCandidates = paths
	}
}

// AddSkipDirs adds directory names the walker ignores, on top of the
// built-in set.
func (s *ProjectScanner) AddSkipDirs(names []string) {
	if len(names) == 0 {
		return
	}
	dirs := make(map[string]bool, len(s.skipDirs)+len(names))
	for name := range s.skipDirs {
		dirs[name] = true
	}
	for _, name := range names {
		dirs[name] = true
	}
	s.skipDirs = dirs
}

// Scan reads the project under root and returns its current state. The
// snapshot is complete at return time and never updated afterwards.
func (s *ProjectScanner) Scan(root string) (*types.ProjectState, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &types.MigrationError{
			Type:    types.ScanError,
			Message: fmt.Sprintf("cannot resolve project root: %v", err),
			File:    root,
			Cause:   err,
		}
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, &types.MigrationError{
			Type:    types.ScanError,
			Message: "project root is not a readable directory",
			File:    abs,
			Cause:   err,
		}
	}

	state := &types.ProjectState{
		RootPath:     abs,
		Dependencies: make(map[string]string),
		ScannedAt:    time.Now(),
	}

	if err := s.readManifest(abs, state); err != nil {
		return nil, err
	}

	if err := s.walkSources(abs, state); err != nil {
		return nil, err
	}

	for _, candidate := range s.entryCandidates {
		if _, err := os.Stat(filepath.Join(abs, filepath.FromSlash(candidate))); err == nil {
			state.EntryPoints = append(state.EntryPoints, candidate)
		}
	}

	s.logger.Info("project scanned",
		"root", abs,
		"dependencies", len(state.Dependencies),
		"imports", len(state.Imports),
		"providers", len(state.Providers),
		"hooks", len(state.Hooks),
		"entry_points", len(state.EntryPoints))

	return state, nil
}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readManifest merges dependencies and devDependencies from package.json,
// tracking which names were declared dev-only. A package listed in both
// sections counts as a runtime dependency. A missing manifest is not an
// error; a malformed one is.
func (s *ProjectScanner) readManifest(root string, state *types.ProjectState) error {
	path := filepath.Join(root, "package.json")
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no package.json found", "root", root)
		return nil
	}
	if err != nil {
		return &types.MigrationError{
			Type:    types.ScanError,
			Message: fmt.Sprintf("cannot read package.json: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	var manifest packageManifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return &types.MigrationError{
			Type:    types.ScanError,
			Message: fmt.Sprintf("malformed package.json: %v", err),
			File:    path,
			Cause:   err,
		}
	}

	for name, version := range manifest.Dependencies {
		state.Dependencies[name] = version
	}
	for name, version := range manifest.DevDependencies {
		if _, runtime := state.Dependencies[name]; runtime {
			continue
		}
		state.Dependencies[name] = version
		if state.DevDependencies == nil {
			state.DevDependencies = make(map[string]string)
		}
		state.DevDependencies[name] = version
	}
	return nil
}

func (s *ProjectScanner) walkSources(root string, state *types.ProjectState) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || s.skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}

		if !sourceExtensions[filepath.Ext(path)] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "file", path, "err", err)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		s.scanFile(filepath.ToSlash(rel), string(content), state)
		return nil
	})
	if err != nil {
		return &types.MigrationError{
			Type:    types.ScanError,
			Message: fmt.Sprintf("walking project failed: %v", err),
			File:    root,
			Cause:   err,
		}
	}
	return nil
}

// scanFile extracts every wallet-relevant fact from a single source file.
func (s *ProjectScanner) scanFile(rel, content string, state *types.ProjectState) {
	symbolSource := make(map[string]string)

	for _, m := range namedImportPattern.FindAllStringSubmatchIndex(content, -1) {
		clause := content[m[2]:m[3]]
		source := content[m[4]:m[5]]
		symbols := parseImportSymbols(clause)
		state.Imports = append(state.Imports, types.FileImport{
			File:    rel,
			Line:    lineAt(content, m[0]),
			Symbols: symbols,
			Source:  source,
			Tag:     classifySource(source),
			Raw:     content[m[0]:m[1]],
		})
		for _, sym := range symbols {
			symbolSource[sym] = source
		}
	}

	for _, m := range bareImportPattern.FindAllStringSubmatchIndex(content, -1) {
		source := content[m[2]:m[3]]
		line := lineAt(content, m[0])
		// Bare .css imports are global stylesheets. Named imports of
		// CSS modules stay plain imports.
		if strings.HasSuffix(source, ".css") {
			state.Styles = append(state.Styles, types.StyleImport{
				File:        rel,
				Line:        line,
				Path:        source,
				TargetStyle: isTargetStyle(source),
			})
			continue
		}
		state.Imports = append(state.Imports, types.FileImport{
			File:   rel,
			Line:   line,
			Source: source,
			Tag:    classifySource(source),
			Raw:    strings.TrimSpace(lineText(content, m[0])),
		})
	}

	for _, m := range componentPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		raw := tagText(content, m[0])
		state.Providers = append(state.Providers, types.ProviderUsage{
			File:   rel,
			Line:   lineAt(content, m[0]),
			Name:   name,
			Props:  extractProps(raw),
			Active: !commentedOut(content, m[0]),
			Raw:    raw,
		})
	}

	for _, m := range factoryPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		state.Providers = append(state.Providers, types.ProviderUsage{
			File:   rel,
			Line:   lineAt(content, m[0]),
			Name:   name,
			Active: !commentedOut(content, m[0]),
			Raw:    strings.TrimSpace(lineText(content, m[0])),
		})
	}

	for _, m := range hookCallPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		if isDeclaration(content, m[0]) {
			continue
		}
		source := symbolSource[name]
		if !isWalletHook(name) && (source == "" || classifySource(source) == types.TagOther) {
			continue
		}
		state.Hooks = append(state.Hooks, types.HookUsage{
			File:   rel,
			Line:   lineAt(content, m[0]),
			Name:   name,
			Source: source,
			Raw:    strings.TrimSpace(lineText(content, m[0])),
		})
	}
}

// tagText returns the open-tag text starting at offset, through the
// closing angle bracket.
func tagText(content string, offset int) string {
	end := offset + 2000
	if end > len(content) {
		end = len(content)
	}
	window := content[offset:end]
	if gt := strings.IndexByte(window, '>'); gt >= 0 {
		return window[:gt+1]
	}
	return window
}

// isDeclaration reports whether the hook match at offset is a function
// declaration rather than a call site.
func isDeclaration(content string, offset int) bool {
	start := strings.LastIndexByte(content[:offset], '\n') + 1
	return strings.Contains(content[start:offset], "function ")
}
