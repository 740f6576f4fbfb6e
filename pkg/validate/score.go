package validate

import (
	"strings"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
)

// ScoreBreakdown itemizes the weighted migration success score.
// Dependencies are worth 30 points, imports 25, provider plus modal 25,
// styles 10, and hooks 10.
type ScoreBreakdown struct {
	Dependencies int `json:"dependencies"`
	Imports      int `json:"imports"`
	Provider     int `json:"provider"`
	Styles       int `json:"styles"`
	Hooks        int `json:"hooks"`
	Total        int `json:"total"`
}

// Score computes the weighted 0-100 migration success score from a
// snapshot. It is informational only and never gates pass or fail.
func (v *Validator) Score(state *types.ProjectState) ScoreBreakdown {
	var b ScoreBreakdown

	if state.HasDependencyContaining("getpara") {
		b.Dependencies += 15
	}
	if len(sourceDependencies(state)) == 0 {
		b.Dependencies += 15
	}

	if hasTargetImport(state) {
		b.Imports += 15
	}
	if !hasSourceImports(state) {
		b.Imports += 10
	}

	if targetProviderCount(state) > 0 {
		b.Provider += 15
	}
	if hasModalImport(state) {
		b.Provider += 10
	}

	if hasTargetStyle(state) {
		b.Styles = 10
	}

	if len(state.HooksFromSource("getpara")) > 0 {
		b.Hooks = 10
	}

	b.Total = b.Dependencies + b.Imports + b.Provider + b.Styles + b.Hooks
	return b
}

func hasTargetImport(state *types.ProjectState) bool {
	for _, imp := range state.Imports {
		if strings.Contains(imp.Source, "getpara") {
			return true
		}
	}
	return false
}
