package types

import "time"

// OperationKind classifies an atomic replacement operation.
type OperationKind string

const (
	OpDependency OperationKind = "dependency"
	OpImport     OperationKind = "import"
	OpProvider   OperationKind = "provider"
	OpHook       OperationKind = "hook"
	OpStyle      OperationKind = "style"
	// OpText is a plain text swap with no structural meaning of its own,
	// such as renaming a closing tag.
	OpText OperationKind = "text"
)

// Sections of package.json a dependency operation can target. An empty
// Section on the operation means DependenciesSection.
const (
	DependenciesSection    = "dependencies"
	DevDependenciesSection = "devDependencies"
)

// ReplacementOperation is one atomic edit in a migration plan.
//
// Value semantics depend on the kind. Dependency operations use
// "name@version" values: OldValue set and NewValue empty removes the
// package, the reverse adds it, and Section names the manifest section
// the package lives in. For the text kinds, an empty OldValue means
// insert, an empty NewValue means delete, and both set means replace
// the first occurrence of OldValue.
type ReplacementOperation struct {
	ID       string        `json:"id"` // unique within its plan
	Kind     OperationKind `json:"kind"`
	File     string        `json:"file,omitempty"`
	Line     int           `json:"line,omitempty"`
	OldValue string        `json:"old_value"`
	NewValue string        `json:"new_value"`
	Section  string        `json:"section,omitempty"` // dependency kind only
	Critical bool          `json:"critical"`
}

// Inverse returns the rollback action that undoes this operation.
func (op ReplacementOperation) Inverse() ReplacementOperation {
	return ReplacementOperation{
		ID:       op.ID + ".undo",
		Kind:     op.Kind,
		File:     op.File,
		Line:     op.Line,
		OldValue: op.NewValue,
		NewValue: op.OldValue,
		Section:  op.Section,
		Critical: op.Critical,
	}
}

// MigrationPlan is the full ordered plan for one migration attempt.
// It is immutable after construction; the engine consumes it exactly once.
type MigrationPlan struct {
	ID         string                 `json:"id"`
	Strategy   string                 `json:"strategy"`
	Operations []ReplacementOperation `json:"operations"`
	// Rollback holds the inverse action for each forward operation,
	// index-paired with Operations and executed in reverse order.
	Rollback          []ReplacementOperation `json:"rollback"`
	PreChecks         []string               `json:"pre_checks"`
	PostChecks        []string               `json:"post_checks"`
	EstimatedDuration time.Duration          `json:"estimated_duration_ns"`
	CreatedAt         time.Time              `json:"created_at"`
}

// CriticalCount returns how many operations in the plan are critical.
func (p *MigrationPlan) CriticalCount() int {
	n := 0
	for _, op := range p.Operations {
		if op.Critical {
			n++
		}
	}
	return n
}

// MigrationResult is the terminal record of one execution attempt.
// It is never mutated after the engine returns it.
type MigrationResult struct {
	PlanID                string             `json:"plan_id"`
	Strategy              string             `json:"strategy"`
	Success               bool               `json:"success"`
	CompletedOperationIDs []string           `json:"completed_operation_ids"`
	FailedOperationIDs    []string           `json:"failed_operation_ids"`
	ValidationResults     []ValidationResult `json:"validation_results"`
	RollbackExecuted      bool               `json:"rollback_executed"`
	DurationMillis        int64              `json:"duration_ms"`
	Issues                []ValidationIssue  `json:"issues"`
}
