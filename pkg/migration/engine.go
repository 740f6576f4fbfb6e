package migration

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/strategy"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/types"
	"github.com/fruteroclub/para-wallet-migration-mcp/pkg/validate"
)

// Phase is the engine's position in the migration state machine:
// Idle -> Scanned -> Planned -> Executing -> {Succeeded, RolledBack, Failed}.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseScanned    Phase = "scanned"
	PhasePlanned    Phase = "planned"
	PhaseExecuting  Phase = "executing"
	PhaseSucceeded  Phase = "succeeded"
	PhaseRolledBack Phase = "rolled_back"
	PhaseFailed     Phase = "failed"
)

// Scanner produces a fresh project snapshot. The engine never reads
// project files itself; every state refresh goes through this collaborator.
type Scanner interface {
	Scan(root string) (*types.ProjectState, error)
}

// Engine drives one migration attempt at a time: scan, plan, execute,
// validate, and on critical failure roll back. It owns exactly one
// in-flight snapshot and plan. Calls that would interleave state while a
// migration is executing fail with a precondition error instead of
// blocking.
type Engine struct {
	scanner    Scanner
	strategies *strategy.Registry
	validator  *validate.Validator
	applier    Applier
	logger     *slog.Logger

	mu         sync.Mutex
	phase      Phase
	executing  bool
	state      *types.ProjectState
	plan       *types.MigrationPlan
	lastResult *types.MigrationResult
}

func NewEngine(scanner Scanner, strategies *strategy.Registry, validator *validate.Validator, applier Applier, logger *slog.Logger) *Engine {
	return &Engine{
		scanner:    scanner,
		strategies: strategies,
		validator:  validator,
		applier:    applier,
		logger:     logger,
		phase:      PhaseIdle,
	}
}

// Phase returns the engine's current state-machine position.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// State returns the current snapshot, or a precondition error when no
// project has been scanned.
func (e *Engine) State() (*types.ProjectState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Plan returns the current unconsumed plan, if any.
func (e *Engine) Plan() *types.MigrationPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan
}

// LastResult returns the result of the most recent execution attempt, or
// nil if none has run.
func (e *Engine) LastResult() *types.MigrationResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResult
}

// UseApplier swaps the applier used by subsequent executions, letting a
// caller flip between dry-run and real edits on the same engine.
func (e *Engine) UseApplier(a Applier) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.executing {
		return preconditionError("cannot change applier while a migration is executing")
	}
	e.applier = a
	return nil
}

// ScanProject invokes the scanner collaborator and stores the resulting
// snapshot, discarding any previous state and plan. A failed scan leaves
// the engine idle; the caller may retry with a fresh call.
func (e *Engine) ScanProject(root string) (*types.ProjectState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.executing {
		return nil, preconditionError("a migration is executing; wait for it to finish before scanning")
	}

	// Discard up front so a failed scan cannot leave stale state behind.
	e.state = nil
	e.plan = nil
	e.phase = PhaseIdle

	state, err := e.scanner.Scan(root)
	if err != nil {
		return nil, asScanError(root, err)
	}

	e.state = state
	e.phase = PhaseScanned
	e.logger.Info("project scanned",
		"root", state.RootPath,
		"dependencies", len(state.Dependencies),
		"imports", len(state.Imports))
	return state, nil
}

// DetectStrategy returns the name of the first registered strategy whose
// fingerprints match the current snapshot, or "" when nothing matches.
func (e *Engine) DetectStrategy() (string, error) {
	state, err := e.State()
	if err != nil {
		return "", err
	}
	s, ok := e.strategies.Detect(state)
	if !ok {
		return "", nil
	}
	return s.Name(), nil
}

// CreatePlan builds the migration plan for the named strategy against the
// current snapshot. An empty name auto-detects. The plan pairs every
// forward operation with its inverse so rollback is a pure reverse
// iteration, and carries the validation check names for reporting.
func (e *Engine) CreatePlan(strategyName string) (*types.MigrationPlan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.executing {
		return nil, preconditionError("a migration is executing; wait for it to finish before planning")
	}
	state, err := e.stateLocked()
	if err != nil {
		return nil, err
	}

	strat, err := e.resolveStrategy(state, strategyName)
	if err != nil {
		return nil, err
	}

	if gate := strat.Validate(state); !gate.Valid {
		msg := fmt.Sprintf("project carries no %s fingerprint", strat.Name())
		if len(gate.Issues) > 0 {
			msg = gate.Issues[0].Message
		}
		return nil, preconditionError(msg)
	}

	ops, err := strat.BuildOperations(state)
	if err != nil {
		return nil, fmt.Errorf("building %s operations: %w", strat.Name(), err)
	}

	rollback := make([]types.ReplacementOperation, len(ops))
	for i, op := range ops {
		rollback[i] = op.Inverse()
	}

	plan := &types.MigrationPlan{
		ID:                uuid.NewString(),
		Strategy:          strat.Name(),
		Operations:        ops,
		Rollback:          rollback,
		PreChecks:         validate.PreFlightChecks(),
		PostChecks:        validate.PostMigrationChecks(),
		EstimatedDuration: strat.EstimatedDuration(),
		CreatedAt:         time.Now(),
	}

	e.plan = plan
	e.phase = PhasePlanned
	e.logger.Info("migration plan created",
		"plan", plan.ID,
		"strategy", plan.Strategy,
		"operations", len(plan.Operations),
		"critical", plan.CriticalCount())
	return plan, nil
}

// Execute runs the current plan atomically: pre-flight validation, the
// operations in plan order, a fresh scan, then post-migration validation.
// A critical operation failure or an invalid post battery rolls back every
// completed operation in reverse order. The plan is consumed whatever the
// outcome; a new attempt needs a new plan.
func (e *Engine) Execute() (*types.MigrationResult, error) {
	e.mu.Lock()
	if e.executing {
		e.mu.Unlock()
		return nil, preconditionError("a migration is already executing")
	}
	if e.phase != PhasePlanned || e.plan == nil {
		e.mu.Unlock()
		return nil, preconditionError("no migration plan; call CreatePlan first")
	}
	plan := e.plan
	state := e.state
	e.plan = nil // consumed
	e.executing = true
	e.phase = PhaseExecuting
	e.mu.Unlock()

	start := time.Now()
	result := &types.MigrationResult{
		PlanID:   plan.ID,
		Strategy: plan.Strategy,
	}

	pre := e.validator.PreFlight(state)
	result.ValidationResults = append(result.ValidationResults, pre)
	if !pre.Valid {
		// Nothing was applied, so there is nothing to roll back.
		e.logger.Warn("pre-flight validation failed", "plan", plan.ID, "issues", len(pre.Issues))
		return e.finish(result, start, PhaseFailed), nil
	}

	completed, rollbackNeeded := e.applyOperations(plan, state.RootPath, result)

	if !rollbackNeeded && e.applier.Mutates() {
		fresh, err := e.scanner.Scan(state.RootPath)
		if err != nil {
			// The project can no longer be observed, so neither success
			// nor a safe rollback can be established. Fatal for the
			// attempt, like any other scan error.
			e.finish(result, start, PhaseFailed)
			return nil, asScanError(state.RootPath, err)
		}
		e.setState(fresh)
		state = fresh

		post := e.validator.PostMigration(state)
		result.ValidationResults = append(result.ValidationResults, post)
		if !post.Valid {
			e.logger.Warn("post-migration validation failed", "plan", plan.ID, "issues", len(post.Issues))
			rollbackNeeded = true
		}
	}

	if rollbackNeeded {
		e.rollback(plan, completed, state.RootPath, result)
		result.RollbackExecuted = true
		return e.finish(result, start, PhaseRolledBack), nil
	}

	result.Success = true
	e.logger.Info("migration succeeded",
		"plan", plan.ID,
		"operations", len(result.CompletedOperationIDs),
		"duration_ms", time.Since(start).Milliseconds())
	return e.finish(result, start, PhaseSucceeded), nil
}

// applyOperations walks the plan in order. Critical failures stop the walk
// and request rollback; non-critical failures are recorded and tolerated.
// It returns the indices of operations that were actually applied.
func (e *Engine) applyOperations(plan *types.MigrationPlan, root string, result *types.MigrationResult) (completed []int, rollbackNeeded bool) {
	for i, op := range plan.Operations {
		err := e.applier.Apply(root, op)
		if err == nil {
			completed = append(completed, i)
			result.CompletedOperationIDs = append(result.CompletedOperationIDs, op.ID)
			continue
		}

		result.FailedOperationIDs = append(result.FailedOperationIDs, op.ID)
		if op.Critical {
			e.logger.Error("critical operation failed", "id", op.ID, "err", err)
			result.Issues = append(result.Issues, operationIssue(op, err, types.SeverityCritical))
			return completed, true
		}
		e.logger.Warn("non-critical operation failed", "id", op.ID, "err", err)
		result.Issues = append(result.Issues, operationIssue(op, err, types.SeverityWarning))
	}
	return completed, false
}

// rollback applies the inverse of every completed operation in reverse
// order. A failing inverse is reported and does not stop the remaining
// inverses; the project may then need manual repair.
func (e *Engine) rollback(plan *types.MigrationPlan, completed []int, root string, result *types.MigrationResult) {
	e.logger.Warn("rolling back", "plan", plan.ID, "operations", len(completed))

	for i := len(completed) - 1; i >= 0; i-- {
		idx := completed[i]
		inverse := plan.Rollback[idx]
		if err := e.applier.Apply(root, inverse); err != nil {
			e.logger.Error("rollback step failed", "id", inverse.ID, "err", err)
			result.Issues = append(result.Issues, types.ValidationIssue{
				Severity:    types.SeverityCritical,
				Code:        types.CodeRollbackFailed,
				Message:     fmt.Sprintf("could not undo operation %s: %v", plan.Operations[idx].ID, err),
				File:        inverse.File,
				Line:        inverse.Line,
				Remediation: "Manual intervention required: restore this file from version control and re-run the migration",
			})
		}
	}

	// Refresh the snapshot so completion reporting sees the restored
	// project. Best effort: a failed re-scan keeps the previous snapshot.
	if e.applier.Mutates() {
		if fresh, err := e.scanner.Scan(root); err == nil {
			e.setState(fresh)
		} else {
			e.logger.Error("re-scan after rollback failed", "err", err)
		}
	}
}

// ValidatePreFlight runs the pre-flight battery against the current
// snapshot without touching engine state.
func (e *Engine) ValidatePreFlight() (types.ValidationResult, error) {
	state, err := e.State()
	if err != nil {
		return types.ValidationResult{}, err
	}
	return e.validator.PreFlight(state), nil
}

// ValidatePostMigration runs the post-migration battery against the
// current snapshot without touching engine state.
func (e *Engine) ValidatePostMigration() (types.ValidationResult, error) {
	state, err := e.State()
	if err != nil {
		return types.ValidationResult{}, err
	}
	return e.validator.PostMigration(state), nil
}

// ValidateCompletion runs the standalone completion battery against the
// current snapshot without touching engine state.
func (e *Engine) ValidateCompletion() (types.ValidationResult, error) {
	state, err := e.State()
	if err != nil {
		return types.ValidationResult{}, err
	}
	return e.validator.Completion(state), nil
}

// Score computes the weighted migration success score for the current
// snapshot.
func (e *Engine) Score() (validate.ScoreBreakdown, error) {
	state, err := e.State()
	if err != nil {
		return validate.ScoreBreakdown{}, err
	}
	return e.validator.Score(state), nil
}

// Status summarizes the engine for reporting tools.
type Status struct {
	Phase          Phase                  `json:"phase"`
	ProjectRoot    string                 `json:"project_root,omitempty"`
	ScannedAt      time.Time              `json:"scanned_at,omitzero"`
	Strategies     []string               `json:"strategies"`
	PlanID         string                 `json:"plan_id,omitempty"`
	PlanStrategy   string                 `json:"plan_strategy,omitempty"`
	OperationCount int                    `json:"operation_count,omitempty"`
	LastResult     *types.MigrationResult `json:"last_result,omitempty"`
}

// Status reports the engine's phase, snapshot origin, pending plan, and
// the last execution result.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		Phase:      e.phase,
		Strategies: e.strategies.Names(),
		LastResult: e.lastResult,
	}
	if e.state != nil {
		st.ProjectRoot = e.state.RootPath
		st.ScannedAt = e.state.ScannedAt
	}
	if e.plan != nil {
		st.PlanID = e.plan.ID
		st.PlanStrategy = e.plan.Strategy
		st.OperationCount = len(e.plan.Operations)
	}
	return st
}

func (e *Engine) resolveStrategy(state *types.ProjectState, name string) (strategy.ReplacementStrategy, error) {
	if name == "" {
		s, ok := e.strategies.Detect(state)
		if !ok {
			return nil, &types.MigrationError{
				Type:    types.StrategyNotFound,
				Message: "no migratable wallet provider detected in the project",
			}
		}
		return s, nil
	}
	s, ok := e.strategies.Get(name)
	if !ok {
		return nil, &types.MigrationError{
			Type: types.StrategyNotFound,
			Message: fmt.Sprintf("unknown strategy %q, registered: %s",
				name, strings.Join(e.strategies.Names(), ", ")),
		}
	}
	return s, nil
}

func (e *Engine) stateLocked() (*types.ProjectState, error) {
	if e.state == nil {
		return nil, preconditionError("no project scanned; call ScanProject first")
	}
	return e.state, nil
}

func (e *Engine) setState(state *types.ProjectState) {
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

// finish stamps the duration, records the result, and moves the engine to
// its terminal phase for this attempt.
func (e *Engine) finish(result *types.MigrationResult, start time.Time, phase Phase) *types.MigrationResult {
	result.DurationMillis = time.Since(start).Milliseconds()
	e.mu.Lock()
	e.phase = phase
	e.executing = false
	e.lastResult = result
	e.mu.Unlock()
	return result
}

func operationIssue(op types.ReplacementOperation, err error, severity types.Severity) types.ValidationIssue {
	return types.ValidationIssue{
		Severity:    severity,
		Code:        types.CodeOperationFailed,
		Message:     fmt.Sprintf("operation %s (%s) failed: %v", op.ID, op.Kind, err),
		File:        op.File,
		Line:        op.Line,
		Remediation: "Inspect the file, fix the mismatch, then re-scan and plan again",
	}
}

func preconditionError(msg string) error {
	return &types.MigrationError{Type: types.PreconditionError, Message: msg}
}

// asScanError guarantees the scanner contract: whatever the collaborator
// returned becomes a scan-typed error.
func asScanError(root string, err error) error {
	if me, ok := err.(*types.MigrationError); ok && me.Type == types.ScanError {
		return err
	}
	return &types.MigrationError{
		Type:    types.ScanError,
		Message: fmt.Sprintf("scanning %s failed: %v", root, err),
		File:    root,
		Cause:   err,
	}
}
