package types

// Severity grades a validation issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Stable issue codes. These identifiers are part of the tool's output
// contract; callers match on them, so they never change.
const (
	CodeNoMigratableContent    = "NO_MIGRATABLE_CONTENT"
	CodeNoEntryPoints          = "NO_ENTRY_POINTS"
	CodeMissingParaModal       = "MISSING_PARA_MODAL"
	CodeMissingParaCSS         = "MISSING_PARA_CSS"
	CodeStringEnvironment      = "STRING_ENVIRONMENT"
	CodeOldDependenciesPresent = "OLD_DEPENDENCIES_PRESENT"
	CodeMissingParaDependency  = "MISSING_PARA_DEPENDENCY"
	CodeOldImportPresent       = "OLD_IMPORT_PRESENT"
	CodeNoParaProvider         = "NO_PARA_PROVIDER"
	CodeOperationFailed        = "OPERATION_FAILED"
	CodeRollbackFailed         = "ROLLBACK_FAILED"
)

// ValidationIssue is one failed (or informational) check. Every issue
// carries a remediation instruction; no issue is reported without a fix.
type ValidationIssue struct {
	Severity    Severity `json:"severity"`
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	File        string   `json:"file,omitempty"`
	Line        int      `json:"line,omitempty"`
	Remediation string   `json:"remediation"`
}

// ValidationResult aggregates a battery of checks. Valid is the logical
// AND of the constituent checks; warnings are collected from every check,
// including passing ones.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Issues   []ValidationIssue `json:"issues"`
	Warnings []string          `json:"warnings"`
}

// NewValidationResult returns a passing, empty result.
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// AddIssue records an issue. Critical issues flip Valid to false;
// warning- and info-grade issues do not.
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityCritical {
		r.Valid = false
	}
}

// AddWarning records a non-blocking warning string.
func (r *ValidationResult) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// Merge folds another result into this one.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Valid = r.Valid && other.Valid
	r.Issues = append(r.Issues, other.Issues...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// CriticalIssues returns only the critical-severity issues.
func (r *ValidationResult) CriticalIssues() []ValidationIssue {
	var critical []ValidationIssue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			critical = append(critical, issue)
		}
	}
	return critical
}
