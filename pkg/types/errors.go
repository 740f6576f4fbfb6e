package types

import "fmt"

// ErrorType classifies fatal errors surfaced by the engine. Everything
// recoverable travels as ValidationResult data instead.
type ErrorType int

const (
	// ScanError means the scanner collaborator could not produce a
	// ProjectState. Fatal for the attempt; a fresh scan may be retried.
	ScanError ErrorType = iota
	// PreconditionError means a caller invoked a step out of
	// state-machine order. Never retried.
	PreconditionError
	// StrategyNotFound means no registered strategy matches the
	// requested name, or detection found nothing to migrate.
	StrategyNotFound
	// ApplyError means a replacement operation could not be applied
	// to the project tree.
	ApplyError
)

func (t ErrorType) String() string {
	switch t {
	case ScanError:
		return "scan error"
	case PreconditionError:
		return "precondition error"
	case StrategyNotFound:
		return "strategy not found"
	case ApplyError:
		return "apply error"
	default:
		return "unknown error"
	}
}

// MigrationError represents fatal errors in migration operations.
type MigrationError struct {
	Type    ErrorType
	Message string
	File    string
	Line    int
	Cause   error
}

func (e *MigrationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return e.Message
}

func (e *MigrationError) Unwrap() error {
	return e.Cause
}

// IsPrecondition reports whether err is a precondition MigrationError.
func IsPrecondition(err error) bool {
	me, ok := err.(*MigrationError)
	return ok && me.Type == PreconditionError
}

// IsScanError reports whether err is a scan MigrationError.
func IsScanError(err error) bool {
	me, ok := err.(*MigrationError)
	return ok && me.Type == ScanError
}
