package types

import (
	"errors"
	"testing"
)

func TestMigrationError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *MigrationError
		expected string
	}{
		{
			name: "With file location",
			err: &MigrationError{
				Type:    ApplyError,
				Message: "failed to rewrite import",
				File:    "src/App.tsx",
				Line:    12,
			},
			expected: "src/App.tsx:12: failed to rewrite import",
		},
		{
			name: "Without file location",
			err: &MigrationError{
				Type:    StrategyNotFound,
				Message: "no migratable provider detected",
			},
			expected: "no migratable provider detected",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("Expected error string '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestMigrationError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &MigrationError{
		Type:    ScanError,
		Message: "cannot read package.json",
		Cause:   cause,
	}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}

	if errors.Unwrap(err) != cause {
		t.Error("Expected Unwrap to return the original cause")
	}
}

func TestErrorType_String(t *testing.T) {
	testCases := []struct {
		errType  ErrorType
		expected string
	}{
		{ScanError, "scan error"},
		{PreconditionError, "precondition error"},
		{StrategyNotFound, "strategy not found"},
		{ApplyError, "apply error"},
		{ErrorType(99), "unknown error"},
	}

	for _, tc := range testCases {
		if got := tc.errType.String(); got != tc.expected {
			t.Errorf("Expected %s, got %s", tc.expected, got)
		}
	}
}

func TestIsPrecondition(t *testing.T) {
	pre := &MigrationError{Type: PreconditionError, Message: "nothing to migrate"}
	apply := &MigrationError{Type: ApplyError, Message: "write failed"}
	plain := errors.New("plain")

	if !IsPrecondition(pre) {
		t.Error("Expected IsPrecondition to be true for a PreconditionError")
	}
	if IsPrecondition(apply) {
		t.Error("Expected IsPrecondition to be false for an ApplyError")
	}
	if IsPrecondition(plain) {
		t.Error("Expected IsPrecondition to be false for a plain error")
	}
}

func TestIsScanError(t *testing.T) {
	scan := &MigrationError{Type: ScanError, Message: "unreadable root"}

	if !IsScanError(scan) {
		t.Error("Expected IsScanError to be true for a ScanError")
	}
	if IsScanError(errors.New("plain")) {
		t.Error("Expected IsScanError to be false for a plain error")
	}
}
