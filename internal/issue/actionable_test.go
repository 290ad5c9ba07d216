// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "send announcement"},
			expected: "failed to send announcement",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "read release notes",
				Resource:  "release-notes.txt",
			},
			expected: "failed to read release notes: release-notes.txt",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse upload command",
				Cause:     errors.New("no upload line in output"),
			},
			expected: "failed to parse upload command: no upload line in output",
		},
		{
			name: "operation with resource and cause",
			err: &ActionableError{
				Operation: "launch editor",
				Resource:  "vi",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to launch editor: vi: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("launch editor").
		WithResource("vi").
		WithSuggestion("Set EDITOR to the editor shipout should launch").
		Wrap(errors.New("executable file not found")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "failed to launch editor: vi") {
		t.Errorf("Format(false) missing message: %q", plain)
	}
	if !strings.Contains(plain, "• Set EDITOR") {
		t.Errorf("Format(false) missing suggestion: %q", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include error chain: %q", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain: %q", verbose)
	}
	if !strings.Contains(verbose, "1. executable file not found") {
		t.Errorf("Format(true) missing chained cause: %q", verbose)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := WrapWithOperation(cause, "upload rockspec")
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}
	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
}
