// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool string
		args []string
		want string
	}{
		{"no args", "make", nil, "make"},
		{"with args", "scp", []string{"foo.tar.gz", "host:"}, "scp foo.tar.gz host:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tt.tool, tt.args...); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDryRunnerPrintsInsteadOfRunning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewDryRunner(&buf)
	ctx := context.Background()

	if !r.DryRun() {
		t.Fatal("DryRun() = false")
	}
	if err := r.Run(ctx, "definitely-not-a-real-tool", "--flag"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, err := r.RunCapture(ctx, "make", "dist")
	if err != nil {
		t.Fatalf("RunCapture: %v", err)
	}
	if out != "" {
		t.Errorf("RunCapture output = %q, want empty", out)
	}
	if err := r.RunInteractive(ctx, "vi", "notes"); err != nil {
		t.Fatalf("RunInteractive: %v", err)
	}

	want := "+ definitely-not-a-real-tool --flag\n+ make dist\n+ vi notes\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestDryRunnerDeterministic(t *testing.T) {
	t.Parallel()

	render := func() string {
		var buf bytes.Buffer
		r := NewDryRunner(&buf)
		_ = r.Run(context.Background(), "gpg", "--verify", "foo.asc")
		_ = r.Run(context.Background(), "curl", "-O", "https://example.org/foo.tar.gz")
		return buf.String()
	}
	if first, second := render(), render(); first != second {
		t.Errorf("dry-run output not deterministic:\n%q\n%q", first, second)
	}
}

func TestToolErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ToolError{Tool: "luarocks", ExitCode: 2}
	if got, want := err.Error(), "luarocks exited with status 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
