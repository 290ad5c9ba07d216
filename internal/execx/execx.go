// SPDX-License-Identifier: MPL-2.0

// Package execx is the single choke point for external processes. Release
// actions never call os/exec directly; they go through a Runner so that
// dry-run mode can swap every invocation for a printed description.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Runner runs external tools on behalf of release actions.
type Runner interface {
	// Run executes a tool, streaming its output to the runner's stdio.
	Run(ctx context.Context, name string, args ...string) error
	// RunCapture executes a tool and returns its combined output.
	RunCapture(ctx context.Context, name string, args ...string) (string, error)
	// RunInput executes a tool with input fed to its stdin (used for the
	// mail transfer agent).
	RunInput(ctx context.Context, input string, name string, args ...string) error
	// RunInteractive executes a tool wired to the user's terminal (used for
	// the release-notes editor).
	RunInteractive(ctx context.Context, name string, args ...string) error
	// DryRun reports whether invocations are simulated.
	DryRun() bool
}

// ToolError reports a tool that started but exited non-zero.
type ToolError struct {
	Tool     string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// ExecRunner runs real subprocesses.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewExecRunner creates a runner wired to the process stdio.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// DryRun always reports false for the real runner.
func (r *ExecRunner) DryRun() bool { return false }

// Run executes a tool, streaming output to the runner's stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	r.logInvocation(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.wrapRunError(cmd.Run(), name)
}

// RunCapture executes a tool and returns its combined stdout/stderr.
func (r *ExecRunner) RunCapture(ctx context.Context, name string, args ...string) (string, error) {
	r.logInvocation(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := r.wrapRunError(cmd.Run(), name)
	return buf.String(), err
}

// RunInput executes a tool with input piped to its stdin.
func (r *ExecRunner) RunInput(ctx context.Context, input string, name string, args ...string) error {
	r.logInvocation(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.wrapRunError(cmd.Run(), name)
}

// RunInteractive executes a tool attached to the runner's stdin as well, so
// terminal editors work.
func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	r.logInvocation(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.wrapRunError(cmd.Run(), name)
}

func (r *ExecRunner) logInvocation(name string, args []string) {
	if r.Logger != nil {
		r.Logger.Debug("exec", "cmd", Format(name, args...))
	}
}

func (r *ExecRunner) wrapRunError(err error, name string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{Tool: name, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("run %s: %w", name, err)
}

// DryRunner prints each invocation instead of running it and reports
// success, so the dispatch state machine proceeds as if every tool
// succeeded. Output is deterministic for identical inputs.
type DryRunner struct {
	Out io.Writer
}

// NewDryRunner creates a runner that writes simulated invocations to w.
func NewDryRunner(w io.Writer) *DryRunner {
	return &DryRunner{Out: w}
}

// DryRun always reports true.
func (r *DryRunner) DryRun() bool { return true }

// Run prints the invocation and succeeds.
func (r *DryRunner) Run(_ context.Context, name string, args ...string) error {
	fmt.Fprintln(r.Out, "+ "+Format(name, args...))
	return nil
}

// RunCapture prints the invocation and returns empty output; callers that
// need to parse real output must branch on DryRun before capturing.
func (r *DryRunner) RunCapture(_ context.Context, name string, args ...string) (string, error) {
	fmt.Fprintln(r.Out, "+ "+Format(name, args...))
	return "", nil
}

// RunInput prints the invocation (input elided) and succeeds.
func (r *DryRunner) RunInput(_ context.Context, _ string, name string, args ...string) error {
	fmt.Fprintln(r.Out, "+ "+Format(name, args...))
	return nil
}

// RunInteractive prints the invocation and succeeds.
func (r *DryRunner) RunInteractive(_ context.Context, name string, args ...string) error {
	fmt.Fprintln(r.Out, "+ "+Format(name, args...))
	return nil
}

// Format renders an argv as a single display line.
func Format(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
