// SPDX-License-Identifier: MPL-2.0

// Package dispatch orchestrates a release run: it resolves the selected
// method names against the registry, computes the union of their variable
// requirements, acquires missing release notes interactively when possible,
// validates, and finally executes each method in selection order with
// fail-fast semantics.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"shipout-cli/internal/config"
	"shipout-cli/internal/execx"
	"shipout-cli/internal/issue"
	"shipout-cli/internal/method"
	"shipout-cli/internal/notes"
	"shipout-cli/internal/vars"

	"github.com/charmbracelet/log"
)

type (
	// Dispatcher drives one release run. All collaborators are explicit;
	// there is no package-level state.
	Dispatcher struct {
		Registry *method.Registry
		Store    *vars.Store
		Config   *config.Config
		Runner   execx.Runner
		Logger   *log.Logger

		// Dir is the working directory artifacts and notes resolve against.
		Dir string
		// Out receives diagnostics such as the required-variable listing.
		Out io.Writer
		// ListVars prints the required-variable listing instead of
		// executing, succeeding when nothing is missing.
		ListVars bool

		// Sleep is injectable for tests of polling actions; nil means
		// time.Sleep.
		Sleep func(time.Duration)
	}

	// SelectionError reports a malformed selection (empty or duplicate
	// entries). Unknown names surface as method.NotFoundError instead.
	SelectionError struct {
		Reason string
	}

	// MissingVarsError reports required variables that remained unset after
	// acquisition.
	MissingVarsError struct {
		Missing []vars.Name
	}
)

func (e *SelectionError) Error() string {
	return e.Reason
}

func (e *MissingVarsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		names[i] = string(n)
	}
	return "missing required variables: " + strings.Join(names, ", ")
}

// Run executes the state machine for the comma-separated selection. The
// returned error's type tells the caller which stage aborted.
func (d *Dispatcher) Run(ctx context.Context, selectionArg string) error {
	selection, err := d.parseSelection(selectionArg)
	if err != nil {
		return err
	}

	required := method.UnionOf(selection)

	if err := d.acquireMissing(ctx, required); err != nil {
		return err
	}

	missing := method.Missing(required, d.Store)
	if d.ListVars || len(missing) > 0 {
		d.printRequired(required)
		if len(missing) > 0 {
			return &MissingVarsError{Missing: missing}
		}
		return nil
	}

	env := &method.Env{
		Vars:   d.Store,
		Runner: d.Runner,
		Config: d.Config,
		Logger: d.Logger,
		Dir:    d.Dir,
		Sleep:  d.sleep(),
	}
	for _, desc := range selection {
		d.Logger.Info("releasing", "method", desc.Name)
		if err := desc.Action.Execute(ctx, env); err != nil {
			return issue.NewErrorContext().
				WithOperation("release via " + desc.Name).
				Wrap(err).
				Build()
		}
		d.Logger.Info("done", "method", desc.Name)
	}
	return nil
}

// parseSelection splits the method-list argument on commas and resolves
// every name against the registry, failing fast on the first empty,
// duplicate, or unknown name.
func (d *Dispatcher) parseSelection(arg string) ([]*method.Descriptor, error) {
	names := strings.Split(arg, ",")
	selection := make([]*method.Descriptor, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, &SelectionError{Reason: "empty method name in selection"}
		}
		if _, dup := seen[name]; dup {
			return nil, &SelectionError{Reason: fmt.Sprintf("method %s selected twice", name)}
		}
		seen[name] = struct{}{}

		desc, err := d.Registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		selection = append(selection, desc)
	}
	return selection, nil
}

// acquireMissing fills in variables that support interactive acquisition.
// Only the release notes qualify: when required and absent, their file is
// located or created through the configured editor.
func (d *Dispatcher) acquireMissing(ctx context.Context, required map[vars.Name]struct{}) error {
	if _, needed := required[vars.Notes]; !needed {
		return nil
	}
	return notes.Acquire(ctx, d.Store, d.Config, d.Runner, d.Dir)
}

// printRequired writes every required variable with its help text, sorted
// by name, marking the ones still missing.
func (d *Dispatcher) printRequired(required map[vars.Name]struct{}) {
	if len(required) == 0 {
		fmt.Fprintln(d.Out, "No variables required.")
		return
	}

	width := 0
	names := method.SortedNames(required)
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintln(d.Out, "Variables required by the selected methods:")
	for _, name := range names {
		marker := " "
		if !d.Store.Has(name) {
			marker = "*"
		}
		fmt.Fprintf(d.Out, "%s %-*s  %s\n", marker, width, name, vars.Help(name))
	}
	fmt.Fprintln(d.Out, "(* = missing; pass name=value on the command line)")
}

func (d *Dispatcher) sleep() func(time.Duration) {
	if d.Sleep != nil {
		return d.Sleep
	}
	return time.Sleep
}
