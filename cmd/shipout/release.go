// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shipout-cli/internal/config"
	"shipout-cli/internal/dispatch"
	"shipout-cli/internal/execx"
	"shipout-cli/internal/methods"
	"shipout-cli/internal/vars"

	"github.com/spf13/cobra"
)

// runRelease wires the dispatcher together and maps its outcome to exit
// codes: 0 on success (including a clean --vars listing), 1 on any usage,
// validation, or action failure.
func runRelease(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return reportError(cmd, err)
	}

	store, err := buildStore(args[1:])
	if err != nil {
		return reportError(cmd, err)
	}

	registry, err := methods.Builtin()
	if err != nil {
		return reportError(cmd, err)
	}

	dir, err := os.Getwd()
	if err != nil {
		return reportError(cmd, fmt.Errorf("determine working directory: %w", err))
	}

	var runner execx.Runner
	if dryRun {
		runner = execx.NewDryRunner(cmd.OutOrStdout())
	} else {
		runner = execx.NewExecRunner(logger)
	}

	dispatcher := &dispatch.Dispatcher{
		Registry: registry,
		Store:    store,
		Config:   cfg,
		Runner:   runner,
		Logger:   logger,
		Dir:      dir,
		Out:      cmd.ErrOrStderr(),
		ListVars: listVars,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := dispatcher.Run(ctx, args[0]); err != nil {
		return reportError(cmd, err)
	}
	return nil
}

// buildStore parses the command-line assignments and layers them over the
// per-project defaults from shipout.toml. Command-line values always win;
// project defaults only fill variables with no usable value.
func buildStore(assignments []string) (*vars.Store, error) {
	store, err := vars.ParseAssignments(assignments)
	if err != nil {
		return nil, err
	}

	dir, err := os.Getwd()
	if err != nil {
		return store, nil
	}
	defaults, err := config.LoadProjectVars(dir)
	if err != nil {
		return nil, err
	}
	for name, value := range defaults {
		if !store.Has(vars.Name(name)) {
			store.Set(vars.Name(name), value)
		}
	}
	return store, nil
}

// reportError prints a single styled diagnostic and converts the error into
// an ExitError so Execute exits 1. The missing-variable listing has already
// been written by the dispatcher at this point.
func reportError(cmd *cobra.Command, err error) error {
	var missing *dispatch.MissingVarsError
	if !errors.As(err, &missing) {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	}
	return &ExitError{Code: 1, Err: err}
}
