// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the shipout CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"shipout-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// dryRun replaces every external invocation with a printed description
	dryRun bool
	// listVars prints the required-variable listing instead of executing
	listVars bool

	// rootCmd represents the base command; shipout has no subcommands, the
	// root itself performs the release.
	rootCmd = &cobra.Command{
		Use:   "shipout <method,method,...> [name=value ...]",
		Short: "A release orchestration tool",
		Long: TitleStyle.Render("shipout") + SubtitleStyle.Render(" - A release orchestration tool") + `

shipout publishes a release through a list of named methods - package
hosts, announcement mailing lists, source archive mirrors - validating
up front that every variable the selected methods need is present.

` + SubtitleStyle.Render("Examples:") + `
  shipout null                                  dry dispatch check
  shipout luarocks package=foo version=1.0      upload matching rockspecs
  shipout lua,luarocks --vars                   list required variables
  shipout github package=foo version=1.0 --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRelease,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print external commands instead of running them")
	rootCmd.Flags().BoolVar(&listVars, "vars", false, "list the variables the selected methods require and exit")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// newLogger builds the run logger; --verbose raises it to debug level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render their suggestions; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
