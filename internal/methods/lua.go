// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"shipout-cli/internal/issue"
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"
)

// LuaAction publishes a source archive the lua.org way: the dist make
// target builds the archive and prints the upload command, shipout runs the
// upload, waits for the mirror to serve the file, and verifies the detached
// signature against the downloaded copy.
type LuaAction struct{}

// Execute runs the archive release procedure.
func (*LuaAction) Execute(ctx context.Context, env *method.Env) error {
	runner := env.Runner
	tools := env.Config.Tools

	output, err := runner.RunCapture(ctx, tools.Make, "dist")
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("build distribution archive").
			WithResource(tools.Make + " dist").
			Wrap(err).
			Build()
	}

	if runner.DryRun() {
		// No real make output to parse; describe the remaining steps from
		// the variables instead.
		pkg, version := env.Vars.Get(vars.Package), env.Vars.Get(vars.Version)
		archive := fmt.Sprintf("%s-%s.tar.gz", pkg, version)
		_ = runner.Run(ctx, tools.Scp, archive, archive+".asc", "<upload-host>:")
		_ = runner.Run(ctx, tools.Curl, "-f", "-s", "-I", archiveURL(env.Vars.Get(vars.URL), archive))
		_ = runner.Run(ctx, tools.Gpg, "--verify", archive+".asc")
		return nil
	}

	spec, err := ParseUploadOutput(output)
	if err != nil {
		return err
	}

	archive := spec.Archive()
	signature := archive + ".asc"
	if err := runner.Run(ctx, tools.Scp, archive, signature, spec.Host+":"); err != nil {
		return issue.NewErrorContext().
			WithOperation("upload archive").
			WithResource(spec.Host).
			Wrap(err).
			Build()
	}

	url := archiveURL(env.Vars.Get(vars.URL), archive)
	if err := waitForArchive(ctx, env, url); err != nil {
		return err
	}

	downloaded := filepath.Join(env.Dir, "downloaded-"+archive)
	if err := runner.Run(ctx, tools.Curl, "-f", "-s", "-o", downloaded, url); err != nil {
		return issue.NewErrorContext().
			WithOperation("download uploaded archive").
			WithResource(url).
			Wrap(err).
			Build()
	}
	if err := runner.Run(ctx, tools.Gpg, "--verify", signature, downloaded); err != nil {
		return issue.NewErrorContext().
			WithOperation("verify archive signature").
			WithResource(signature).
			Wrap(err).
			Build()
	}

	env.Logger.Info("archive released", "archive", archive, "announcement draft", spec.EmailFile)
	return nil
}

// waitForArchive polls until the mirror serves the archive, with a fixed
// attempt count and interval. This is a wait-for-availability heuristic, not
// a general retry policy.
func waitForArchive(ctx context.Context, env *method.Env, url string) error {
	attempts := env.Config.PollAttempts
	interval := time.Duration(env.Config.PollIntervalSeconds) * time.Second

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = env.Runner.Run(ctx, env.Config.Tools.Curl, "-f", "-s", "-I", url)
		if lastErr == nil {
			return nil
		}
		env.Logger.Info("archive not yet available", "attempt", attempt, "of", attempts)
		if attempt < attempts {
			env.Sleep(interval)
		}
	}
	return issue.NewErrorContext().
		WithOperation("wait for archive availability").
		WithResource(url).
		WithSuggestion("The mirror may be slow; rerun once the upload has propagated").
		Wrap(lastErr).
		Build()
}

func archiveURL(home, archive string) string {
	return strings.TrimSuffix(home, "/") + "/" + archive
}
