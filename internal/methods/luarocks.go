// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"
	"fmt"
	"path/filepath"

	"shipout-cli/internal/issue"
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"
)

// LuarocksAction uploads every rockspec matching the package and version to
// the LuaRocks repository. When the rockrev variable is set only that
// revision is uploaded.
type LuarocksAction struct{}

// Execute globs the rockspecs and uploads each in turn.
func (*LuarocksAction) Execute(ctx context.Context, env *method.Env) error {
	pattern := rockspecPattern(env)

	matches, err := filepath.Glob(filepath.Join(env.Dir, pattern))
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("find rockspecs").
			WithResource(pattern).
			Wrap(err).
			Build()
	}

	if len(matches) == 0 {
		if env.Runner.DryRun() {
			// Nothing on disk to enumerate; show the command shape instead.
			return env.Runner.Run(ctx, env.Config.Tools.Luarocks, "upload", pattern)
		}
		return issue.NewErrorContext().
			WithOperation("find rockspecs").
			WithResource(pattern).
			WithSuggestion("Generate the rockspec before releasing, or set rockrev=<n>").
			Wrap(fmt.Errorf("no files match")).
			Build()
	}

	for _, rockspec := range matches {
		if err := env.Runner.Run(ctx, env.Config.Tools.Luarocks, "upload", rockspec); err != nil {
			return issue.NewErrorContext().
				WithOperation("upload rockspec").
				WithResource(rockspec).
				Wrap(err).
				Build()
		}
	}
	return nil
}

func rockspecPattern(env *method.Env) string {
	pkg := env.Vars.Get(vars.Package)
	version := env.Vars.Get(vars.Version)
	if rev := env.Vars.Get(vars.RockRev); rev != "" {
		return fmt.Sprintf("%s-%s-%s.rockspec", pkg, version, rev)
	}
	return fmt.Sprintf("%s-%s-*.rockspec", pkg, version)
}
