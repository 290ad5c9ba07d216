// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"
	"fmt"

	"shipout-cli/internal/issue"
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"
)

// GithubAction creates a release through the gh CLI, using the notes file as
// the release body.
type GithubAction struct{}

// Execute creates the release.
func (*GithubAction) Execute(ctx context.Context, env *method.Env) error {
	pkg := env.Vars.Get(vars.Package)
	version := env.Vars.Get(vars.Version)

	err := env.Runner.Run(ctx, env.Config.Tools.Gh,
		"release", "create", "v"+version,
		"--title", fmt.Sprintf("%s %s", pkg, version),
		"--notes-file", env.Vars.Get(vars.Notes),
	)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create GitHub release").
			WithResource("v" + version).
			WithSuggestion("Check that gh is authenticated (gh auth status)").
			Wrap(err).
			Build()
	}
	return nil
}
