// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"
	"fmt"
	"strings"

	"shipout-cli/internal/issue"
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"
)

// SourceforgeAction uploads each listed distribution archive to the
// project's SourceForge file area over rsync.
type SourceforgeAction struct{}

// Execute uploads the archives named by the dists variable, in order.
func (*SourceforgeAction) Execute(ctx context.Context, env *method.Env) error {
	pkg := env.Vars.Get(vars.Package)
	dests := fmt.Sprintf("frs.sourceforge.net:/home/frs/project/%s/", pkg)

	for _, dist := range strings.Fields(env.Vars.Get(vars.Dists)) {
		if err := env.Runner.Run(ctx, env.Config.Tools.Rsync, "-e", "ssh", dist, dests); err != nil {
			return issue.NewErrorContext().
				WithOperation("upload distribution").
				WithResource(dist).
				Wrap(err).
				Build()
		}
	}
	return nil
}
