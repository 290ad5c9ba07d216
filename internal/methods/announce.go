// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"context"

	"shipout-cli/internal/mail"
	"shipout-cli/internal/method"
	"shipout-cli/internal/notes"
	"shipout-cli/internal/vars"
)

// AnnounceAction mails a release announcement built from the description and
// the release-notes file.
type AnnounceAction struct{}

// Execute composes and sends the announcement.
func (*AnnounceAction) Execute(ctx context.Context, env *method.Env) error {
	notesText, err := notes.Read(env.Vars.Get(vars.Notes))
	if err != nil {
		if !env.Runner.DryRun() {
			return err
		}
		// The notes file may never have been written in dry-run mode (the
		// editor invocation was simulated); stand in for its contents.
		notesText = "(release notes)"
	}

	msg := mail.Announcement(
		env.Vars.Get(vars.Package),
		env.Vars.Get(vars.Version),
		env.Vars.Get(vars.Description),
		notesText,
		env.Vars.Get(vars.Email),
		env.Config.MailWrapColumn,
	)
	return mail.Send(ctx, env.Runner, env.Config.Tools.Sendmail, msg)
}
