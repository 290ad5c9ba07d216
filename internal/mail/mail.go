// SPDX-License-Identifier: MPL-2.0

// Package mail builds and sends release announcement messages through the
// configured mail transfer agent.
package mail

import (
	"context"
	"fmt"
	"strings"

	"shipout-cli/internal/execx"
	"shipout-cli/internal/issue"

	"github.com/muesli/reflow/wordwrap"
)

// Message is a fully composed announcement.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Announcement composes the standard release announcement: an [ANN] subject
// line and a body of the description followed by the release notes, wrapped
// at wrapColumn.
func Announcement(pkg, version, description, notesText, to string, wrapColumn int) Message {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("%s %s is now available:\n", pkg, version))
	if description != "" {
		body.WriteString("\n")
		body.WriteString(wordwrap.String(description, wrapColumn))
		body.WriteString("\n")
	}
	if notesText != "" {
		body.WriteString("\n")
		body.WriteString(wordwrap.String(notesText, wrapColumn))
		body.WriteString("\n")
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("[ANN] %s %s", pkg, version),
		Body:    body.String(),
	}
}

// Render produces the raw message handed to the mail agent's stdin,
// RFC 5322 style headers followed by a blank line and the body.
func (m Message) Render() string {
	var raw strings.Builder
	fmt.Fprintf(&raw, "To: %s\n", m.To)
	fmt.Fprintf(&raw, "Subject: %s\n", m.Subject)
	raw.WriteString("\n")
	raw.WriteString(m.Body)
	return raw.String()
}

// Send pipes the rendered message into the mail agent (sendmail -t style,
// recipients taken from the headers).
func Send(ctx context.Context, runner execx.Runner, agent string, m Message) error {
	if err := runner.RunInput(ctx, m.Render(), agent, "-t"); err != nil {
		return issue.NewErrorContext().
			WithOperation("send announcement").
			WithResource(m.To).
			Wrap(err).
			Build()
	}
	return nil
}
