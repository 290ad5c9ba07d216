// SPDX-License-Identifier: MPL-2.0

package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"shipout-cli/internal/execx"
)

func TestAnnouncement(t *testing.T) {
	t.Parallel()

	msg := Announcement("foo", "1.0", "a handy tool", "now with fewer bugs", "list@example.org", 72)

	if msg.Subject != "[ANN] foo 1.0" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if msg.To != "list@example.org" {
		t.Errorf("To = %q", msg.To)
	}
	for _, want := range []string{"foo 1.0 is now available:", "a handy tool", "now with fewer bugs"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestAnnouncementWrapsLongLines(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)
	msg := Announcement("foo", "1.0", "", long, "list@example.org", 72)

	for _, line := range strings.Split(msg.Body, "\n") {
		if len(line) > 72 {
			t.Errorf("line longer than wrap column: %q", line)
		}
	}
}

func TestRenderHeaders(t *testing.T) {
	t.Parallel()

	m := Message{To: "list@example.org", Subject: "[ANN] foo 1.0", Body: "body\n"}
	raw := m.Render()

	if !strings.HasPrefix(raw, "To: list@example.org\nSubject: [ANN] foo 1.0\n\n") {
		t.Errorf("Render headers wrong:\n%s", raw)
	}
	if !strings.HasSuffix(raw, "body\n") {
		t.Errorf("Render body wrong:\n%s", raw)
	}
}

func TestSendDryRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := Announcement("foo", "1.0", "desc", "notes", "list@example.org", 72)
	if err := Send(context.Background(), execx.NewDryRunner(&buf), "sendmail", m); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got, want := buf.String(), "+ sendmail -t\n"; got != want {
		t.Errorf("dry-run output = %q, want %q", got, want)
	}
}
