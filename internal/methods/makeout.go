// SPDX-License-Identifier: MPL-2.0

package methods

import (
	"errors"
	"regexp"

	"shipout-cli/internal/issue"
)

// UploadSpec is the structured form of the upload command the dist make
// target emits. The target prints, among other output, an scp command for
// the archive and a mail redirection naming the announcement draft:
//
//	scp foo-1.0.tar.gz web@example.org:archives/
//	mail -s "foo 1.0" list < foo-1.0.announce
//
// Parsing another program's text output is inherently fragile, so the
// extraction lives here behind explicit errors instead of being mixed into
// the action's control flow.
type UploadSpec struct {
	Host      string
	Package   string
	Version   string
	Suffix    string
	EmailFile string
}

var (
	errNoUploadLine   = errors.New("no scp upload line found")
	errNoAnnounceFile = errors.New("no announcement file reference found")

	uploadLineRe = regexp.MustCompile(`(?m)^\s*scp\s+([A-Za-z0-9_.+-]+?)-([0-9][A-Za-z0-9.+-]*?)(\.tar\.gz|\.tgz|\.zip)\s+([^\s:]+):`)
	emailFileRe  = regexp.MustCompile(`(?m)^\s*mail\b[^<\n]*<\s*(\S+)`)
)

// Archive returns the archive file name the spec describes.
func (s UploadSpec) Archive() string {
	return s.Package + "-" + s.Version + s.Suffix
}

// ParseUploadOutput extracts the upload spec from the dist target's output.
// It fails explicitly when either the upload command or the announcement
// file reference cannot be found.
func ParseUploadOutput(output string) (UploadSpec, error) {
	m := uploadLineRe.FindStringSubmatch(output)
	if m == nil {
		return UploadSpec{}, issue.NewErrorContext().
			WithOperation("parse upload command").
			Wrap(errNoUploadLine).
			Build()
	}
	spec := UploadSpec{
		Package: m[1],
		Version: m[2],
		Suffix:  m[3],
		Host:    m[4],
	}

	e := emailFileRe.FindStringSubmatch(output)
	if e == nil {
		return UploadSpec{}, issue.NewErrorContext().
			WithOperation("parse upload command").
			Wrap(errNoAnnounceFile).
			Build()
	}
	spec.EmailFile = e[1]

	return spec, nil
}
