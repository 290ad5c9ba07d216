// SPDX-License-Identifier: MPL-2.0

// Package notes handles the release-notes file: locating it, creating it
// through an interactive editor when absent, and reading its contents for
// methods that embed them in generated messages.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shipout-cli/internal/config"
	"shipout-cli/internal/execx"
	"shipout-cli/internal/issue"
	"shipout-cli/internal/vars"

	"mvdan.cc/sh/v3/shell"
)

// ErrNoEditor is the sentinel wrapped into the configuration error reported
// when notes must be created interactively but no editor is configured.
var ErrNoEditor = errors.New("no editor configured")

// Path returns the release-notes path for this run: the notes variable when
// supplied, otherwise the configured default inside dir.
func Path(store *vars.Store, cfg *config.Config, dir string) string {
	if store.Has(vars.Notes) {
		return store.Get(vars.Notes)
	}
	return filepath.Join(dir, cfg.NotesFile)
}

// Acquire makes sure the notes variable is satisfied. If the notes file
// already exists it is left untouched; otherwise the configured editor is
// launched to create it. On success the store is filled with the path (its
// only write after construction).
func Acquire(ctx context.Context, store *vars.Store, cfg *config.Config, runner execx.Runner, dir string) error {
	path := Path(store, cfg, dir)

	if _, err := os.Stat(path); err == nil {
		store.Set(vars.Notes, path)
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return issue.NewErrorContext().
			WithOperation("inspect release notes").
			WithResource(path).
			Wrap(err).
			Build()
	}

	editor := cfg.ResolveEditor()
	if editor == "" {
		return issue.NewErrorContext().
			WithOperation("create release notes").
			WithResource(path).
			WithSuggestion("Set EDITOR (or shipout's editor setting) to the editor to launch").
			WithSuggestion(fmt.Sprintf("Or write %s by hand and rerun", path)).
			Wrap(ErrNoEditor).
			Build()
	}

	argv, err := shell.Fields(editor, nil)
	if err != nil || len(argv) == 0 {
		return issue.NewErrorContext().
			WithOperation("parse editor command").
			WithResource(editor).
			Wrap(err).
			Build()
	}

	if err := runner.RunInteractive(ctx, argv[0], append(argv[1:], path)...); err != nil {
		return issue.NewErrorContext().
			WithOperation("edit release notes").
			WithResource(path).
			Wrap(err).
			Build()
	}

	store.Set(vars.Notes, path)
	return nil
}

// Read returns the contents of the notes file with the trailing newline
// stripped.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("read release notes").
			WithResource(path).
			Wrap(err).
			Build()
	}
	text := string(data)
	text = strings.TrimSuffix(text, "\r\n")
	text = strings.TrimSuffix(text, "\n")
	return text, nil
}
