// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"shipout-cli/internal/config"
	"shipout-cli/internal/execx"
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"

	"github.com/charmbracelet/log"
)

// recordingAction notes that it ran and optionally fails.
type recordingAction struct {
	ran *[]string

	name string
	err  error
}

func (a *recordingAction) Execute(context.Context, *method.Env) error {
	*a.ran = append(*a.ran, a.name)
	return a.err
}

type fixture struct {
	dispatcher *Dispatcher
	ran        []string
	out        *bytes.Buffer
}

func newFixture(t *testing.T, failures map[string]error) *fixture {
	t.Helper()

	f := &fixture{out: &bytes.Buffer{}}
	action := func(name string) *recordingAction {
		return &recordingAction{ran: &f.ran, name: name, err: failures[name]}
	}

	registry, err := method.NewRegistry(
		&method.Descriptor{Name: "null", Summary: "no-op", Action: action("null")},
		&method.Descriptor{
			Name: "lua", Summary: "archive",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Description, vars.URL},
			Action:   action("lua"),
		},
		&method.Descriptor{
			Name: "luarocks", Summary: "rocks",
			Requires: []vars.Name{vars.Package, vars.Version},
			Action:   action("luarocks"),
		},
		&method.Descriptor{
			Name: "announce", Summary: "mail",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Description, vars.Email, vars.Notes},
			Action:   action("announce"),
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Editor = "true" // exits 0 without touching the file

	f.dispatcher = &Dispatcher{
		Registry: registry,
		Store:    vars.NewStore(),
		Config:   cfg,
		Runner:   execx.NewDryRunner(f.out),
		Logger:   log.New(io.Discard),
		Dir:      t.TempDir(),
		Out:      f.out,
		Sleep:    func(time.Duration) {},
	}
	return f
}

func TestRunNullMethod(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	if err := f.dispatcher.Run(context.Background(), "null"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.ran) != 1 || f.ran[0] != "null" {
		t.Errorf("ran = %v", f.ran)
	}
}

func TestRunUnknownMethodFailsFast(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	err := f.dispatcher.Run(context.Background(), "null,nosuchmethod,luarocks")

	var notFound *method.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if notFound.Name != "nosuchmethod" {
		t.Errorf("offending name = %q", notFound.Name)
	}
	if len(f.ran) != 0 {
		t.Errorf("actions ran before validation: %v", f.ran)
	}
}

func TestRunSelectionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		selection string
	}{
		{"duplicate method", "null,null"},
		{"empty element", "null,,luarocks"},
		{"trailing comma", "null,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)
			err := f.dispatcher.Run(context.Background(), tt.selection)
			var selErr *SelectionError
			if !errors.As(err, &selErr) {
				t.Errorf("error = %v, want SelectionError", err)
			}
			if len(f.ran) != 0 {
				t.Errorf("actions ran: %v", f.ran)
			}
		})
	}
}

func TestRunMissingVariablesAbortsWithListing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.dispatcher.Store.Set(vars.Package, "foo")
	f.dispatcher.Store.Set(vars.Version, "1.0")

	err := f.dispatcher.Run(context.Background(), "lua,luarocks")

	var missing *MissingVarsError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingVarsError", err)
	}
	want := []vars.Name{vars.Description, vars.URL}
	if len(missing.Missing) != len(want) {
		t.Fatalf("Missing = %v, want %v", missing.Missing, want)
	}
	for i := range want {
		if missing.Missing[i] != want[i] {
			t.Errorf("Missing[%d] = %v, want %v", i, missing.Missing[i], want[i])
		}
	}

	out := f.out.String()
	for _, token := range []string{"description", "one-line description", "* "} {
		if !strings.Contains(out, token) {
			t.Errorf("listing missing %q:\n%s", token, out)
		}
	}
	if len(f.ran) != 0 {
		t.Errorf("actions ran despite missing variables: %v", f.ran)
	}
}

func TestRunListVarsWithEverythingSupplied(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.dispatcher.ListVars = true
	f.dispatcher.Store.Set(vars.Package, "foo")
	f.dispatcher.Store.Set(vars.Version, "1.0")

	if err := f.dispatcher.Run(context.Background(), "luarocks"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.ran) != 0 {
		t.Errorf("--vars executed methods: %v", f.ran)
	}

	out := f.out.String()
	if !strings.Contains(out, "package") || !strings.Contains(out, "version") {
		t.Errorf("listing incomplete:\n%s", out)
	}

	// Sorted by name: package before version.
	if strings.Index(out, "package") > strings.Index(out, "version") {
		t.Errorf("listing not sorted:\n%s", out)
	}
}

func TestRunListVarsEmptyRequirement(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.dispatcher.ListVars = true
	if err := f.dispatcher.Run(context.Background(), "null"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(f.out.String(), "No variables required.") {
		t.Errorf("output = %q", f.out.String())
	}
}

func TestRunExecutesInSelectionOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.dispatcher.Store.Set(vars.Package, "foo")
	f.dispatcher.Store.Set(vars.Version, "1.0")

	if err := f.dispatcher.Run(context.Background(), "luarocks,null"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.ran) != 2 || f.ran[0] != "luarocks" || f.ran[1] != "null" {
		t.Errorf("ran = %v, want [luarocks null]", f.ran)
	}
}

func TestRunFailFastStopsRemainingMethods(t *testing.T) {
	t.Parallel()

	f := newFixture(t, map[string]error{"luarocks": errors.New("upload refused")})
	f.dispatcher.Store.Set(vars.Package, "foo")
	f.dispatcher.Store.Set(vars.Version, "1.0")

	err := f.dispatcher.Run(context.Background(), "luarocks,null")
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "release via luarocks") {
		t.Errorf("error = %v", err)
	}
	if len(f.ran) != 1 {
		t.Errorf("ran = %v, want only the failing method", f.ran)
	}
}

func TestRunAcquiresNotesWhenRequired(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	store := f.dispatcher.Store
	store.Set(vars.Package, "foo")
	store.Set(vars.Version, "1.0")
	store.Set(vars.Description, "a tool")
	store.Set(vars.Email, "list@example.org")

	if err := f.dispatcher.Run(context.Background(), "announce"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !store.Has(vars.Notes) {
		t.Error("notes variable not acquired")
	}
	// The dry runner printed the simulated editor invocation.
	if !strings.Contains(f.out.String(), "+ true ") {
		t.Errorf("editor invocation not simulated:\n%s", f.out.String())
	}
	if len(f.ran) != 1 || f.ran[0] != "announce" {
		t.Errorf("ran = %v", f.ran)
	}
}

func TestRunNotesAcquisitionWithoutEditorAborts(t *testing.T) {
	f := newFixture(t, nil)
	f.dispatcher.Config.Editor = ""
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	store := f.dispatcher.Store
	store.Set(vars.Package, "foo")
	store.Set(vars.Version, "1.0")
	store.Set(vars.Description, "a tool")
	store.Set(vars.Email, "list@example.org")

	if err := f.dispatcher.Run(context.Background(), "announce"); err == nil {
		t.Fatal("expected configuration error")
	}
	if len(f.ran) != 0 {
		t.Errorf("ran = %v", f.ran)
	}
}

func TestRunDryRunIsDeterministic(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	store := f.dispatcher.Store
	store.Set(vars.Package, "foo")
	store.Set(vars.Version, "1.0")
	store.Set(vars.Description, "a tool")
	store.Set(vars.Email, "list@example.org")

	render := func() string {
		f.out.Reset()
		if err := f.dispatcher.Run(context.Background(), "announce,null"); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return f.out.String()
	}
	if first, second := render(), render(); first != second {
		t.Errorf("dry-run output differs:\n%q\n%q", first, second)
	}
}
