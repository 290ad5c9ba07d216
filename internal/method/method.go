// SPDX-License-Identifier: MPL-2.0

// Package method defines release methods: named publishing targets with a
// declared required-variable set and a release action. The registry is
// data-driven (name to descriptor) so adding a method never touches the
// dispatch logic.
package method

import (
	"context"
	"fmt"
	"slices"
	"time"

	"shipout-cli/internal/config"
	"shipout-cli/internal/execx"
	"shipout-cli/internal/vars"

	"github.com/charmbracelet/log"
)

type (
	// Env carries everything a release action may read: the variable store
	// (read-only by the time actions run), the process runner, the resolved
	// configuration, and the logger. Sleep is injectable so polling actions
	// stay testable.
	Env struct {
		Vars   *vars.Store
		Runner execx.Runner
		Config *config.Config
		Logger *log.Logger

		// Dir is the working directory artifacts are resolved against.
		Dir string

		// Sleep pauses between polling attempts; defaults to time.Sleep.
		Sleep func(time.Duration)
	}

	// Action is a release procedure. Implementations perform external side
	// effects through env.Runner and report failure via the returned error.
	Action interface {
		Execute(ctx context.Context, env *Env) error
	}

	// Descriptor describes one release method. Requires is declared at
	// registration time and never mutated; every entry must come from the
	// variable vocabulary.
	Descriptor struct {
		Name     string
		Summary  string
		Requires []vars.Name
		Action   Action
	}

	// Registry maps method names to descriptors. It is built once at
	// startup and read-only afterwards.
	Registry struct {
		descriptors map[string]*Descriptor
	}

	// NotFoundError reports a selection naming an unregistered method.
	NotFoundError struct {
		Name string
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such method %s", e.Name)
}

// NewRegistry builds a registry from descriptors. Duplicate names and
// required variables outside the vocabulary are programming errors and are
// rejected.
func NewRegistry(descriptors ...*Descriptor) (*Registry, error) {
	r := &Registry{descriptors: make(map[string]*Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("method descriptor with empty name")
		}
		if _, exists := r.descriptors[d.Name]; exists {
			return nil, fmt.Errorf("method %s registered twice", d.Name)
		}
		if d.Action == nil {
			return nil, fmt.Errorf("method %s has no action", d.Name)
		}
		for _, req := range d.Requires {
			if !vars.Known(req) {
				return nil, fmt.Errorf("method %s requires unknown variable %s", d.Name, req)
			}
		}
		r.descriptors[d.Name] = d
	}
	return r, nil
}

// Lookup returns the descriptor for name or a NotFoundError.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}

// Names returns all registered method names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// UnionOf computes the union of the required-variable sets across the
// selection. Duplicate descriptors collapse; the result is independent of
// selection order.
func UnionOf(selection []*Descriptor) map[vars.Name]struct{} {
	required := make(map[vars.Name]struct{})
	seen := make(map[string]struct{}, len(selection))
	for _, d := range selection {
		if _, dup := seen[d.Name]; dup {
			continue
		}
		seen[d.Name] = struct{}{}
		for _, name := range d.Requires {
			required[name] = struct{}{}
		}
	}
	return required
}

// Missing returns the required names with no usable value in the store,
// sorted by name. It is a pure function of its inputs.
func Missing(required map[vars.Name]struct{}, store *vars.Store) []vars.Name {
	var missing []vars.Name
	for name := range required {
		if !store.Has(name) {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	return missing
}

// SortedNames returns the members of a required-variable set sorted.
func SortedNames(set map[vars.Name]struct{}) []vars.Name {
	names := make([]vars.Name, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
