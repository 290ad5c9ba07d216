// SPDX-License-Identifier: MPL-2.0

// Package vars defines the release variable vocabulary and the store that
// holds the values supplied for a run.
package vars

import (
	"fmt"
	"slices"
	"strings"
)

// Name identifies a release variable.
type Name string

// The known variable vocabulary. Required-variable sets declared by release
// methods draw from these names; the store itself also accepts names outside
// the vocabulary so that newer front ends can pass values through.
const (
	Package     Name = "package"
	Version     Name = "version"
	RockRev     Name = "rockrev"
	Description Name = "description"
	Dists       Name = "dists"
	Email       Name = "email"
	Notes       Name = "notes"
	URL         Name = "url"
)

var vocabulary = map[Name]string{
	Package:     "name of the package being released",
	Version:     "version being released (e.g. 1.4.2)",
	RockRev:     "rockspec revision appended to the version (e.g. 1)",
	Description: "one-line description of the package",
	Dists:       "space-separated list of distribution archives to upload",
	Email:       "address of the announcement mailing list",
	Notes:       "path to the release notes file",
	URL:         "home page URL of the package",
}

// Vocabulary returns the known variable names sorted by name.
func Vocabulary() []Name {
	names := make([]Name, 0, len(vocabulary))
	for n := range vocabulary {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Help returns the help text for a known variable, or an empty string for
// names outside the vocabulary.
func Help(n Name) string {
	return vocabulary[n]
}

// Known reports whether n belongs to the variable vocabulary.
func Known(n Name) bool {
	_, ok := vocabulary[n]
	return ok
}

// Store maps variable names to string values. A variable whose value is the
// empty string is treated as absent everywhere; Has encodes that rule so
// callers never need to check for "" themselves.
type Store struct {
	values map[Name]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[Name]string)}
}

// Set records a value for name. Setting an empty value is allowed but leaves
// the variable absent as far as Has is concerned.
func (s *Store) Set(name Name, value string) {
	s.values[name] = value
}

// Get returns the value for name, or an empty string when unset.
func (s *Store) Get(name Name) string {
	return s.values[name]
}

// Has reports whether name has a usable (non-empty) value.
func (s *Store) Has(name Name) bool {
	return s.values[name] != ""
}

// BareArgumentError is returned by ParseAssignments for an argument that is
// not in name=value form.
type BareArgumentError struct {
	Arg string
}

func (e *BareArgumentError) Error() string {
	return fmt.Sprintf("argument %q is not a name=value assignment", e.Arg)
}

// ParseAssignments builds a store from name=value arguments. Each argument is
// split on its first '='; the value may be empty or contain further '='
// characters. A repeated name keeps the last value. An argument with no '='
// at all is rejected rather than silently ignored.
func ParseAssignments(args []string) (*Store, error) {
	store := NewStore()
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, &BareArgumentError{Arg: arg}
		}
		store.Set(Name(name), value)
	}
	return store, nil
}
