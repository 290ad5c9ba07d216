// SPDX-License-Identifier: MPL-2.0

// Package methods holds the built-in release methods. Each method is a
// descriptor pairing a required-variable set with an Action; the dispatch
// engine never knows which concrete methods exist.
package methods

import (
	"shipout-cli/internal/method"
	"shipout-cli/internal/vars"
)

// Builtin returns the registry of built-in release methods.
func Builtin() (*method.Registry, error) {
	return method.NewRegistry(
		&method.Descriptor{
			Name:    "null",
			Summary: "do nothing (dispatch smoke test)",
			Action:  &NullAction{},
		},
		&method.Descriptor{
			Name:     "lua",
			Summary:  "upload a source archive to the lua.org-style mirror and verify it",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Description, vars.URL},
			Action:   &LuaAction{},
		},
		&method.Descriptor{
			Name:     "luarocks",
			Summary:  "upload matching rockspecs to the LuaRocks repository",
			Requires: []vars.Name{vars.Package, vars.Version},
			Action:   &LuarocksAction{},
		},
		&method.Descriptor{
			Name:     "announce",
			Summary:  "mail a release announcement to the mailing list",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Description, vars.Email, vars.Notes},
			Action:   &AnnounceAction{},
		},
		&method.Descriptor{
			Name:     "github",
			Summary:  "create a GitHub release from the notes file",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Notes},
			Action:   &GithubAction{},
		},
		&method.Descriptor{
			Name:     "sourceforge",
			Summary:  "upload distribution archives to the SourceForge file area",
			Requires: []vars.Name{vars.Package, vars.Version, vars.Dists},
			Action:   &SourceforgeAction{},
		},
	)
}
