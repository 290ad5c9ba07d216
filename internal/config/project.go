// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFileName is the per-project defaults file looked up in the working
// directory. It supplies variable values that command-line assignments
// override.
const ProjectFileName = "shipout.toml"

type projectFile struct {
	Vars map[string]string `toml:"vars"`
}

// LoadProjectVars reads variable defaults from dir/shipout.toml. A missing
// file yields an empty map; a malformed file is an error.
func LoadProjectVars(dir string) (map[string]string, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", ProjectFileName, err)
	}

	var pf projectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProjectFileName, err)
	}
	if pf.Vars == nil {
		return map[string]string{}, nil
	}
	return pf.Vars, nil
}
