// This file is part of RoRSplit.
//
// RoRSplit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// RoRSplit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RoRSplit.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/rorsplit/curated"
)

// Sentinal error patterns.
const (
	NoConfigDir = "paths: %v"
)

// the portable base path. used in preference to the user's config directory
// if it exists in the current directory
const portablePath = ".rorsplit"

const configDir = "rorsplit"

// ResourcePath returns the resource joined to the base path. Empty elements
// are ignored.
func ResourcePath(resource ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{b}, resource...)...), nil
}

func basePath() (string, error) {
	if fi, err := os.Stat(portablePath); err == nil && fi.IsDir() {
		return portablePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf(NoConfigDir, err)
	}

	return filepath.Join(cnf, configDir), nil
}
