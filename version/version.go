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

// Package version reports the name and version of the application. Version
// information is taken from the build information embedded by the Go
// toolchain when the makefile has not set a version number.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application
const ApplicationName = "RoRSplit"

// set by the linker. if number is empty then the project was probably not
// built using the makefile
var number string

var revision string

// version is "unreleased" for a manual build with vcs information and
// "local" when there is no vcs information at all (eg. "go run .")
var version string

// Version returns the version string, the revision string and whether this is a
// numbered "release" version.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name and version in a single line suitable
// for the VERSION mode of the CLI and for the start of a log.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func parse(info *debug.BuildInfo, ok bool, num string) (string, string) {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	rev := "no revision information"
	if vcsRevision != "" {
		rev = vcsRevision
		if vcsModified {
			rev = fmt.Sprintf("%s+dirty", rev)
		}
	}

	if num != "" {
		return num, rev
	}
	if vcs {
		return "unreleased", rev
	}
	return "local", rev
}

func init() {
	info, ok := debug.ReadBuildInfo()
	version, revision = parse(info, ok, number)
}
