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

package layout

import (
	"strings"
)

// the maximum length of a process name on Linux. longer names are
// truncated by the kernel
const linuxProcessNameLen = 15

// PlatformProcessName returns the name the process will have on the named
// operating system. The os string has the same form as runtime.GOOS.
func PlatformProcessName(os string, name string) string {
	if strings.HasPrefix(os, "linux") && len(name) > linuxProcessNameLen {
		return name[:linuxProcessNameLen]
	}
	return name
}

// MatchProcessName returns the title that uses the named process. Both the
// full name and the platform specific name are accepted.
func MatchProcessName(os string, name string) (Variant, bool) {
	for _, v := range Variants() {
		for _, n := range ProcessNames(v) {
			if name == n || name == PlatformProcessName(os, n) {
				return v, true
			}
		}
	}
	return 0, false
}
