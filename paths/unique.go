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
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Format of returned string is:
//
//	prepend_name_YYYYMMDD_HHMMSS
//
// If name is empty the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS
func UniqueFilename(prepend string, name string) string {
	return uniqueFilename(prepend, name, time.Now())
}

func uniqueFilename(prepend string, name string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("%s_%s", prepend, timestamp)
	}

	// spaces are awkward on the command line
	name = strings.ReplaceAll(name, " ", "_")

	return fmt.Sprintf("%s_%s_%s", prepend, name, timestamp)
}
