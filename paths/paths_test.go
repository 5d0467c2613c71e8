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
	"testing"
	"time"

	"github.com/jetsetilly/rorsplit/test"
)

func TestResourcePath(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", filepath.Join(t.TempDir(), "appdata"))

	cnf, err := os.UserConfigDir()
	test.DemandSuccess(t, err)

	pth, err := ResourcePath("transcripts", "ror1.transcript")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(cnf, "rorsplit", "transcripts", "ror1.transcript"))

	// portable directory takes precedence
	test.DemandSuccess(t, os.Mkdir(portablePath, 0700))

	pth, err = ResourcePath("transcripts", "ror1.transcript")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".rorsplit", "transcripts", "ror1.transcript"))

	pth, err = ResourcePath("", "transcripts")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".rorsplit", "transcripts"))

	pth, err = ResourcePath()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".rorsplit")
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename("memviz", "ror1", n), "memviz_ror1_20240309_140507")
	test.ExpectEquality(t, uniqueFilename("memviz", " ", n), "memviz_20240309_140507")
	test.ExpectEquality(t, uniqueFilename("memviz", "Risk of Rain", n), "memviz_Risk_of_Rain_20240309_140507")
}
