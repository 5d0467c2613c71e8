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

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/rorsplit/test"
	"github.com/jetsetilly/rorsplit/version"
)

var testdata = filepath.Join("transcript", "testdata")

func TestVersionMode(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"version"}, tw), 0)
	test.ExpectEquality(t, tw.String(), version.String()+"\n")
}

func TestHelp(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"-help"}, tw), 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "available sub-modes: REPLAY, REGRESS, PERFORMANCE, BUILDS, SETTINGS, VERSION"))

	tw.Clear()
	test.ExpectEquality(t, launch([]string{"replay", "-help"}, tw), 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "for REPLAY mode"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "-settings"))
}

func TestSettingsMode(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"settings"}, tw), 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "ror2_death"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "start          true"))
}

func TestBuildsMode(t *testing.T) {
	tw := &test.Writer{}
	test.ExpectEquality(t, launch([]string{"builds", "-fields", "returns"}, tw), 0)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "Risk of Rain Returns"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "1.0.4"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "in_game_time"))
	test.ExpectFailure(t, strings.Contains(tw.String(), "Risk of Rain 2"))
}

func TestReplayMode(t *testing.T) {
	tw := &test.Writer{}
	code := launch([]string{"replay", filepath.Join(testdata, "ror1.transcript")}, tw)
	test.ExpectEquality(t, code, 0, tw.String())
	test.ExpectSuccess(t, strings.Contains(tw.String(), "replaying ror1"))
	test.ExpectSuccess(t, strings.Contains(tw.String(), "NotifyRunStarted"))

	// the transcript expects the timer to start. disabling the start on the
	// command line fails the expectation
	tw.Clear()
	code = launch([]string{"replay", "-settings", "start::false", filepath.Join(testdata, "ror1.transcript")}, tw)
	test.ExpectEquality(t, code, 20)
	test.ExpectSuccess(t, strings.Contains(tw.String(), "error in REPLAY mode"))

	// structure dump to a new file in a directory
	dir := t.TempDir()
	tw.Clear()
	code = launch([]string{"replay", "-memviz", dir, filepath.Join(testdata, "ror2.transcript")}, tw)
	test.ExpectEquality(t, code, 0, tw.String())
	dots, err := filepath.Glob(filepath.Join(dir, "memviz_ror2_*.dot"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(dots), 1)

	tw.Clear()
	code = launch([]string{"replay"}, tw)
	test.ExpectEquality(t, code, 20)

	tw.Clear()
	code = launch([]string{"replay", "-nonsense"}, tw)
	test.ExpectEquality(t, code, 20)
}

func TestRegressMode(t *testing.T) {
	tw := &test.Writer{}
	code := launch([]string{"regress", testdata}, tw)
	test.ExpectEquality(t, code, 0, tw.String())
	test.ExpectSuccess(t, strings.Contains(tw.String(), "succeed: "))

	tw.Clear()
	code = launch([]string{"regress", filepath.Join(t.TempDir(), "missing.transcript")}, tw)
	test.ExpectEquality(t, code, 20)
}

func TestPerformanceMode(t *testing.T) {
	tw := &test.Writer{}
	code := launch([]string{"performance", "-duration", "20ms", filepath.Join(testdata, "rorr.transcript")}, tw)
	test.ExpectEquality(t, code, 0, tw.String())
	test.ExpectSuccess(t, strings.Contains(tw.String(), "tps"))

	tw.Clear()
	code = launch([]string{"performance", "-profile", "gpu", filepath.Join(testdata, "rorr.transcript")}, tw)
	test.ExpectEquality(t, code, 20)
}
