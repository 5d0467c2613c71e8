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

package timer_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/hostsim"
	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/settings"
	"github.com/jetsetilly/rorsplit/splitter"
	"github.com/jetsetilly/rorsplit/test"
	"github.com/jetsetilly/rorsplit/timer"
)

// quiet environment for the logger
type quiet struct{}

func (quiet) AllowLogging() bool { return false }

var _ logger.Permission = quiet{}

const interval = time.Second / 60

type ticker struct {
	now time.Time
}

func (tk *ticker) next() host.Tick {
	tk.now = tk.now.Add(interval)
	return host.Tick{Now: tk.now, Interval: interval}
}

func ev(kind splitter.Kind) splitter.Event {
	return splitter.Event{Kind: kind}
}

func clock(seconds float64) splitter.Event {
	return splitter.Event{Kind: splitter.SetGameTime, GameTime: time.Duration(seconds * float64(time.Second))}
}

func expectCommands(t *testing.T, tm *hostsim.Timer, want ...hostsim.CommandKind) {
	t.Helper()
	var got []hostsim.CommandKind
	for _, c := range tm.Commands() {
		got = append(got, c.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", diff)
	}
	tm.Clear()
}

func TestStart(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	tick := tk.next()
	test.ExpectSuccess(t, c.Apply(tick, ev(splitter.Start), nil))
	expectCommands(t, tm, hostsim.CmdStart, hostsim.CmdSetGameTime)
	test.ExpectEquality(t, tm.GameTime(), time.Duration(0))
	test.ExpectSuccess(t, c.Session().Running)

	// the same event applied twice on the same tick
	test.ExpectFailure(t, c.Apply(tick, ev(splitter.Start), nil))

	// a start while already running
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Start), nil))
	expectCommands(t, tm)
}

func TestStartDisabled(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	toggles := splitter.PointsMap{settings.Start: false, settings.Split: true, settings.Reset: true}
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Start), toggles))
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Split), toggles))
	expectCommands(t, tm)
	test.ExpectFailure(t, c.Session().Running)
}

func TestIdempotence(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	// reset while not running
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Reset), nil))
	expectCommands(t, tm)

	c.Apply(tk.next(), ev(splitter.Start), nil)
	tm.Clear()

	// every event applied twice on the same tick produces one command
	for _, k := range []splitter.Kind{splitter.Split, splitter.Pause, splitter.Resume} {
		tick := tk.next()
		test.ExpectSuccess(t, c.Apply(tick, ev(k), nil), k)
		test.ExpectFailure(t, c.Apply(tick, ev(k), nil), k)
	}
	expectCommands(t, tm, hostsim.CmdSplit, hostsim.CmdPauseGameTime, hostsim.CmdResumeGameTime)

	// pause while paused and resume while running
	c.Apply(tk.next(), ev(splitter.Pause), nil)
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Pause), nil))
	c.Apply(tk.next(), ev(splitter.Resume), nil)
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Resume), nil))
	expectCommands(t, tm, hostsim.CmdPauseGameTime, hostsim.CmdResumeGameTime)

	tick := tk.next()
	test.ExpectSuccess(t, c.Apply(tick, ev(splitter.Reset), nil))
	test.ExpectFailure(t, c.Apply(tick, ev(splitter.Reset), nil))
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Reset), nil))
	expectCommands(t, tm, hostsim.CmdReset)
	test.ExpectEquality(t, c.Session(), timer.Session{})
}

func TestStartGameTime(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	// game time is zero at the start however long the tick interval is
	tick := tk.next()
	tick.Interval = 2 * time.Second
	test.ExpectSuccess(t, c.Apply(tick, ev(splitter.Start), nil))

	want := []hostsim.Command{
		{Kind: hostsim.CmdStart},
		{Kind: hostsim.CmdSetGameTime, GameTime: 0},
	}
	if diff := cmp.Diff(want, tm.Commands()); diff != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", diff)
	}
	test.ExpectEquality(t, c.Session().GameTime, time.Duration(0))
}

func TestGameTimeGarbage(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	c.Apply(tk.next(), ev(splitter.Start), nil)

	// a single garbage value is not added to game time. the clock is rebased
	// on the garbage value and then on the next real value
	for _, v := range []float64{10, 11, 12, 123456, 13, 14} {
		c.Apply(tk.next(), clock(v), nil)
	}
	test.ExpectEquality(t, c.Session().GameTime, 3*time.Second)
	test.ExpectEquality(t, tm.GameTime(), 3*time.Second)

	// a step larger than the limit is believed if the tick interval is long
	tick := tk.next()
	tick.Interval = 10 * time.Second
	test.ExpectSuccess(t, c.Apply(tick, clock(22), nil))
	test.ExpectEquality(t, c.Session().GameTime, 11*time.Second)
}

func TestGameTimeMonotonic(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	c.Apply(tk.next(), ev(splitter.Start), nil)

	// the first clock value is the base. the clock goes backwards once and
	// stands still while paused
	events := []splitter.Event{
		clock(10), clock(11), clock(12.5), clock(12), clock(13),
		ev(splitter.Pause), clock(20), clock(25),
		ev(splitter.Resume), clock(26), clock(26), clock(27),
	}

	var last time.Duration
	for _, e := range events {
		c.Apply(tk.next(), e, nil)
		gt := c.Session().GameTime
		test.ExpectSuccess(t, gt >= last, e)
		if c.Session().Paused {
			test.ExpectEquality(t, gt, last, e)
		}
		last = gt
	}

	// 1 + 1.5 + 1 + 1 + 1
	test.ExpectEquality(t, c.Session().GameTime, 5500*time.Millisecond)
	test.ExpectEquality(t, tm.GameTime(), 5500*time.Millisecond)

	// game time commands are only sent when game time increases
	test.ExpectEquality(t, tm.Count(hostsim.CmdSetGameTime), 1+5)
}

func TestSwitchingTitles(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	c.Apply(tk.next(), ev(splitter.Start), nil)
	c.Apply(tk.next(), clock(100), nil)
	c.Apply(tk.next(), clock(101), nil)
	tm.Clear()

	// the final split is sent even if splitting is disabled
	toggles := splitter.PointsMap{settings.Start: true, settings.Split: false, settings.Reset: true}
	test.ExpectSuccess(t, c.Apply(tk.next(), splitter.Event{Kind: splitter.Split, Final: true}, toggles))
	test.ExpectSuccess(t, c.Session().Switching)

	// game time is paused on the next tick without an event
	test.ExpectSuccess(t, c.Apply(tk.next(), splitter.Event{}, toggles))
	test.ExpectFailure(t, c.Apply(tk.next(), splitter.Event{}, toggles))

	// a resume while switching is ignored
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Resume), toggles))
	expectCommands(t, tm, hostsim.CmdSplit, hostsim.CmdPauseGameTime)

	// the start of the next title resumes game time
	test.ExpectSuccess(t, c.Apply(tk.next(), ev(splitter.Start), toggles))
	expectCommands(t, tm, hostsim.CmdResumeGameTime)
	test.ExpectFailure(t, c.Session().Switching)

	// the clock of the new title is a new base
	c.Apply(tk.next(), clock(0), toggles)
	c.Apply(tk.next(), clock(2), toggles)
	test.ExpectEquality(t, c.Session().GameTime, 3*time.Second)
}

func TestSync(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	test.ExpectEquality(t, c.Sync(), timer.SyncNone)

	c.Apply(tk.next(), ev(splitter.Start), nil)
	test.ExpectEquality(t, c.Sync(), timer.SyncNone)

	// the user resets the host timer
	tm.ForceState(host.TimerNotRunning)
	test.ExpectEquality(t, c.Sync(), timer.SyncHostReset)
	test.ExpectFailure(t, c.Session().Running)
	test.ExpectEquality(t, c.Sync(), timer.SyncNone)

	// the user starts the host timer
	tm.ForceState(host.TimerRunning)
	test.ExpectEquality(t, c.Sync(), timer.SyncManualStart)
	test.ExpectSuccess(t, c.Session().Running)

	tm.ForceState(host.TimerEnded)
	test.ExpectEquality(t, c.Sync(), timer.SyncEnded)
	test.ExpectFailure(t, c.Session().Running)

	// no start while the host timer has ended
	tm.Clear()
	test.ExpectFailure(t, c.Apply(tk.next(), ev(splitter.Start), nil))
	expectCommands(t, tm)
}

func TestDetach(t *testing.T) {
	tm := hostsim.NewTimer(0)
	c := timer.NewController(quiet{}, tm)
	var tk ticker

	test.ExpectFailure(t, c.Detach(nil))

	c.Apply(tk.next(), ev(splitter.Start), nil)
	tm.Clear()
	test.ExpectFailure(t, c.Detach(splitter.PointsMap{settings.Reset: false}))
	test.ExpectSuccess(t, c.Detach(nil))
	expectCommands(t, tm, hostsim.CmdReset)

	// detach while switching titles pauses game time
	c.Apply(tk.next(), ev(splitter.Start), nil)
	c.Apply(tk.next(), splitter.Event{Kind: splitter.Split, Final: true}, nil)
	tm.Clear()
	test.ExpectSuccess(t, c.Detach(nil))
	test.ExpectFailure(t, c.Detach(nil))
	expectCommands(t, tm, hostsim.CmdPauseGameTime)
	test.ExpectSuccess(t, c.Session().Running)
}
