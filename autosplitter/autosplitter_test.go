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

package autosplitter_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jetsetilly/rorsplit/autosplitter"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/hostsim"
	"github.com/jetsetilly/rorsplit/notifications"
	"github.com/jetsetilly/rorsplit/resolver"
	"github.com/jetsetilly/rorsplit/settings"
	"github.com/jetsetilly/rorsplit/splitter"
	"github.com/jetsetilly/rorsplit/test"
)

// recorder implements the notifications.Notify interface
type recorder struct {
	notices []notifications.Notice
}

func (r *recorder) Notify(n notifications.Notice, _ string) error {
	r.notices = append(r.notices, n)
	return nil
}

func (r *recorder) count(n notifications.Notice) int {
	var c int
	for _, m := range r.notices {
		if m == n {
			c++
		}
	}
	return c
}

// harness drives an autosplitter with a simulated timer
type harness struct {
	t        *testing.T
	as       *autosplitter.AutoSplitter
	tm       *hostsim.Timer
	notes    *recorder
	now      time.Time
	settings map[string]bool
}

func newHarness(t *testing.T, points ...string) *harness {
	t.Helper()

	env := &environment.Environment{
		Label:    environment.QuietLabel,
		Settings: settings.NewSettings(),
		Config:   environment.Config{TickRate: 60, OS: "windows"},
	}

	h := &harness{
		t:        t,
		tm:       hostsim.NewTimer(0),
		notes:    &recorder{},
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		settings: map[string]bool{},
	}
	for _, p := range points {
		h.settings[p] = true
	}

	var err error
	h.as, err = autosplitter.NewAutoSplitter(env, h.tm, h.notes)
	test.DemandSuccess(t, err)

	return h
}

func (h *harness) update(proc host.Process) {
	h.now = h.now.Add(time.Second / 60)
	h.as.Update(host.Tick{
		Now:      h.now,
		Interval: time.Second / 60,
		Process:  proc,
		Settings: h.settings,
	})
}

func (h *harness) expectCommands(want ...hostsim.CommandKind) {
	h.t.Helper()
	var got []hostsim.CommandKind
	for _, c := range h.tm.Commands() {
		got = append(got, c.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		h.t.Errorf("unexpected commands (-want +got):\n%s", diff)
	}
}

const ror1Base = 0x400000

// ror1 is a Risk of Rain process with the room and run end flag laid out
type ror1 struct {
	*hostsim.Process
	runEnd uint64
}

func newRoR1() *ror1 {
	p := &ror1{Process: hostsim.NewProcess("Risk of Rain.exe")}
	p.AddModule("Risk of Rain.exe", ror1Base, 0x3000000)
	p.runEnd = p.PointerChain(4, ror1Base, 0x2BEB5E0, 0x0, 0x548, 0xC, 0xB4)
	p.WriteInt32(p.runEnd, 0)
	return p
}

func (p *ror1) room(r int32) *ror1 {
	p.WriteInt32(ror1Base+0x2BED7A8, r)
	return p
}

func (p *ror1) end(v int32) *ror1 {
	p.WriteInt32(p.runEnd, v)
	return p
}

func (p *ror1) clock() uint64 {
	return p.PointerChain(4, ror1Base, 0x02BEB5E0, 0x0, 0x28, 0xC, 0xBC, 0x8, 0x0, 0x720, 0x8, 0x1EC0)
}

func TestNewAutoSplitter(t *testing.T) {
	_, err := autosplitter.NewAutoSplitter(nil, hostsim.NewTimer(0), nil)
	test.ExpectFailure(t, err)

	env := &environment.Environment{Label: environment.QuietLabel, Settings: settings.NewSettings()}
	_, err = autosplitter.NewAutoSplitter(env, nil, nil)
	test.ExpectFailure(t, err)

	// notifications are optional
	as, err := autosplitter.NewAutoSplitter(env, hostsim.NewTimer(0), nil)
	test.DemandSuccess(t, err)
	as.Update(host.Tick{})
	test.ExpectEquality(t, as.Status(), resolver.StatusNotAttached+" [settings: configuration missing, using defaults]")
}

func TestRoR1Run(t *testing.T) {
	h := newHarness(t, settings.RoR1Stages)
	p := newRoR1()

	h.update(p.room(6))
	test.ExpectEquality(t, h.tm.Status(), "Risk of Rain v1.2.2")
	test.ExpectEquality(t, h.as.State().Phase, splitter.InMenu)

	h.update(p.room(20))
	h.update(p.room(21))
	h.update(p.room(41))
	h.update(p.end(1))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdSplit, hostsim.CmdSplit, hostsim.CmdSplit)
	test.ExpectEquality(t, h.as.State().Phase, splitter.Completed)

	// game time is paused after the final split until the next title starts
	h.update(p)
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdSplit, hostsim.CmdSplit, hostsim.CmdSplit, hostsim.CmdPauseGameTime)
	test.ExpectSuccess(t, h.as.Session().Switching)

	test.ExpectEquality(t, h.notes.count(notifications.NotifyRunStarted), 1)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyRunCompleted), 1)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyBuildSelected), 1)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyAttached), 1)
}

func TestAttachmentLoss(t *testing.T) {
	h := newHarness(t, settings.RoR1Stages)
	p := newRoR1()

	h.update(p.room(6))
	h.update(p.room(20))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime)

	// the game closes mid-run. the run is reset and there is no split
	h.update(nil)
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)
	test.ExpectEquality(t, h.tm.Status(), resolver.StatusNotAttached)
	test.ExpectSuccess(t, h.as.Descriptor() == nil)
	test.ExpectEquality(t, h.as.State(), splitter.State{})
	test.ExpectEquality(t, h.notes.count(notifications.NotifyDetached), 1)

	// the game is restarted
	q := newRoR1()
	h.update(q.room(6))
	test.ExpectSuccess(t, h.as.Descriptor() != nil)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyAttached), 2)
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)
}

func TestReattachment(t *testing.T) {
	h := newHarness(t)
	p := newRoR1()

	h.update(p.room(6))
	h.update(p.room(20))

	// a new process appears without an intervening tick without a process
	q := newRoR1()
	h.update(q.room(20))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)
	test.ExpectEquality(t, h.as.State().Phase, splitter.NotRunning)
}

func TestDetach(t *testing.T) {
	h := newHarness(t)
	p := newRoR1()

	h.update(p.room(6))
	h.update(p.room(20))

	h.as.Detach()
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)
	test.ExpectEquality(t, h.as.Status(), resolver.StatusNotAttached)

	// detaching twice has no further effect
	h.as.Detach()
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)

	// the same process is identified again on the next tick
	h.update(p)
	test.ExpectSuccess(t, h.as.Descriptor() != nil)
}

func TestConvergence(t *testing.T) {
	const base = 0x140000000

	h := newHarness(t)
	p := hostsim.NewProcess("Risk of Rain Returns.exe")

	for range 5 {
		h.update(p)
		test.ExpectEquality(t, h.tm.Status(), "Risk of Rain Returns: waiting for module")
	}

	p.AddModule("Risk of Rain Returns.exe", base, 0x3000000)
	p.WriteInt32(base+0x2172888, 4)
	for range 5 {
		h.update(p)
		test.ExpectEquality(t, h.tm.Status(), "Risk of Rain Returns: unsupported version")
	}
	test.ExpectEquality(t, h.notes.count(notifications.NotifyUnsupported), 1)
	h.expectCommands()

	p.WriteString(base+0x1ABCB10, "BUILD_ID: 242, BUILD_BRANCH: the-mouse-aim-branch, VERSION_STRING: 1.0.4")
	h.update(p)
	test.ExpectEquality(t, h.tm.Status(), "Risk of Rain Returns 1.0.4")
	test.ExpectEquality(t, h.as.State().Phase, splitter.InMenu)
	h.expectCommands()

	// leaving the lobby starts the run
	p.WriteInt32(base+0x2172888, 5)
	h.update(p)
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime)
}

func TestHostReset(t *testing.T) {
	h := newHarness(t, settings.RoR1Stages)
	p := newRoR1()

	h.update(p.room(6))
	h.update(p.room(20))

	// the user resets the timer. the change of room is not a split
	h.tm.ForceState(host.TimerNotRunning)
	h.update(p.room(21))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime)
	test.ExpectEquality(t, h.as.State().Phase, splitter.NotRunning)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyHostReset), 1)

	// a new run can be started
	h.update(p.room(6))
	h.update(p.room(20))
	test.ExpectEquality(t, h.tm.Count(hostsim.CmdStart), 2)
}

func TestManualStart(t *testing.T) {
	h := newHarness(t, settings.RoR1Stages)
	p := newRoR1()

	h.update(p.room(20))
	test.ExpectEquality(t, h.as.State().Phase, splitter.NotRunning)

	// the user starts the timer while already in a stage
	h.tm.ForceState(host.TimerRunning)
	h.update(p)
	test.ExpectEquality(t, h.as.State().Phase, splitter.InRun)

	h.update(p.room(21))
	h.expectCommands(hostsim.CmdSplit)
}

func TestExplicitReset(t *testing.T) {
	h := newHarness(t, settings.RoR1Stages)
	p := newRoR1()

	h.update(p.room(6))
	h.update(p.room(20))

	h.tm.ForceState(host.TimerNotRunning)
	h.as.Reset()
	test.ExpectFailure(t, h.as.Session().Running)
	test.ExpectEquality(t, h.as.State().Phase, splitter.NotRunning)

	// the descriptor is kept
	test.ExpectSuccess(t, h.as.Descriptor() != nil)

	h.update(p.room(21))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime)
}

func TestSettingsInvalid(t *testing.T) {
	h := newHarness(t)
	h.settings["bogus"] = true
	p := newRoR1()

	h.update(p.room(6))
	h.update(p)
	test.ExpectEquality(t, h.tm.Status(), "Risk of Rain v1.2.2 [settings: unknown setting (bogus)]")
	test.ExpectEquality(t, h.notes.count(notifications.NotifySettingsInvalid), 1)

	// known settings in the same map are still applied
	h.settings[settings.Start] = false
	h.update(p.room(20))
	h.expectCommands()

	delete(h.settings, "bogus")
	h.update(p)
	test.ExpectEquality(t, h.tm.Status(), "Risk of Rain v1.2.2")
}

// ror2 object layout used by the tests
const (
	fadeTable    = 0x50000
	runTable     = 0x60000
	runInstance  = 0x70000
	gameOver     = 0x80000
	gameOverInst = 0x90000
)

type ror2 struct {
	*hostsim.Process
}

func newRoR2() *ror2 {
	p := &ror2{Process: hostsim.NewProcess("Risk of Rain 2.exe")}
	p.AddModule("Risk of Rain 2.exe", 0x140000000, 0x100000)
	p.AddImage("")
	p.AddImage("RoR2")

	p.AddClass("RoR2", "FadeToBlackManager", fadeTable)
	p.AddField("RoR2", "FadeToBlackManager", "alpha", 0x4)

	p.AddClass("RoR2", "Run", runTable)
	p.AddField("RoR2", "Run", "<instance>k__BackingField", 0x8)
	p.AddField("RoR2", "Run", "stageClearCount", 0x10)
	p.WritePointer(runTable+0x8, 8, runInstance)

	p.AddClass("RoR2", "GameOverController", gameOver)
	p.AddField("RoR2", "GameOverController", "<instance>k__BackingField", 0x8)
	p.AddField("RoR2", "GameOverController", "_shouldDisplayGameEndReportPanels", 0x20)
	p.WritePointer(gameOver+0x8, 8, gameOverInst)

	return p.scene("title").fade(0).stage(0).results(false)
}

func (p *ror2) scene(name string) *ror2 {
	if name == "" {
		p.SetScene("")
	} else {
		p.SetScene("Assets/RoR2/Scenes/" + name + ".unity")
	}
	return p
}

func (p *ror2) fade(v float32) *ror2 {
	p.WriteFloat32(fadeTable+0x4, v)
	return p
}

func (p *ror2) stage(v int32) *ror2 {
	p.WriteInt32(runInstance+0x10, v)
	return p
}

func (p *ror2) results(v bool) *ror2 {
	p.WriteBool(gameOverInst+0x20, v)
	return p
}

func TestRoR2Run(t *testing.T) {
	h := newHarness(t, settings.RoR2Stages)
	p := newRoR2()

	h.update(p)
	test.ExpectEquality(t, h.tm.Status(), "Risk of Rain 2 SotV+")

	h.update(p.scene("golemplains").fade(1.0))
	h.update(p.fade(0.5))
	h.update(p.fade(0))
	h.update(p.stage(1))
	h.update(p.fade(1.5))
	h.update(p.scene("").fade(2.0))
	h.update(p.scene("foggyswamp").fade(1.0))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdSplit,
		hostsim.CmdPauseGameTime, hostsim.CmdResumeGameTime)

	// death without the ror2_death setting leaves the timer running
	h.update(p.results(true))
	test.ExpectEquality(t, h.as.State().Phase, splitter.Dead)
	test.ExpectEquality(t, h.tm.Count(hostsim.CmdReset), 0)
}

func TestRoR2DeathReset(t *testing.T) {
	h := newHarness(t, settings.RoR2Death)
	p := newRoR2()

	h.update(p)
	h.update(p.scene("blackbeach").fade(1.0))
	h.update(p.fade(0.5))
	h.update(p.fade(0))
	h.update(p.results(true))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime, hostsim.CmdReset)
	test.ExpectEquality(t, h.notes.count(notifications.NotifyRunReset), 1)
}

// panicking is a process that panics on every read
type panicking struct {
	*hostsim.Process
}

func (p panicking) ReadMemory(uint64, []byte) error {
	panic("read from unstable process")
}

func TestPanicRecovery(t *testing.T) {
	h := newHarness(t)

	p := hostsim.NewProcess("Risk of Rain.exe")
	p.AddModule("Risk of Rain.exe", ror1Base, 0x3000000)
	proc := panicking{Process: p}

	h.update(proc)
	h.update(proc)
	test.ExpectEquality(t, h.as.Ticks(), 2)
	test.ExpectSuccess(t, strings.HasPrefix(h.as.Status(), "Risk of Rain"))
	h.expectCommands()
}

func TestRoR1GarbageClock(t *testing.T) {
	h := newHarness(t, settings.RoR1IGT)
	p := newRoR1()
	igt := p.clock()
	p.WriteFloat64(igt, 0)

	h.update(p.room(6))
	h.update(p.room(20))
	h.expectCommands(hostsim.CmdStart, hostsim.CmdSetGameTime)

	// a load that reads garbage for one tick
	for _, v := range []float64{10, 11, 12, 123456, 13, 14} {
		p.WriteFloat64(igt, v)
		h.update(p)
	}
	test.ExpectEquality(t, h.tm.GameTime(), 3*time.Second)

	// values that cannot be a clock are ignored
	for _, v := range []float64{1e200, -5, math.NaN(), 15} {
		p.WriteFloat64(igt, v)
		h.update(p)
	}
	test.ExpectEquality(t, h.tm.GameTime(), 4*time.Second)
	test.ExpectEquality(t, h.as.Session().GameTime, 4*time.Second)
}
