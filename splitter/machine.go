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

package splitter

import (
	"math"
	"slices"
	"time"

	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/snapshot"
)

// Points is the set of enabled split points. The settings.Settings type
// implements this interface.
type Points interface {
	Enabled(id string) bool
}

// PointsMap is a simple implementation of the Points interface.
type PointsMap map[string]bool

// Enabled implements the Points interface.
func (p PointsMap) Enabled(id string) bool {
	return p[id]
}

// Machine advances the state of a title by one tick.
type Machine func(State, *snapshot.Snapshot, Points) (State, Event)

// loading is the result of the loading test for a tick. the loading state
// can not always be determined, in which case the previous state is kept
type loading int

const (
	loadingUndetermined loading = iota
	loadingYes
	loadingNo
)

// conditions are the result of a title's tests for a single tick
type conditions struct {
	start     bool
	reset     bool
	completed bool
	split     bool

	// the run ended in a way that does not complete it
	dead bool

	// emit a Reset event when the run ends in death
	deathReset bool

	// the game is showing a menu or lobby
	menu bool

	loading loading

	// in-game clock in seconds
	clock    float64
	hasClock bool
}

// tick is the information available to a title's tests
type tick struct {
	prev   Observed
	cur    Observed
	snap   *snapshot.Snapshot
	points Points
}

func (t tick) has(field string) bool {
	_, ok := t.snap.Value(field)
	return ok
}

// the largest in-game clock value in seconds that is believed. anything
// larger, negative or not a number is garbage read during a load
const maxClock = 1e6

func plausibleClock(v float64) bool {
	return v >= 0 && v <= maxClock
}

// clock returns the in-game clock from the current snapshot. the clock is
// absent if the value is not plausible
func (t tick) clock() (float64, bool) {
	v, ok := t.snap.Float(layout.FieldInGameTime)
	if !ok || !plausibleClock(v) {
		return 0, false
	}
	return v, true
}

// observe merges the snapshot into the last seen values
func observe(last Observed, snap *snapshot.Snapshot) Observed {
	if v, ok := snap.Int(layout.FieldRoom); ok {
		last.Room, last.HasRoom = v, true
	}
	if v, ok := snap.Int(layout.FieldRunEndFlag); ok {
		last.RunEnd, last.HasRunEnd = v, true
	}
	if v, ok := snap.Float(layout.FieldInGameTime); ok && plausibleClock(v) {
		last.Clock, last.HasClock = v, true
	}
	if v, ok := snap.Text(layout.FieldScene); ok {
		last.Scene, last.HasScene = v, true
	}
	if v, ok := snap.Float(layout.FieldFade); ok {
		last.Fade, last.HasFade = v, true
	}
	if v, ok := snap.Int(layout.FieldStageCount); ok {
		last.StageCount, last.HasStageCount = v, true
	}
	if v, ok := snap.Bool(layout.FieldResults); ok {
		last.Results, last.HasResults = v, true
	}
	return last
}

// table is the definition of a title's state machine
type table struct {
	required   func(Phase) []string
	conditions func(tick) conditions
}

var tables = map[layout.Variant]table{
	layout.RiskOfRain:        ror1,
	layout.RiskOfRain2:       ror2,
	layout.RiskOfRainReturns: rorr,
}

// ForVariant returns the Machine for the title. The Machine for an unknown
// title never changes the State.
func ForVariant(v layout.Variant) Machine {
	tab, ok := tables[v]
	if !ok {
		return func(s State, _ *snapshot.Snapshot, _ Points) (State, Event) {
			return s, Event{}
		}
	}
	return func(s State, snap *snapshot.Snapshot, p Points) (State, Event) {
		return advance(tab, s, snap, p)
	}
}

// Required returns the fields that must be present in a snapshot for the
// title's state machine to advance from the phase.
func Required(v layout.Variant, p Phase) []string {
	tab, ok := tables[v]
	if !ok {
		return nil
	}
	return slices.Clone(tab.required(p))
}

func seconds(clock float64) time.Duration {
	return time.Duration(math.Round(clock * float64(time.Second)))
}

func advance(tab table, s State, snap *snapshot.Snapshot, p Points) (State, Event) {
	if snap == nil || !snap.Has(tab.required(s.Phase)...) {
		return s, Event{}
	}
	if p == nil {
		p = PointsMap(nil)
	}

	t := tick{
		prev:   s.Last,
		cur:    observe(s.Last, snap),
		snap:   snap,
		points: p,
	}
	c := tab.conditions(t)

	next := s
	next.Last = t.cur

	switch s.Phase {
	case NotRunning, InMenu, Completed:
		// a start on a completed run is the start of the next title in a
		// chained run
		if c.start {
			return begin(next), Event{Kind: Start}
		}
		if s.Phase != Completed {
			if c.menu {
				next.Phase = InMenu
			} else {
				next.Phase = NotRunning
			}
		}
		return next, Event{}

	case Dead:
		if c.reset && !s.Lockout {
			return Rewind(next), Event{Kind: Reset}
		}
		return next, Event{}
	}

	// run in progress
	if c.reset && !s.Lockout {
		return Rewind(next), Event{Kind: Reset}
	}

	if c.completed {
		next.Phase = Completed
		next.Lockout = true
		next.Loading = false
		next.Paused = false
		return next, Event{Kind: Split, Final: true}
	}

	if c.dead {
		if c.deathReset {
			return Rewind(next), Event{Kind: Reset}
		}
		next.Phase = Dead
		next.Loading = false
		return next, Event{}
	}

	switch c.loading {
	case loadingYes:
		next.Loading = true
	case loadingNo:
		next.Loading = false
	}
	if next.Loading {
		next.Phase = Loading
	} else {
		next.Phase = InRun
	}

	if c.split {
		next.Stage++
		next.Lockout = true
		return next, Event{Kind: Split}
	}

	if next.Loading != next.Paused {
		next.Paused = next.Loading
		if next.Paused {
			return next, Event{Kind: Pause}
		}
		return next, Event{Kind: Resume}
	}

	if c.hasClock && (!next.ClockSent || c.clock != next.Clock) {
		next.Clock = c.clock
		next.ClockSent = true
		return next, Event{Kind: SetGameTime, GameTime: seconds(c.clock)}
	}

	return next, Event{}
}

// begin a new run
func begin(s State) State {
	n := Rewind(s)
	n.Phase = InRun
	n.Stage = 1
	return n
}
