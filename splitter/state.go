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
	"fmt"
	"time"
)

// Phase of a run.
type Phase int

// List of valid Phase values.
const (
	NotRunning Phase = iota
	InMenu
	Loading
	InRun
	Dead
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotRunning:
		return "not running"
	case InMenu:
		return "in menu"
	case Loading:
		return "loading"
	case InRun:
		return "in run"
	case Dead:
		return "dead"
	case Completed:
		return "completed"
	}
	return "unknown phase"
}

// Running returns true if the phase is part of a run in progress.
func (p Phase) Running() bool {
	return p == InRun || p == Loading
}

// Observed is the last seen value of every field used by any title. Each
// value has a flag indicating whether it has ever been seen.
type Observed struct {
	Room    int64
	HasRoom bool

	RunEnd    int64
	HasRunEnd bool

	Clock    float64
	HasClock bool

	Scene    string
	HasScene bool

	Fade    float64
	HasFade bool

	StageCount    int64
	HasStageCount bool

	Results    bool
	HasResults bool
}

// State of a title's state machine. The zero value is the initial state.
type State struct {
	Phase Phase

	// the stage of the run. the first stage is 1
	Stage int

	// automatic resets are prevented after the first split of a run
	Lockout bool

	// the game is loading. this is determined by the game state and can be
	// different to Paused for a short time
	Loading bool

	// a Pause event has been emitted and has not yet been followed by a
	// Resume event
	Paused bool

	// the value of the in-game clock in the most recent SetGameTime event
	Clock     float64
	ClockSent bool

	Last Observed
}

func (s State) String() string {
	if s.Phase.Running() {
		return fmt.Sprintf("%s (stage %d)", s.Phase, s.Stage)
	}
	return s.Phase.String()
}

// Rewind returns the state to NotRunning. The last seen values are kept,
// meaning that a change of value on the next tick can still be detected.
func Rewind(s State) State {
	return State{Last: s.Last}
}

// Kind of event.
type Kind int

// List of valid Kind values.
const (
	None Kind = iota
	Start
	Split
	Pause
	Resume
	Reset
	SetGameTime
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Start:
		return "start"
	case Split:
		return "split"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Reset:
		return "reset"
	case SetGameTime:
		return "gametime"
	}
	return "unknown event"
}

// Event emitted by a state machine.
type Event struct {
	Kind Kind

	// the value of the in-game clock for SetGameTime events
	GameTime time.Duration

	// a Split event that completes the run
	Final bool
}

func (e Event) String() string {
	switch {
	case e.Kind == SetGameTime:
		return fmt.Sprintf("%s %s", e.Kind, e.GameTime)
	case e.Kind == Split && e.Final:
		return "split (final)"
	}
	return e.Kind.String()
}
