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

package hostsim

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/rorsplit/host"
)

// CommandKind identifies a command issued to the Timer.
type CommandKind int

// List of valid CommandKind values.
const (
	CmdStart CommandKind = iota
	CmdSplit
	CmdReset
	CmdPauseGameTime
	CmdResumeGameTime
	CmdSetGameTime
)

func (k CommandKind) String() string {
	switch k {
	case CmdStart:
		return "start"
	case CmdSplit:
		return "split"
	case CmdReset:
		return "reset"
	case CmdPauseGameTime:
		return "pause"
	case CmdResumeGameTime:
		return "resume"
	case CmdSetGameTime:
		return "gametime"
	}
	return "unknown"
}

// Command is a single command received by the Timer.
type Command struct {
	Kind     CommandKind
	GameTime time.Duration
}

func (c Command) String() string {
	if c.Kind == CmdSetGameTime {
		return fmt.Sprintf("%s %s", c.Kind, c.GameTime)
	}
	return c.Kind.String()
}

// Timer is a simulated host timer. It implements the host.Timer interface.
type Timer struct {
	segments int
	split    int

	state          host.TimerState
	gameTimePaused bool
	gameTime       time.Duration
	status         string

	commands []Command
}

// NewTimer is the preferred method of initialisation for the Timer type. The
// number of segments is the number of splits that end the run. A value of
// zero means the run never ends by splitting.
func NewTimer(segments int) *Timer {
	return &Timer{
		segments: segments,
		state:    host.TimerNotRunning,
	}
}

func (tm *Timer) record(c Command) {
	tm.commands = append(tm.commands, c)
}

// State implements the host.Timer interface.
func (tm *Timer) State() host.TimerState {
	return tm.state
}

// Start implements the host.Timer interface.
func (tm *Timer) Start() {
	tm.record(Command{Kind: CmdStart})
	if tm.state != host.TimerNotRunning {
		return
	}
	tm.state = host.TimerRunning
	tm.split = 0
	tm.gameTime = 0
	tm.gameTimePaused = false
}

// Split implements the host.Timer interface.
func (tm *Timer) Split() {
	tm.record(Command{Kind: CmdSplit})
	if tm.state != host.TimerRunning {
		return
	}
	tm.split++
	if tm.segments > 0 && tm.split >= tm.segments {
		tm.state = host.TimerEnded
	}
}

// Reset implements the host.Timer interface.
func (tm *Timer) Reset() {
	tm.record(Command{Kind: CmdReset})
	tm.state = host.TimerNotRunning
	tm.split = 0
	tm.gameTime = 0
	tm.gameTimePaused = false
}

// PauseGameTime implements the host.Timer interface.
func (tm *Timer) PauseGameTime() {
	tm.record(Command{Kind: CmdPauseGameTime})
	tm.gameTimePaused = true
}

// ResumeGameTime implements the host.Timer interface.
func (tm *Timer) ResumeGameTime() {
	tm.record(Command{Kind: CmdResumeGameTime})
	tm.gameTimePaused = false
}

// SetGameTime implements the host.Timer interface.
func (tm *Timer) SetGameTime(t time.Duration) {
	tm.record(Command{Kind: CmdSetGameTime, GameTime: t})
	tm.gameTime = t
}

// SetStatus implements the host.Timer interface.
func (tm *Timer) SetStatus(status string) {
	tm.status = status
}

// ForceState changes the state of the timer without recording a command. It
// simulates the user operating the host's timer directly.
func (tm *Timer) ForceState(state host.TimerState) {
	tm.state = state
	if state == host.TimerNotRunning {
		tm.split = 0
		tm.gameTime = 0
		tm.gameTimePaused = false
	}
}

// Status returns the most recent status string.
func (tm *Timer) Status() string {
	return tm.status
}

// GameTime returns the most recent game time.
func (tm *Timer) GameTime() time.Duration {
	return tm.gameTime
}

// GameTimePaused returns true if game time is paused.
func (tm *Timer) GameTimePaused() bool {
	return tm.gameTimePaused
}

// Splits returns the number of splits in the current run.
func (tm *Timer) Splits() int {
	return tm.split
}

// Commands returns every command received since the timer was created or
// since the last call to Clear().
func (tm *Timer) Commands() []Command {
	return tm.commands
}

// Count the number of commands of a kind.
func (tm *Timer) Count(kind CommandKind) int {
	var n int
	for _, c := range tm.commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Clear the list of recorded commands.
func (tm *Timer) Clear() {
	tm.commands = tm.commands[:0]
}

func (tm *Timer) String() string {
	s := make([]string, len(tm.commands))
	for i, c := range tm.commands {
		s[i] = c.String()
	}
	return strings.Join(s, ", ")
}
