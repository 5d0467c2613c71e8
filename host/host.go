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

package host

import (
	"time"
)

// Process is an attached game process. The host may invalidate the process
// at any time, in which case ReadMemory() and ModuleRange() return errors
// until the host reattaches.
type Process interface {
	// ID distinguishes one attachment from another. Reattaching to the same
	// game (eg. after a restart of the game) must produce a different ID.
	ID() uint64

	// Name of the process as it was attached
	Name() string

	// ReadMemory fills buf with the bytes at the absolute address. Partial
	// reads are an error.
	ReadMemory(addr uint64, buf []byte) error

	// ModuleRange returns the base address and size of the named module
	ModuleRange(module string) (base uint64, size uint64, err error)
}

// ManagedRuntime is implemented by processes that can inspect a managed
// (Unity/mono) runtime. The inspection is performed by the host; RoRSplit
// only names the image, class and field it is interested in.
//
// A Process that does not implement ManagedRuntime causes any field located
// through the managed runtime to be absent.
type ManagedRuntime interface {
	// HasImage returns true if the named assembly image has been loaded. The
	// empty string refers to the default image (Assembly-CSharp).
	HasImage(image string) bool

	// StaticTable returns the address of the static field table for the class
	StaticTable(image string, class string) (uint64, error)

	// FieldOffset returns the offset of a static or instance field of a class
	FieldOffset(image string, class string, field string) (uint64, error)

	// ScenePath returns the path of the currently active scene. An error is
	// returned during scene transitions.
	ScenePath() (string, error)
}

// TimerState mirrors the state of the host's timer.
type TimerState int

// List of valid TimerState values.
const (
	TimerUnknown TimerState = iota
	TimerNotRunning
	TimerRunning
	TimerPaused
	TimerEnded
)

func (s TimerState) String() string {
	switch s {
	case TimerNotRunning:
		return "not running"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerEnded:
		return "ended"
	}
	return "unknown"
}

// Timer is the host's timer. Commands are issued at most once per tick.
type Timer interface {
	State() TimerState

	Start()
	Split()
	Reset()
	PauseGameTime()
	ResumeGameTime()
	SetGameTime(time.Duration)

	// SetStatus is a string describing the resolution state for display by
	// the host. It is not interpreted by the host in any other way.
	SetStatus(status string)
}

// Tick is the information supplied by the host on every call to the update
// function.
type Tick struct {
	// the time at which the host invoked the update
	Now time.Time

	// the expected duration of one tick. used to judge whether a change in
	// the in-game clock is plausible
	Interval time.Duration

	// the attached process. nil if no game is attached
	Process Process

	// enabled split points and automation settings. a nil map indicates
	// that the configuration is missing
	Settings map[string]bool
}
