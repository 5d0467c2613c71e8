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

package timer

import (
	"time"

	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/settings"
	"github.com/jetsetilly/rorsplit/splitter"
)

// Toggles are the automation settings. The settings.Settings type implements
// this interface.
type Toggles interface {
	Enabled(id string) bool
}

// Sync is the result of the reconciliation of the Session with the host's
// timer state.
type Sync int

// List of valid Sync values.
const (
	// the Session is consistent with the host
	SyncNone Sync = iota

	// the host timer was reset by the user
	SyncHostReset

	// the host timer was started by the user
	SyncManualStart

	// the host timer has ended
	SyncEnded
)

// Controller applies events to the host timer.
type Controller struct {
	env     logger.Permission
	timer   host.Timer
	session Session
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(env logger.Permission, timer host.Timer) *Controller {
	return &Controller{
		env:   env,
		timer: timer,
	}
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	return c.session
}

// Reset the session. No command is sent to the host. Always safe to call.
func (c *Controller) Reset() {
	c.session.Reset()
}

func enabled(toggles Toggles, id string) bool {
	if toggles == nil {
		return true
	}
	return toggles.Enabled(id)
}

// Sync reconciles the session with the state of the host's timer. It should
// be called once per tick before Apply().
func (c *Controller) Sync() Sync {
	switch c.timer.State() {
	case host.TimerNotRunning:
		if c.session.Running {
			logger.Log(c.env, "timer", "host timer reset")
			c.session.Reset()
			return SyncHostReset
		}
	case host.TimerRunning, host.TimerPaused:
		if !c.session.Running {
			logger.Log(c.env, "timer", "host timer started")
			c.session.Running = true
			return SyncManualStart
		}
	case host.TimerEnded:
		if c.session.Running {
			logger.Log(c.env, "timer", "host timer ended")
			c.session.Reset()
			return SyncEnded
		}
	}
	return SyncNone
}

// the largest step of the in-game clock between two SetGameTime events that
// is added to game time, unless the tick interval is very long. a larger step
// is a garbage value and the clock is rebased on it instead
const maxClockStep = 5 * time.Second

func clockStep(interval time.Duration) time.Duration {
	return max(maxClockStep, 2*interval)
}

// Apply the event to the host's timer. Returns true if a command was sent to
// the host.
func (c *Controller) Apply(tick host.Tick, ev splitter.Event, toggles Toggles) bool {
	if ev.Kind == splitter.None {
		return c.housekeeping()
	}

	// the same event on the same tick has already been applied
	if ev == c.session.LastEvent && tick.Now.Equal(c.session.LastTick) {
		return false
	}

	sent := c.apply(tick, ev, toggles)

	// a reset clears the session and there is nothing to record
	if sent && c.session.Running {
		c.session.LastEvent = ev
		c.session.LastTick = tick.Now
	}

	return sent
}

func (c *Controller) apply(tick host.Tick, ev splitter.Event, toggles Toggles) bool {
	switch ev.Kind {
	case splitter.Start:
		return c.start(toggles)

	case splitter.Split:
		if !c.session.Running {
			return false
		}
		// the final split of a title is always sent
		if !ev.Final && !enabled(toggles, settings.Split) {
			return false
		}
		c.timer.Split()
		if ev.Final {
			logger.Log(c.env, "timer", "split (final)")
			c.session.Switching = true
		} else {
			logger.Log(c.env, "timer", "split")
		}
		return true

	case splitter.Reset:
		if !c.session.Running || !enabled(toggles, settings.Reset) {
			return false
		}
		logger.Log(c.env, "timer", "reset")
		c.timer.Reset()
		c.session.Reset()
		return true

	case splitter.Pause:
		if !c.session.Running || c.session.Paused {
			return false
		}
		c.timer.PauseGameTime()
		c.session.Paused = true
		return true

	case splitter.Resume:
		// game time remains paused while switching titles
		if !c.session.Running || !c.session.Paused || c.session.Switching {
			return false
		}
		c.timer.ResumeGameTime()
		c.session.Paused = false
		return true

	case splitter.SetGameTime:
		return c.gameTime(tick, ev.GameTime)
	}

	return false
}

func (c *Controller) start(toggles Toggles) bool {
	// the start of the next title in a chained run
	if c.session.Switching {
		logger.Log(c.env, "timer", "next title started")
		c.session.Switching = false
		c.session.HasClock = false
		if c.session.Paused {
			c.timer.ResumeGameTime()
			c.session.Paused = false
			return true
		}
		return false
	}

	if c.session.Running || c.timer.State() != host.TimerNotRunning {
		return false
	}
	if !enabled(toggles, settings.Start) {
		return false
	}

	logger.Log(c.env, "timer", "start")

	c.session.Running = true
	c.session.GameTime = 0
	c.session.HasClock = false

	// the host has no hook to initialise game time. setting it to zero
	// immediately after the start means game time trails real time by the
	// time it takes the host to process the two commands
	c.timer.Start()
	c.timer.SetGameTime(0)

	return true
}

func (c *Controller) gameTime(tick host.Tick, clock time.Duration) bool {
	if !c.session.Running {
		return false
	}

	// the first clock value after the start of a title is the base from
	// which game time is accumulated
	if !c.session.HasClock {
		c.session.Clock = clock
		c.session.HasClock = true
		return false
	}

	delta := clock - c.session.Clock
	c.session.Clock = clock
	if delta <= 0 || c.session.Paused {
		return false
	}
	if delta > clockStep(tick.Interval) {
		logger.Logf(c.env, "timer", "in-game clock jumped by %s: rebased", delta)
		return false
	}

	c.session.GameTime += delta
	c.timer.SetGameTime(c.session.GameTime)

	return true
}

// housekeeping is performed on ticks without an event
func (c *Controller) housekeeping() bool {
	if c.session.Running && c.session.Switching && !c.session.Paused {
		c.timer.PauseGameTime()
		c.session.Paused = true
		return true
	}
	return false
}

// Detach is called when the process is lost. A run in progress is reset
// unless the run is switching titles, in which case game time is paused.
// Returns true if a command was sent to the host.
func (c *Controller) Detach(toggles Toggles) bool {
	if !c.session.Running {
		return false
	}
	if c.session.Switching {
		return c.housekeeping()
	}
	if !enabled(toggles, settings.Reset) {
		return false
	}
	logger.Log(c.env, "timer", "reset (detached)")
	c.timer.Reset()
	c.session.Reset()
	return true
}
