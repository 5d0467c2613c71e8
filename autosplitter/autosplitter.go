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

package autosplitter

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/rorsplit/assert"
	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/memview"
	"github.com/jetsetilly/rorsplit/notifications"
	"github.com/jetsetilly/rorsplit/resolver"
	"github.com/jetsetilly/rorsplit/snapshot"
	"github.com/jetsetilly/rorsplit/splitter"
	"github.com/jetsetilly/rorsplit/timer"
)

// Sentinal error patterns.
const (
	NoEnvironment = "autosplitter: an environment is required"
	NoTimer       = "autosplitter: a timer is required"
)

// AutoSplitter is the per-tick pipeline.
type AutoSplitter struct {
	env *environment.Environment

	timer      host.Timer
	resolver   *resolver.Resolver
	controller *timer.Controller
	notify     notifications.Notify

	// the ID of the attached process
	attachment uint64

	// the machine for the title of the active descriptor
	machine splitter.Machine
	state   splitter.State

	ticks    uint64
	snapshot *snapshot.Snapshot

	// the status most recently sent to the host
	status string

	// the most recent settings error. notifications are sent only when the
	// error changes
	settingsErr string

	crit assert.Goroutine
}

// NewAutoSplitter is the preferred method of initialisation for the
// AutoSplitter type. The notify argument can be nil.
func NewAutoSplitter(env *environment.Environment, tm host.Timer, notify notifications.Notify) (*AutoSplitter, error) {
	if env == nil || env.Settings == nil {
		return nil, curated.Errorf(NoEnvironment)
	}
	if tm == nil {
		return nil, curated.Errorf(NoTimer)
	}

	as := &AutoSplitter{
		env:        env,
		timer:      tm,
		resolver:   resolver.NewResolver(env, env.Config.OS),
		controller: timer.NewController(env, tm),
		notify:     notify,
	}

	return as, nil
}

func (as *AutoSplitter) notice(n notifications.Notice, detail string) {
	if as.notify == nil {
		return
	}
	if err := as.notify.Notify(n, detail); err != nil {
		logger.Logf(as.env, "autosplitter", "notification %s: %v", n, err)
	}
}

func (as *AutoSplitter) setStatus(status string) {
	if status == as.status {
		return
	}
	as.status = status
	as.timer.SetStatus(status)
}

// Status returns the status most recently sent to the host.
func (as *AutoSplitter) Status() string {
	return as.status
}

// State returns the state of the title's state machine.
func (as *AutoSplitter) State() splitter.State {
	return as.state
}

// Session returns the state of the timer session.
func (as *AutoSplitter) Session() timer.Session {
	return as.controller.Session()
}

// Descriptor returns the active descriptor. Returns nil if no game is
// attached or if the build has not yet been identified.
func (as *AutoSplitter) Descriptor() *layout.Descriptor {
	return as.resolver.Active()
}

// Snapshot returns the snapshot extracted on the most recent tick. Can be
// nil.
func (as *AutoSplitter) Snapshot() *snapshot.Snapshot {
	return as.snapshot
}

// Ticks returns the number of calls to Update().
func (as *AutoSplitter) Ticks() uint64 {
	return as.ticks
}

// Update is called by the host once per tick.
func (as *AutoSplitter) Update(tick host.Tick) {
	as.crit.SameGoroutine()

	as.ticks++

	defer func() {
		if r := recover(); r != nil {
			logger.Logf(as.env, "autosplitter", "tick %d abandoned: %v", as.ticks, r)
		}
	}()

	as.update(tick)
}

func (as *AutoSplitter) update(tick host.Tick) {
	settingsErr := ""
	if err := as.env.Settings.Apply(tick.Settings); err != nil {
		settingsErr = err.Error()
	}
	if settingsErr != as.settingsErr {
		as.settingsErr = settingsErr
		if settingsErr != "" {
			logger.Log(as.env, "autosplitter", settingsErr)
			as.notice(notifications.NotifySettingsInvalid, settingsErr)
		}
	}
	if c := as.env.Settings.Changes(); len(c) > 0 {
		logger.Logf(as.env, "settings", "changed: %s", strings.Join(c, "; "))
	}

	view := memview.NewView(tick.Process)
	res := as.resolver.Resolve(view)

	status := res.Status
	if as.settingsErr != "" {
		status = fmt.Sprintf("%s [%s]", status, as.settingsErr)
	}
	as.setStatus(status)

	if res.Changed {
		as.lost()
	}

	if tick.Process != nil && tick.Process.ID() != as.attachment {
		as.attachment = tick.Process.ID()
		as.notice(notifications.NotifyAttached, tick.Process.Name())
	}

	if res.Unsupported {
		as.notice(notifications.NotifyUnsupported, res.Status)
	}

	if res.Selected {
		logger.Logf(as.env, "autosplitter", "%s selected", res.Descriptor)
		as.machine = splitter.ForVariant(res.Descriptor.Variant)
		as.state = splitter.State{}
		as.notice(notifications.NotifyBuildSelected, res.Descriptor.String())
	}

	as.sync()

	if res.Descriptor == nil {
		as.snapshot = nil
		as.controller.Apply(tick, splitter.Event{}, as.env.Settings)
		return
	}

	if as.machine == nil {
		as.machine = splitter.ForVariant(res.Descriptor.Variant)
	}

	as.snapshot = snapshot.Extract(as.ticks, res.Descriptor, view)

	next, ev := as.machine(as.state, as.snapshot, as.env.Settings)
	as.state = next

	if ev.Kind != splitter.None {
		logger.Logf(as.env, "autosplitter", "%s: %s (%s)", res.Descriptor.Variant, ev, as.state)
	}

	if !as.controller.Apply(tick, ev, as.env.Settings) {
		return
	}

	switch ev.Kind {
	case splitter.Start:
		as.notice(notifications.NotifyRunStarted, res.Descriptor.Variant.String())
	case splitter.Split:
		if ev.Final {
			as.notice(notifications.NotifyRunCompleted, res.Descriptor.Variant.String())
		}
	case splitter.Reset:
		as.notice(notifications.NotifyRunReset, res.Descriptor.Variant.String())
	}
}

// sync the state machine with changes made to the host's timer by the user
func (as *AutoSplitter) sync() {
	switch as.controller.Sync() {
	case timer.SyncHostReset, timer.SyncEnded:
		as.state = splitter.Rewind(as.state)
		as.notice(notifications.NotifyHostReset, "")
	case timer.SyncManualStart:
		// the run is treated as if it had been started by the autosplitter
		// but no commands are sent
		as.state = splitter.Rewind(as.state)
		as.state.Phase = splitter.InRun
		as.state.Stage = 1
		as.notice(notifications.NotifyHostStart, "")
	}
}

// lost is called when the process being viewed has gone or has changed
func (as *AutoSplitter) lost() {
	if as.controller.Detach(as.env.Settings) {
		as.notice(notifications.NotifyRunReset, "detached")
	}
	as.attachment = 0
	as.machine = nil
	as.state = splitter.State{}
	as.snapshot = nil
	as.notice(notifications.NotifyDetached, "")
}

// Reset is called when the host's timer has been reset explicitly. The
// active descriptor is kept.
func (as *AutoSplitter) Reset() {
	as.crit.SameGoroutine()
	as.controller.Reset()
	as.state = splitter.Rewind(as.state)
}

// Detach is called when the host knows that the process has gone. The same
// thing happens if Update() is called with a nil process.
func (as *AutoSplitter) Detach() {
	as.crit.SameGoroutine()
	if !as.resolver.Attached() {
		return
	}
	as.resolver.Drop()
	as.lost()
	as.setStatus(resolver.StatusNotAttached)
}
