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

package resolver

import (
	"fmt"
	"runtime"

	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/memview"
)

// StatusNotAttached is the status when there is no process.
const StatusNotAttached = "no game attached"

// Result of a single call to Resolve().
type Result struct {
	// the active descriptor. nil if no descriptor is active
	Descriptor *layout.Descriptor

	// the attachment has changed since the previous call to Resolve(). any
	// state that depended on the previous process must be discarded
	Changed bool

	// the descriptor was selected during this call to Resolve()
	Selected bool

	// no build matched the process for the first time since the attachment
	Unsupported bool

	// description of the resolution state suitable for display
	Status string
}

// Resolver selects the descriptor for the attached process.
type Resolver struct {
	os  string
	env logger.Permission

	attached    bool
	attachment  uint64
	active      *layout.Descriptor
	unsupported bool
}

// NewResolver is the preferred method of initialisation for the Resolver
// type. The os argument has the same form as runtime.GOOS. If it is empty
// then the current OS is used.
func NewResolver(env logger.Permission, os string) *Resolver {
	if os == "" {
		os = runtime.GOOS
	}
	return &Resolver{
		os:  os,
		env: env,
	}
}

// Active returns the active descriptor. Returns nil if no descriptor is
// active.
func (r *Resolver) Active() *layout.Descriptor {
	return r.active
}

// Attached returns true if a process was seen on the most recent call to
// Resolve().
func (r *Resolver) Attached() bool {
	return r.attached
}

// Drop the active descriptor and forget the attachment.
func (r *Resolver) Drop() {
	r.attached = false
	r.attachment = 0
	r.active = nil
	r.unsupported = false
}

// Resolve the descriptor for the process being viewed.
func (r *Resolver) Resolve(view *memview.View) Result {
	proc := view.Process()

	if proc == nil {
		res := Result{
			Changed: r.attached,
			Status:  StatusNotAttached,
		}
		if r.attached {
			logger.Log(r.env, "resolver", "process detached")
		}
		r.Drop()
		return res
	}

	var res Result

	if !r.attached || r.attachment != proc.ID() {
		if r.attached {
			logger.Logf(r.env, "resolver", "attachment changed to %s", proc.Name())
			res.Changed = true
		}
		r.Drop()
		r.attached = true
		r.attachment = proc.ID()
	}

	if r.active != nil {
		res.Descriptor = r.active
		res.Status = r.active.String()
		return res
	}

	variant, ok := layout.MatchProcessName(r.os, proc.Name())
	if !ok {
		res.Status = fmt.Sprintf("%s: unrecognised process", proc.Name())
		return res
	}

	modulePresent := false
	for _, d := range layout.Builds(variant) {
		if _, _, err := view.Module(d.Module); err != nil {
			continue
		}
		modulePresent = true

		if d.Signature.Match(view) {
			r.active = d
			r.unsupported = false
			logger.Logf(r.env, "resolver", "%s (%s)", d, d.Signature)
			res.Descriptor = d
			res.Selected = true
			res.Status = d.String()
			return res
		}
	}

	if !modulePresent {
		res.Status = fmt.Sprintf("%s: waiting for module", variant)
		return res
	}

	if !r.unsupported {
		logger.Logf(r.env, "resolver", "%s: no build matches", variant)
		r.unsupported = true
		res.Unsupported = true
	}
	res.Status = fmt.Sprintf("%s: unsupported version", variant)

	return res
}
