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

package prefs

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/rorsplit/curated"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	pref
	value    atomic.Bool
	def      bool
	hookPost func(value Value) error
}

// NewBool is the preferred method of initialisation for the Bool type. The
// value is set to the default value.
func NewBool(def bool) *Bool {
	p := &Bool{def: def}
	p.value.Store(def)
	return p
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.value.Load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value must be "true" or "false" (case insensitive).
func (p *Bool) Set(v Value) error {
	var nv bool

	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			nv = true
		case "false":
			nv = false
		default:
			return curated.Errorf("prefs: cannot convert %q to prefs.Bool", v)
		}
	default:
		return curated.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}

	p.value.Store(nv)

	if p.hookPost != nil {
		if err := p.hookPost(nv); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.value.Load()
}

// Bool returns the value as a bool. Saves the caller from a type assertion.
func (p *Bool) Bool() bool {
	return p.value.Load()
}

// Default returns the value that will be used by Reset().
func (p *Bool) Default() bool {
	return p.def
}

// Reset sets the value to the default value.
func (p *Bool) Reset() error {
	return p.Set(p.def)
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Even if the value hasn't changed, the callback will be
// executed.
func (p *Bool) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}
