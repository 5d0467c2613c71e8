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

package snapshot

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/memview"
)

// Snapshot is the decoded state of the game for a single tick. Absent fields
// are missing from the Fields map.
type Snapshot struct {
	Tick   uint64
	Fields map[string]memview.Value
}

// NewSnapshot is the preferred method of initialisation for the Snapshot
// type. It creates an empty snapshot. Fields can be added with Set().
func NewSnapshot(tick uint64) *Snapshot {
	return &Snapshot{
		Tick:   tick,
		Fields: make(map[string]memview.Value),
	}
}

// Extract the fields of the descriptor from the view.
func Extract(tick uint64, desc *layout.Descriptor, view *memview.View) *Snapshot {
	snap := NewSnapshot(tick)
	if desc == nil {
		return snap
	}
	for name, f := range desc.Fields {
		if v, ok := read(view, f); ok {
			snap.Fields[name] = v
		}
	}
	return snap
}

func read(view *memview.View, f layout.Field) (memview.Value, bool) {
	v, ok := view.Read(f.Path, f.Type)
	if !ok && f.Fallback != nil {
		return read(view, *f.Fallback)
	}
	return v, ok
}

// Set the named field. Returns the snapshot so that calls can be chained.
func (s *Snapshot) Set(name string, v memview.Value) *Snapshot {
	s.Fields[name] = v
	return s
}

// Value returns the named field and whether it is present.
func (s *Snapshot) Value(name string) (memview.Value, bool) {
	if s == nil {
		return memview.Value{}, false
	}
	v, ok := s.Fields[name]
	return v, ok
}

// Has returns true if every named field is present.
func (s *Snapshot) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := s.Value(n); !ok {
			return false
		}
	}
	return true
}

// Int returns the named field as an integer. Returns false if the field is
// absent or is not an integer.
func (s *Snapshot) Int(name string) (int64, bool) {
	v, ok := s.Value(name)
	if !ok {
		return 0, false
	}
	switch v.Kind() {
	case memview.Int32, memview.Uint32, memview.Int64:
		return v.Int(), true
	}
	return 0, false
}

// Float returns the named field as a float. Returns false if the field is
// absent or is not a float.
func (s *Snapshot) Float(name string) (float64, bool) {
	v, ok := s.Value(name)
	if !ok {
		return 0, false
	}
	switch v.Kind() {
	case memview.Float32, memview.Float64:
		return v.Float(), true
	}
	return 0, false
}

// Bool returns the named field as a boolean. Returns false if the field is
// absent or is not a boolean.
func (s *Snapshot) Bool(name string) (bool, bool) {
	v, ok := s.Value(name)
	if !ok || v.Kind() != memview.Bool {
		return false, false
	}
	return v.Bool(), true
}

// Text returns the named field as a string. Returns false if the field is
// absent or is not text.
func (s *Snapshot) Text(name string) (string, bool) {
	v, ok := s.Value(name)
	if !ok || v.Kind() != memview.Text {
		return "", false
	}
	return v.Text(), true
}

func (s *Snapshot) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("tick %d:", s.Tick))
	for _, n := range slices.Sorted(maps.Keys(s.Fields)) {
		b.WriteString(fmt.Sprintf(" %s=%s", n, s.Fields[n]))
	}
	return b.String()
}
