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

package settings

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/prefs"
)

// List of event IDs.
const (
	// automation of the timer. these apply to every title
	Start = "start"
	Split = "split"
	Reset = "reset"

	// Risk of Rain
	RoR1Stages = "ror1_stages"
	RoR1IGT    = "ror1_igt"

	// Risk of Rain 2
	RoR2Stages    = "ror2_stages"
	RoR2Death     = "ror2_death"
	Bazaar        = "bazaar"
	Arena         = "arena"
	GoldShores    = "goldshores"
	ArtifactWorld = "artifactworld"

	// Risk of Rain Returns
	RoRRStages = "rorr_stages"
	RoRRIGT    = "rorr_igt"
)

// Sentinal error patterns.
const (
	Missing    = "settings: configuration missing, using defaults"
	UnknownKey = "settings: unknown setting (%s)"
)

type definition struct {
	id          string
	def         bool
	description string
}

// the order of the definitions is the order used when listing the settings
var definitions = []definition{
	{Start, true, "start the timer automatically"},
	{Split, true, "split automatically"},
	{Reset, true, "reset automatically (disabled after the first split)"},
	{RoR1Stages, false, "Risk of Rain: split on stage transitions"},
	{RoR1IGT, false, "Risk of Rain: game time follows the in-game clock"},
	{RoR2Stages, false, "Risk of Rain 2: split on stage transitions"},
	{RoR2Death, false, "Risk of Rain 2: reset when the run ends in death"},
	{Bazaar, false, "Risk of Rain 2: split when leaving Bazaar Between Time"},
	{Arena, false, "Risk of Rain 2: split when leaving Void Fields"},
	{GoldShores, false, "Risk of Rain 2: split when leaving Gilded Shores"},
	{ArtifactWorld, false, "Risk of Rain 2: split when leaving Bulwark's Ambry"},
	{RoRRStages, false, "Risk of Rain Returns: split on stage transitions"},
	{RoRRIGT, false, "Risk of Rain Returns: game time follows the in-game clock"},
}

// Settings is the current value of every setting.
type Settings struct {
	values map[string]*prefs.Bool

	// settings that have been set since the last call to Changes() and the
	// value of every setting at that time
	touched  map[string]bool
	reported map[string]bool
}

// NewSettings is the preferred method of initialisation for the Settings
// type. Every setting has its default value.
func NewSettings() *Settings {
	s := &Settings{
		values:   make(map[string]*prefs.Bool),
		touched:  make(map[string]bool),
		reported: make(map[string]bool),
	}
	for _, d := range definitions {
		v := prefs.NewBool(d.def)
		v.SetHookPost(func(prefs.Value) error {
			s.touched[d.id] = true
			return nil
		})
		s.values[d.id] = v
		s.reported[d.id] = d.def
	}
	return s
}

// Changes returns the settings that have changed value since the last call
// to Changes(), in the form "id::value".
func (s *Settings) Changes() []string {
	var c []string
	for _, d := range definitions {
		if !s.touched[d.id] {
			continue
		}
		v := s.values[d.id].Bool()
		if v != s.reported[d.id] {
			c = append(c, fmt.Sprintf("%s::%v", d.id, v))
			s.reported[d.id] = v
		}
	}
	clear(s.touched)
	return c
}

// Keys returns every event ID.
func Keys() []string {
	k := make([]string, len(definitions))
	for i, d := range definitions {
		k[i] = d.id
	}
	return k
}

// Describe returns a description of the setting. Returns the empty string if
// the setting does not exist.
func Describe(id string) string {
	for _, d := range definitions {
		if d.id == id {
			return d.description
		}
	}
	return ""
}

// Enabled returns the value of the setting. Unknown settings are always
// disabled.
func (s *Settings) Enabled(id string) bool {
	if v, ok := s.values[id]; ok {
		return v.Bool()
	}
	return false
}

// Set the value of a setting.
func (s *Settings) Set(id string, value prefs.Value) error {
	v, ok := s.values[id]
	if !ok {
		return curated.Errorf(UnknownKey, id)
	}
	return v.Set(value)
}

// Reset every setting to its default value.
func (s *Settings) Reset() {
	for _, v := range s.values {
		_ = v.Reset()
	}
}

// Apply the configuration map. Keys missing from the map take their default
// value. Unknown keys are ignored and reported in the returned error, as is
// a nil map. Only settings with a new value are set.
func (s *Settings) Apply(m map[string]bool) error {
	for _, d := range definitions {
		nv := d.def
		if v, ok := m[d.id]; ok {
			nv = v
		}
		if v := s.values[d.id]; v.Bool() != nv {
			_ = v.Set(nv)
		}
	}

	if m == nil {
		return curated.Errorf(Missing)
	}

	var unknown []string
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, ok := s.values[k]; !ok {
			unknown = append(unknown, k)
		}
	}

	if len(unknown) > 0 {
		return curated.Errorf(UnknownKey, strings.Join(unknown, ", "))
	}

	return nil
}

// Parse a command line preferences string and set the named settings.
// Settings not named in the string are unchanged. Parsing continues after an
// error and the first error is returned.
func (s *Settings) Parse(prefsString string) error {
	pairs, err := prefs.ParseCommandLine(prefsString)
	for _, p := range pairs {
		if e := s.Set(p.Key, p.Value); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Map returns the settings as a configuration map suitable for Apply().
func (s *Settings) Map() map[string]bool {
	m := make(map[string]bool, len(s.values))
	for k, v := range s.values {
		m[k] = v.Bool()
	}
	return m
}

func (s *Settings) String() string {
	b := strings.Builder{}
	for _, d := range definitions {
		b.WriteString(fmt.Sprintf("%s::%v; ", d.id, s.values[d.id].Bool()))
	}
	return strings.TrimSuffix(b.String(), "; ")
}

// Overrides parses a command line preferences string into a configuration
// map. Only the named settings are in the map. Unknown keys and values that
// are not boolean are an error but do not prevent the remaining entries from
// being returned.
func Overrides(prefsString string) (map[string]bool, error) {
	pairs, err := prefs.ParseCommandLine(prefsString)
	m := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if Describe(p.Key) == "" {
			if err == nil {
				err = curated.Errorf(UnknownKey, p.Key)
			}
			continue
		}

		b := prefs.NewBool(false)
		if e := b.Set(p.Value); e != nil {
			if err == nil {
				err = e
			}
			continue
		}
		m[p.Key] = b.Bool()
	}
	return m, err
}
