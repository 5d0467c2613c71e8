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

package layout

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jetsetilly/rorsplit/fingerprint"
	"github.com/jetsetilly/rorsplit/memview"
)

// Variant identifies a supported title.
type Variant int

// List of valid Variant values.
const (
	RiskOfRain Variant = iota
	RiskOfRain2
	RiskOfRainReturns
)

func (v Variant) String() string {
	switch v {
	case RiskOfRain:
		return "Risk of Rain"
	case RiskOfRain2:
		return "Risk of Rain 2"
	case RiskOfRainReturns:
		return "Risk of Rain Returns"
	}
	return "unknown title"
}

// Variants returns every supported title in the order in which they should
// be tested.
func Variants() []Variant {
	return []Variant{RiskOfRain, RiskOfRain2, RiskOfRainReturns}
}

// List of logical field names.
const (
	FieldRoom       = "room"
	FieldRunEndFlag = "run_end_flag"
	FieldInGameTime = "in_game_time"
	FieldFade       = "fade"
	FieldStageCount = "stage_count"
	FieldResults    = "results"
	FieldScene      = "scene"
)

// Field is the location and type of a single logical value.
type Field struct {
	Path memview.Path
	Type memview.Type

	// read when the value at Path is unavailable
	Fallback *Field
}

func (f Field) String() string {
	if f.Fallback != nil {
		return fmt.Sprintf("%s %s (or %s)", f.Path, f.Type, f.Fallback)
	}
	return fmt.Sprintf("%s %s", f.Path, f.Type)
}

// Descriptor describes one build of a title.
type Descriptor struct {
	Variant Variant
	Build   string

	// the name of the process and the main module
	Module string

	Signature   fingerprint.Signature
	PointerSize memview.PointerSize
	Fields      map[string]Field
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s %s", d.Variant, d.Build)
}

// FieldNames returns the names of the fields in the descriptor in a stable
// order.
func (d *Descriptor) FieldNames() []string {
	return slices.Sorted(maps.Keys(d.Fields))
}

// the list of all descriptors. populated by the init() functions of the
// per-title files
var descriptors = map[Variant][]*Descriptor{}

func register(d *Descriptor) {
	descriptors[d.Variant] = append(descriptors[d.Variant], d)
}

// Builds returns every descriptor for the title. The order of the list is the
// order in which the descriptors should be tested. The returned slice must
// not be altered.
func Builds(v Variant) []*Descriptor {
	return descriptors[v]
}

// ProcessNames returns the names of the processes (and main modules) used by
// the title.
func ProcessNames(v Variant) []string {
	var names []string
	for _, d := range descriptors[v] {
		if !slices.Contains(names, d.Module) {
			names = append(names, d.Module)
		}
	}
	return names
}
