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

package memview

import (
	"fmt"
	"slices"
	"strings"
)

// PointerSize is the width of a pointer in the target process.
type PointerSize int

// List of valid PointerSize values.
const (
	Pointer32 PointerSize = 4
	Pointer64 PointerSize = 8
)

// the lowest address that is considered a plausible pointer. anything lower
// is either nil or a small integer that has been mistaken for a pointer
const minPlausible = 0x10000

// maxPlausible returns the highest plausible user-space address for the
// pointer size.
func (ps PointerSize) maxPlausible() uint64 {
	if ps == Pointer32 {
		return 0xffffffff
	}
	return 0x7fffffffffff
}

// Plausible returns true if address could be a user-space address in a
// process with the pointer size.
func (ps PointerSize) Plausible(address uint64) bool {
	return address >= minPlausible && address <= ps.maxPlausible()
}

// Source indicates how the base address of a Path is found.
type Source int

// List of valid Source values.
const (
	// the base address is the base of a named module
	SourceModule Source = iota

	// the base address is the static table of a managed class. the
	// members of the path are resolved to offsets through the host's
	// managed runtime inspector
	SourceManaged

	// the value is the name of the current scene, as reported by the host's
	// managed runtime inspector. there is no address
	SourceScene
)

func (s Source) String() string {
	switch s {
	case SourceModule:
		return "module"
	case SourceManaged:
		return "managed"
	case SourceScene:
		return "scene"
	}
	return "unknown source"
}

// Member is the name of a managed field. Some fields have been renamed
// between builds of a game so more than one name can be given. The first
// name that resolves is used.
//
// A name of the form "Class::field" is a field of another class in the same
// image. For example, a field of an instance that is reached through a static
// field of the path's class.
type Member []string

// the separator between a class and a field in a qualified member name
const qualifier = "::"

// field returns the class and field named by a member name
func field(class string, name string) (string, string) {
	if c, f, ok := strings.Cut(name, qualifier); ok {
		return c, f
	}
	return class, name
}

func (m Member) String() string {
	return strings.Join(m, "|")
}

// Path describes the location of a value in the target process.
//
// For a module path, the value is found by adding the first offset to the
// base address of the module. For every following offset, a pointer is read
// from the current address and the offset is added to the pointer. The value
// is then read from the final address.
//
// For a managed path, the base is the static table of the class and the
// members are resolved to offsets. The resolved offsets, followed by any
// fixed offsets, are then treated in the same way as the offsets of a module
// path.
type Path struct {
	Source      Source
	PointerSize PointerSize

	// SourceModule. the offsets also follow the members of a SourceManaged
	// path
	Module  string
	Offsets []uint64

	// SourceManaged
	Image   string
	Class   string
	Members []Member
}

func (p Path) String() string {
	switch p.Source {
	case SourceModule:
		s := make([]string, len(p.Offsets))
		for i := range p.Offsets {
			s[i] = fmt.Sprintf("%#x", p.Offsets[i])
		}
		return fmt.Sprintf("%s+[%s]", p.Module, strings.Join(s, ", "))
	case SourceManaged:
		s := make([]string, len(p.Members))
		for i := range p.Members {
			s[i] = p.Members[i].String()
		}
		image := p.Image
		if image == "" {
			image = "<default>"
		}
		if len(p.Offsets) > 0 {
			o := make([]string, len(p.Offsets))
			for i := range p.Offsets {
				o[i] = fmt.Sprintf("%#x", p.Offsets[i])
			}
			return fmt.Sprintf("%s:%s.%s+[%s]", image, p.Class, strings.Join(s, "->"), strings.Join(o, ", "))
		}
		return fmt.Sprintf("%s:%s.%s", image, p.Class, strings.Join(s, "->"))
	case SourceScene:
		return "scene"
	}
	return p.Source.String()
}

// ModulePath is a convenience function to create a Path with a module source.
func ModulePath(ps PointerSize, module string, offsets ...uint64) Path {
	return Path{
		Source:      SourceModule,
		PointerSize: ps,
		Module:      module,
		Offsets:     offsets,
	}
}

// ManagedPath is a convenience function to create a Path with a managed
// source.
func ManagedPath(ps PointerSize, image string, class string, members ...Member) Path {
	return Path{
		Source:      SourceManaged,
		PointerSize: ps,
		Image:       image,
		Class:       class,
		Members:     members,
	}
}

// ScenePath is a convenience function to create a Path that reads the name of
// the current scene.
func ScenePath() Path {
	return Path{Source: SourceScene}
}

// StringChars returns the offset of the first character in a managed string
// object. The object header is two pointers wide and is followed by the 32
// bit length of the string.
func (ps PointerSize) StringChars() uint64 {
	return 2*uint64(ps) + 4
}

// ManagedString returns a copy of a managed path that ends at a reference to
// a string object. The new path ends at the characters of the string, which
// should be read as UTF16 text.
func ManagedString(p Path) Path {
	ps := p.PointerSize
	if ps != Pointer32 {
		ps = Pointer64
	}
	p.Offsets = append(slices.Clone(p.Offsets), ps.StringChars())
	return p
}
