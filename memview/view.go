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
	"bytes"
	"encoding/binary"
	"math"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/host"
)

// Sentinal error patterns returned by ReadErr() and Resolve().
const (
	NoProcess          = "memview: no process"
	NoManagedRuntime   = "memview: process has no managed runtime"
	NoModule           = "memview: module %s: %v"
	EmptyPath          = "memview: empty path"
	OutsideModule      = "memview: address %#x outside module %s"
	ImplausiblePointer = "memview: implausible pointer %#x at link %d"
	ReadFailed         = "memview: read at %#x: %v"
	UnresolvedMember   = "memview: unresolved member %s of %s"
	UnresolvedClass    = "memview: unresolved class %s: %v"
	UndecodableValue   = "memview: undecodable %s value"
	NoScene            = "memview: no scene: %v"
)

type module struct {
	base uint64
	size uint64
	err  error
}

// View is a read facade over a host process for the duration of one tick.
type View struct {
	proc    host.Process
	managed host.ManagedRuntime

	// module ranges are looked up at most once per view. views only live
	// for a single tick
	modules map[string]module
}

// NewView is the preferred method of initialisation for the View type. The
// process can be nil, in which case every read will be unavailable.
func NewView(proc host.Process) *View {
	v := &View{
		proc:    proc,
		modules: make(map[string]module),
	}
	if proc != nil {
		v.managed, _ = proc.(host.ManagedRuntime)
	}
	return v
}

// Process returns the process the view is reading from. Can be nil.
func (v *View) Process() host.Process {
	return v.proc
}

// Managed returns the managed runtime inspector for the process, if there is
// one.
func (v *View) Managed() (host.ManagedRuntime, bool) {
	return v.managed, v.managed != nil
}

// Module returns the base address and size of the named module.
func (v *View) Module(name string) (uint64, uint64, error) {
	if v.proc == nil {
		return 0, 0, curated.Errorf(NoProcess)
	}

	if m, ok := v.modules[name]; ok {
		return m.base, m.size, m.err
	}

	var m module
	m.base, m.size, m.err = v.proc.ModuleRange(name)
	if m.err != nil {
		m.err = curated.Errorf(NoModule, name, m.err)
	}
	v.modules[name] = m

	return m.base, m.size, m.err
}

// ReadBytes reads n bytes at the absolute address.
func (v *View) ReadBytes(address uint64, n int) ([]byte, error) {
	if v.proc == nil {
		return nil, curated.Errorf(NoProcess)
	}
	b := make([]byte, n)
	if err := v.proc.ReadMemory(address, b); err != nil {
		return nil, curated.Errorf(ReadFailed, address, err)
	}
	return b, nil
}

func (v *View) readPointer(address uint64, ps PointerSize) (uint64, error) {
	b, err := v.ReadBytes(address, int(ps))
	if err != nil {
		return 0, err
	}
	if ps == Pointer32 {
		return uint64(binary.LittleEndian.Uint32(b)), nil
	}
	return binary.LittleEndian.Uint64(b), nil
}

// offsets resolves the base address and offsets list for a path.
func (v *View) offsets(p Path) (uint64, []uint64, error) {
	switch p.Source {
	case SourceModule:
		base, size, err := v.Module(p.Module)
		if err != nil {
			return 0, nil, err
		}
		if len(p.Offsets) == 0 {
			return 0, nil, curated.Errorf(EmptyPath)
		}

		// the first link of a module path must be inside the module
		if size > 0 && p.Offsets[0] >= size {
			return 0, nil, curated.Errorf(OutsideModule, base+p.Offsets[0], p.Module)
		}

		return base, p.Offsets, nil

	case SourceManaged:
		if v.proc == nil {
			return 0, nil, curated.Errorf(NoProcess)
		}
		if v.managed == nil {
			return 0, nil, curated.Errorf(NoManagedRuntime)
		}
		if len(p.Members) == 0 {
			return 0, nil, curated.Errorf(EmptyPath)
		}

		base, err := v.managed.StaticTable(p.Image, p.Class)
		if err != nil {
			return 0, nil, curated.Errorf(UnresolvedClass, p.Class, err)
		}

		offsets := make([]uint64, len(p.Members), len(p.Members)+len(p.Offsets))
		for i, m := range p.Members {
			resolved := false
			for _, name := range m {
				class, fld := field(p.Class, name)
				o, err := v.managed.FieldOffset(p.Image, class, fld)
				if err == nil {
					offsets[i] = o
					resolved = true
					break
				}
			}
			if !resolved {
				return 0, nil, curated.Errorf(UnresolvedMember, m, p.Class)
			}
		}

		return base, append(offsets, p.Offsets...), nil
	}

	return 0, nil, curated.Errorf(EmptyPath)
}

// Resolve the final address of a path. Every pointer in the chain is read
// fresh from the process.
func (v *View) Resolve(p Path) (uint64, error) {
	if p.Source == SourceScene {
		return 0, curated.Errorf(EmptyPath)
	}

	address, offsets, err := v.offsets(p)
	if err != nil {
		return 0, err
	}

	ps := p.PointerSize
	if ps != Pointer32 {
		ps = Pointer64
	}

	last := len(offsets) - 1
	for i, o := range offsets[:last] {
		address += o
		if !ps.Plausible(address) {
			return 0, curated.Errorf(ImplausiblePointer, address, i)
		}
		address, err = v.readPointer(address, ps)
		if err != nil {
			return 0, err
		}
		if !ps.Plausible(address) {
			return 0, curated.Errorf(ImplausiblePointer, address, i)
		}
	}

	address += offsets[last]
	if !ps.Plausible(address) {
		return 0, curated.Errorf(ImplausiblePointer, address, last)
	}

	return address, nil
}

// Read the value described by the path and type. Returns false if the value
// is unavailable for any reason.
func (v *View) Read(p Path, t Type) (Value, bool) {
	val, err := v.ReadErr(p, t)
	return val, err == nil
}

// ReadErr is the same as Read() but returns an error describing why the value
// is unavailable.
func (v *View) ReadErr(p Path, t Type) (Value, error) {
	if p.Source == SourceScene {
		return v.readScene(t)
	}

	address, err := v.Resolve(p)
	if err != nil {
		return Value{}, err
	}

	n := t.Kind.size()
	if t.Kind == Text {
		n = t.Len + 1
		if t.Encoding == UTF16 {
			n = (t.Len + 1) * 2
		}
	}

	b, err := v.ReadBytes(address, n)
	if err != nil {
		return Value{}, err
	}

	return Decode(b, t)
}

func (v *View) readScene(t Type) (Value, error) {
	if v.proc == nil {
		return Value{}, curated.Errorf(NoProcess)
	}
	if v.managed == nil {
		return Value{}, curated.Errorf(NoManagedRuntime)
	}

	p, err := v.managed.ScenePath()
	if err != nil {
		return Value{}, curated.Errorf(NoScene, err)
	}

	name := SceneName(p)
	if name == "" || (t.Len > 0 && len(name) > t.Len) || !utf8.ValidString(name) {
		return Value{}, curated.Errorf(UndecodableValue, t)
	}

	return TextValue(name), nil
}

// SceneName reduces a scene path to the scene name. For example:
//
//	Assets/RoR2/Scenes/golemplains.unity -> golemplains
func SceneName(scenePath string) string {
	return strings.TrimSuffix(path.Base(strings.ReplaceAll(scenePath, "\\", "/")), ".unity")
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decode the raw bytes according to the type. Values that cannot be a valid
// instance of the type are an error rather than being coerced.
func Decode(b []byte, t Type) (Value, error) {
	if t.Kind != Text && len(b) < t.Kind.size() {
		return Value{}, curated.Errorf(UndecodableValue, t)
	}

	switch t.Kind {
	case Int32:
		return IntValue(Int32, int64(int32(binary.LittleEndian.Uint32(b)))), nil

	case Uint32:
		return IntValue(Uint32, int64(binary.LittleEndian.Uint32(b))), nil

	case Int64:
		return IntValue(Int64, int64(binary.LittleEndian.Uint64(b))), nil

	case Float32:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return Value{}, curated.Errorf(UndecodableValue, t)
		}
		return FloatValue(Float32, float64(f)), nil

	case Float64:
		f := math.Float64frombits(binary.LittleEndian.Uint64(b))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, curated.Errorf(UndecodableValue, t)
		}
		return FloatValue(Float64, f), nil

	case Bool:
		// a bool is a single byte that must be either zero or one
		switch b[0] {
		case 0:
			return BoolValue(false), nil
		case 1:
			return BoolValue(true), nil
		}
		return Value{}, curated.Errorf(UndecodableValue, t)

	case Text:
		return decodeText(b, t)
	}

	return Value{}, curated.Errorf(UndecodableValue, t)
}

func decodeText(b []byte, t Type) (Value, error) {
	var s string

	switch t.Encoding {
	case UTF16:
		// find the terminating NUL code unit
		end := len(b) &^ 1
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				end = i
				break
			}
		}
		d, err := utf16Decoder.NewDecoder().Bytes(b[:end])
		if err != nil {
			return Value{}, curated.Errorf(UndecodableValue, t)
		}
		s = string(d)

	default:
		end := bytes.IndexByte(b, 0)
		if end < 0 {
			end = len(b)
		}
		s = string(b[:end])
	}

	if !utf8.ValidString(s) || strings.ContainsRune(s, utf8.RuneError) {
		return Value{}, curated.Errorf(UndecodableValue, t)
	}
	n := len(s)
	if t.Encoding == UTF16 {
		n = utf8.RuneCountInString(s)
	}
	if t.Len > 0 && n > t.Len {
		return Value{}, curated.Errorf(UndecodableValue, t)
	}

	return TextValue(s), nil
}
