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

package hostsim

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"golang.org/x/text/encoding/unicode"

	"github.com/jetsetilly/rorsplit/curated"
)

// size of each page of simulated memory
const pageSize = 0x1000

// blocks allocated by PointerChain() start at heapBase and are blockSize
// apart. heapBase is low enough to be a plausible 32 bit pointer
const (
	heapBase  = 0x20000000
	blockSize = 0x10000
)

// Sentinal error patterns.
const (
	Unmapped    = "hostsim: address %#x is unmapped"
	Invalidated = "hostsim: process has been invalidated"
	NoModule    = "hostsim: no module named %s"
	NoImage     = "hostsim: no image named %s"
	NoClass     = "hostsim: no class %s in image %s"
	NoField     = "hostsim: no field %s in class %s"
	NoScene     = "hostsim: scene is in transition"
)

type page [pageSize]byte

// Module is a named range of memory in the process.
type Module struct {
	Base uint64
	Size uint64
}

type classKey struct {
	image string
	class string
}

type fieldKey struct {
	image string
	class string
	field string
}

// every process gets a unique ID, in the same way that every attachment of a
// real process would
var nextID atomic.Uint64

// Process is a simulated game process. It implements the host.Process and
// host.ManagedRuntime interfaces.
type Process struct {
	id      uint64
	name    string
	modules map[string]Module
	pages   map[uint64]*page

	invalid bool

	// next block to be allocated by PointerChain()
	heap uint64

	// managed runtime
	images  map[string]bool
	statics map[classKey]uint64
	fields  map[fieldKey]uint64
	scene   string
	inScene bool
}

// NewProcess is the preferred method of initialisation for the Process type.
func NewProcess(name string) *Process {
	return &Process{
		id:      nextID.Add(1),
		name:    name,
		modules: make(map[string]Module),
		pages:   make(map[uint64]*page),
		heap:    heapBase,
		images:  make(map[string]bool),
		statics: make(map[classKey]uint64),
		fields:  make(map[fieldKey]uint64),
	}
}

// ID implements the host.Process interface.
func (p *Process) ID() uint64 {
	return p.id
}

// Name implements the host.Process interface.
func (p *Process) Name() string {
	return p.name
}

// Invalidate the process. All subsequent reads will fail.
func (p *Process) Invalidate() {
	p.invalid = true
}

// AddModule adds a named module to the process. The memory covered by the
// module is not mapped automatically.
func (p *Process) AddModule(name string, base uint64, size uint64) {
	p.modules[name] = Module{Base: base, Size: size}
}

// RemoveModule removes the named module from the process.
func (p *Process) RemoveModule(name string) {
	delete(p.modules, name)
}

// ModuleRange implements the host.Process interface.
func (p *Process) ModuleRange(name string) (uint64, uint64, error) {
	if p.invalid {
		return 0, 0, curated.Errorf(Invalidated)
	}
	m, ok := p.modules[name]
	if !ok {
		return 0, 0, curated.Errorf(NoModule, name)
	}
	return m.Base, m.Size, nil
}

// Map the memory in the range. Memory already mapped is unchanged.
func (p *Process) Map(address uint64, size uint64) {
	if size == 0 {
		return
	}
	for a := address &^ (pageSize - 1); a < address+size; a += pageSize {
		if _, ok := p.pages[a]; !ok {
			p.pages[a] = &page{}
		}
	}
}

// Unmap the pages that contain the range. Subsequent reads from the range
// will fail.
func (p *Process) Unmap(address uint64, size uint64) {
	if size == 0 {
		return
	}
	for a := address &^ (pageSize - 1); a < address+size; a += pageSize {
		delete(p.pages, a)
	}
}

// ReadMemory implements the host.Process interface.
func (p *Process) ReadMemory(address uint64, buf []byte) error {
	if p.invalid {
		return curated.Errorf(Invalidated)
	}
	for i := range buf {
		a := address + uint64(i)
		pg, ok := p.pages[a&^(pageSize-1)]
		if !ok {
			return curated.Errorf(Unmapped, a)
		}
		buf[i] = pg[a&(pageSize-1)]
	}
	return nil
}

// Write bytes to the memory at address. Pages are mapped as required.
func (p *Process) Write(address uint64, data []byte) {
	p.Map(address, uint64(len(data)))
	for i, b := range data {
		a := address + uint64(i)
		p.pages[a&^(pageSize-1)][a&(pageSize-1)] = b
	}
}

// WriteInt32 writes a little-endian 32 bit value.
func (p *Process) WriteInt32(address uint64, v int32) {
	p.WriteUint32(address, uint32(v))
}

// WriteUint32 writes a little-endian 32 bit value.
func (p *Process) WriteUint32(address uint64, v uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	p.Write(address, b)
}

// WriteUint64 writes a little-endian 64 bit value.
func (p *Process) WriteUint64(address uint64, v uint64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	p.Write(address, b)
}

// WriteFloat32 writes a single precision float.
func (p *Process) WriteFloat32(address uint64, v float32) {
	p.WriteUint32(address, math.Float32bits(v))
}

// WriteFloat64 writes a double precision float.
func (p *Process) WriteFloat64(address uint64, v float64) {
	p.WriteUint64(address, math.Float64bits(v))
}

// WriteBool writes a single byte boolean.
func (p *Process) WriteBool(address uint64, v bool) {
	if v {
		p.Write(address, []byte{1})
	} else {
		p.Write(address, []byte{0})
	}
}

// WriteString writes a NUL terminated string.
func (p *Process) WriteString(address uint64, s string) {
	p.Write(address, append([]byte(s), 0))
}

var utf16 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WriteUTF16 writes a string as little-endian UTF16 with a terminating NUL
// code unit.
func (p *Process) WriteUTF16(address uint64, s string) {
	// invalid UTF8 is encoded as the replacement character
	b, _ := utf16.NewEncoder().Bytes([]byte(s))
	p.Write(address, append(b, 0, 0))
}

// WritePointer writes an address of the given width (4 or 8 bytes).
func (p *Process) WritePointer(address uint64, width int, v uint64) {
	if width == 4 {
		p.WriteUint32(address, uint32(v))
	} else {
		p.WriteUint64(address, v)
	}
}

// readPointer returns zero if the memory is unmapped
func (p *Process) readPointer(address uint64, width int) uint64 {
	b := make([]byte, width)
	if err := p.ReadMemory(address, b); err != nil {
		return 0
	}
	if width == 4 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

// PointerChain lays out the pointers required for the offsets to be followed
// from base. The returned address is where the value at the end of the chain
// should be written.
//
// Pointers already written by an earlier call are followed rather than
// replaced, so chains with a common prefix can be laid out one after the
// other.
func (p *Process) PointerChain(width int, base uint64, offsets ...uint64) uint64 {
	if len(offsets) == 0 {
		return base
	}
	address := base + offsets[0]
	for _, o := range offsets[1:] {
		next := p.readPointer(address, width)
		if next == 0 {
			next = p.heap
			p.heap += blockSize
			p.WritePointer(address, width, next)
		}
		address = next + o
	}
	return address
}
