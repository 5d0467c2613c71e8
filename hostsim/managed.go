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
	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/host"
)

// AddImage makes the named image available in the managed runtime. The empty
// string is the default image.
func (p *Process) AddImage(image string) {
	p.images[image] = true
}

// RemoveImage removes the named image from the managed runtime.
func (p *Process) RemoveImage(image string) {
	delete(p.images, image)
}

// AddClass adds a class with a static table at the address.
func (p *Process) AddClass(image string, class string, staticTable uint64) {
	p.statics[classKey{image: image, class: class}] = staticTable
}

// RemoveClass removes the class from the image. Fields of the class are not
// removed but cannot be resolved until the class is added again.
func (p *Process) RemoveClass(image string, class string) {
	delete(p.statics, classKey{image: image, class: class})
}

// AddField adds a static or instance field to a class.
func (p *Process) AddField(image string, class string, field string, offset uint64) {
	p.fields[fieldKey{image: image, class: class, field: field}] = offset
}

// SetScene sets the path of the current scene. An empty path means that a
// scene transition is in progress.
func (p *Process) SetScene(path string) {
	p.scene = path
	p.inScene = path != ""
}

// HasImage implements the host.ManagedRuntime interface.
func (p *Process) HasImage(image string) bool {
	return !p.invalid && p.images[image]
}

// StaticTable implements the host.ManagedRuntime interface.
func (p *Process) StaticTable(image string, class string) (uint64, error) {
	if p.invalid {
		return 0, curated.Errorf(Invalidated)
	}
	if !p.images[image] {
		return 0, curated.Errorf(NoImage, image)
	}
	a, ok := p.statics[classKey{image: image, class: class}]
	if !ok {
		return 0, curated.Errorf(NoClass, class, image)
	}
	return a, nil
}

// FieldOffset implements the host.ManagedRuntime interface.
func (p *Process) FieldOffset(image string, class string, field string) (uint64, error) {
	if _, err := p.StaticTable(image, class); err != nil {
		return 0, err
	}
	o, ok := p.fields[fieldKey{image: image, class: class, field: field}]
	if !ok {
		return 0, curated.Errorf(NoField, field, class)
	}
	return o, nil
}

// ScenePath implements the host.ManagedRuntime interface.
func (p *Process) ScenePath() (string, error) {
	if p.invalid {
		return "", curated.Errorf(Invalidated)
	}
	if !p.inScene {
		return "", curated.Errorf(NoScene)
	}
	return p.scene, nil
}

// unmanaged hides the managed runtime of a Process.
type unmanaged struct {
	p *Process
}

func (u unmanaged) ID() uint64   { return u.p.ID() }
func (u unmanaged) Name() string { return u.p.Name() }

func (u unmanaged) ReadMemory(address uint64, buf []byte) error {
	return u.p.ReadMemory(address, buf)
}

func (u unmanaged) ModuleRange(name string) (uint64, uint64, error) {
	return u.p.ModuleRange(name)
}

// Unmanaged returns the process as a host.Process that does not implement
// the host.ManagedRuntime interface.
func (p *Process) Unmanaged() host.Process {
	return unmanaged{p: p}
}
