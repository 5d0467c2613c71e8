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

package fingerprint

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"slices"
	"strings"

	"github.com/jetsetilly/rorsplit/memview"
)

// Signature is implemented by all fingerprint types.
type Signature interface {
	// Match returns true if the signature matches the process being viewed
	Match(*memview.View) bool

	String() string
}

// Bytes matches the bytes at an offset from the base of a module.
type Bytes struct {
	Module   string
	Offset   uint64
	Expected []byte
}

// BuildString is a convenience function that creates a Bytes signature from
// a string.
func BuildString(module string, offset uint64, expected string) Bytes {
	return Bytes{Module: module, Offset: offset, Expected: []byte(expected)}
}

// Match implements the Signature interface.
func (sig Bytes) Match(v *memview.View) bool {
	if len(sig.Expected) == 0 {
		return false
	}
	base, size, err := v.Module(sig.Module)
	if err != nil {
		return false
	}
	if size > 0 && sig.Offset+uint64(len(sig.Expected)) > size {
		return false
	}
	b, err := v.ReadBytes(base+sig.Offset, len(sig.Expected))
	if err != nil {
		return false
	}
	return bytes.Equal(b, sig.Expected)
}

func (sig Bytes) String() string {
	return fmt.Sprintf("%s+%#x == %q", sig.Module, sig.Offset, sig.Expected)
}

// ModuleSize matches the size of a module. The size of a module can differ
// between platforms so more than one size can be given.
type ModuleSize struct {
	Module string
	Sizes  []uint64
}

// Match implements the Signature interface.
func (sig ModuleSize) Match(v *memview.View) bool {
	_, size, err := v.Module(sig.Module)
	if err != nil {
		return false
	}
	return slices.Contains(sig.Sizes, size)
}

func (sig ModuleSize) String() string {
	s := make([]string, len(sig.Sizes))
	for i := range sig.Sizes {
		s[i] = fmt.Sprintf("%#x", sig.Sizes[i])
	}
	return fmt.Sprintf("size of %s in [%s]", sig.Module, strings.Join(s, ", "))
}

// Checksum matches the SHA1 hash of a range of bytes in a module. The hash is
// given as a lowercase hexadecimal string.
type Checksum struct {
	Module string
	Offset uint64
	Length int
	SHA1   string
}

// Match implements the Signature interface.
func (sig Checksum) Match(v *memview.View) bool {
	if sig.Length <= 0 {
		return false
	}
	base, size, err := v.Module(sig.Module)
	if err != nil {
		return false
	}
	if size > 0 && sig.Offset+uint64(sig.Length) > size {
		return false
	}
	b, err := v.ReadBytes(base+sig.Offset, sig.Length)
	if err != nil {
		return false
	}
	return fmt.Sprintf("%x", sha1.Sum(b)) == strings.ToLower(sig.SHA1)
}

func (sig Checksum) String() string {
	return fmt.Sprintf("sha1(%s+%#x:%d) == %s", sig.Module, sig.Offset, sig.Length, sig.SHA1)
}

// ModulePresent matches if the module is present. Used for titles that only
// ever had one supported build.
type ModulePresent struct {
	Module string
}

// Match implements the Signature interface.
func (sig ModulePresent) Match(v *memview.View) bool {
	_, _, err := v.Module(sig.Module)
	return err == nil
}

func (sig ModulePresent) String() string {
	return fmt.Sprintf("module %s", sig.Module)
}
