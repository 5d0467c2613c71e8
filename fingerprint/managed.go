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
	"fmt"
	"strings"

	"github.com/jetsetilly/rorsplit/memview"
)

// ManagedImage matches if the managed runtime has loaded the named image. The
// empty string is the default image.
type ManagedImage struct {
	Image string
}

// Match implements the Signature interface.
func (sig ManagedImage) Match(v *memview.View) bool {
	m, ok := v.Managed()
	if !ok {
		return false
	}
	return m.HasImage(sig.Image)
}

func (sig ManagedImage) String() string {
	if sig.Image == "" {
		return "default managed image"
	}
	return fmt.Sprintf("managed image %s", sig.Image)
}

// SceneLoaded matches once the managed runtime reports a valid scene. Images
// are loaded lazily by the runtime and cannot be relied upon before the first
// scene has been loaded.
type SceneLoaded struct{}

// Match implements the Signature interface.
func (sig SceneLoaded) Match(v *memview.View) bool {
	m, ok := v.Managed()
	if !ok {
		return false
	}
	_, err := m.ScenePath()
	return err == nil
}

func (sig SceneLoaded) String() string {
	return "scene loaded"
}

// All matches if every signature in the list matches. Signatures are tested
// in order and testing stops on the first failure. An empty list never
// matches.
type All []Signature

// Match implements the Signature interface.
func (sig All) Match(v *memview.View) bool {
	if len(sig) == 0 {
		return false
	}
	for _, s := range sig {
		if !s.Match(v) {
			return false
		}
	}
	return true
}

func (sig All) String() string {
	s := make([]string, len(sig))
	for i := range sig {
		s[i] = sig[i].String()
	}
	return strings.Join(s, " && ")
}

// Not matches if the signature does not match.
type Not struct {
	Signature Signature
}

// Match implements the Signature interface.
func (sig Not) Match(v *memview.View) bool {
	return !sig.Signature.Match(v)
}

func (sig Not) String() string {
	return fmt.Sprintf("not %s", sig.Signature)
}
