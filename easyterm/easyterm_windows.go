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

//go:build windows

package easyterm

import (
	"fmt"
	"os"
)

// TermGeometry contains the dimensions of a terminal
type TermGeometry struct {
	Rows uint16
	Cols uint16
}

// Terminal is not supported on windows. Initialise() always fails.
type Terminal struct{}

// Initialise always returns an error on windows
func (pt *Terminal) Initialise(_, _ *os.File) error {
	return fmt.Errorf("easyterm: not supported on this platform")
}

// CleanUp does nothing on windows
func (pt *Terminal) CleanUp() {}

// Geometry returns the zero value on windows
func (pt *Terminal) Geometry() TermGeometry {
	return TermGeometry{}
}

// CanonicalMode does nothing on windows
func (pt *Terminal) CanonicalMode() {}

// CBreakMode does nothing on windows
func (pt *Terminal) CBreakMode() {}

// Flush does nothing on windows
func (pt *Terminal) Flush() error {
	return nil
}

// ReadKey always returns an error on windows
func (pt *Terminal) ReadKey() (byte, error) {
	return 0, fmt.Errorf("easyterm: not supported on this platform")
}

// SuspendProcess does nothing on windows
func SuspendProcess() {}
