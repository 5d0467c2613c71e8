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

//go:build assertions

package assert

import "fmt"

// SameGoroutine panics if it is called from a goroutine other than the one
// that made the first call.
func (g *Goroutine) SameGoroutine() {
	id := GoroutineID()
	if g.id == 0 {
		g.id = id
		return
	}
	if g.id != id {
		panic(fmt.Sprintf("assert: called from goroutine %d (expected %d)", id, g.id))
	}
}
