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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/rorsplit/assert"
	"github.com/jetsetilly/rorsplit/test"
)

func TestGoroutineID(t *testing.T) {
	id := assert.GoroutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GoroutineID(), id)

	other := make(chan uint64)
	go func() {
		other <- assert.GoroutineID()
	}()
	test.ExpectInequality(t, <-other, id)
}

func TestSameGoroutine(t *testing.T) {
	var g assert.Goroutine

	// repeated calls from the same goroutine never panic, with or without
	// the assertions tag
	g.SameGoroutine()
	g.SameGoroutine()
}
