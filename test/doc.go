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

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions report with t.Fatalf() and should be
// used when the remainder of the test depends on the result.
//
// Success and failure are interpreted according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// The nil case is worth noting because it is not obvious. A nil value is
// considered success because of how errors are usually tested, ie. a nil
// error indicates no error.
//
// All functions accept optional tag values. The tags are printed at the start
// of any failure message and are useful for identifying which iteration of a
// table driven test has failed.
//
// The Writer type implements the io.Writer interface and can be used to
// capture output for comparison.
package test
