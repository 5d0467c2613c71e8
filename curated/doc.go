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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() and are distinguished from one
// another by the pattern string used to create them, rather than by the
// formatted message.
//
//	e := curated.Errorf("memview: pointer out of range (%#x)", addr)
//
//	if curated.Is(e, "memview: pointer out of range (%#x)") {
//		...
//	}
//
// Has() is similar to Is() but searches the entire chain of wrapped curated
// errors. A curated error is wrapped by using it as one of the values to
// another Errorf() call.
//
//	f := curated.Errorf("resolver: %v", e)
//	curated.Has(f, "memview: pointer out of range (%#x)") // true
//	curated.Is(f, "memview: pointer out of range (%#x)")  // false
//
// The Error() message of a curated error is normalised such that adjacent
// duplicate parts of the chain are removed. For example, wrapping an error
// that begins with "resolver: " inside another "resolver: %v" pattern does
// not produce "resolver: resolver: ...".
//
// In RoRSplit curated errors never reach the host. They are logged and then
// converted into status strings or into absent snapshot fields.
package curated
