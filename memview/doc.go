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

// Package memview is a typed read facade over the raw memory access provided
// by the host. It resolves pointer chains and decodes primitive values.
//
// A View is created fresh for every tick and nothing is cached between ticks.
// Addresses relocate between scenes and the pointer chains are re-read every
// time.
//
// Read failures are an expected and frequent condition, particularly during
// scene loads. The Read() function never panics and reports a failed read
// simply with a false boolean. The ReadErr() function is the same but returns
// a curated error describing the failure, for logging purposes.
package memview
