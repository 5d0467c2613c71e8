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

// Package host defines the boundary between RoRSplit and the timing host that
// loads it. The host owns the process handle, the memory read primitives and
// the timer. RoRSplit only ever calls into the host through these interfaces
// and only from within a call to the per-tick update function.
//
// Nothing in this package does any work. Implementations are provided by the
// host adapter, or by the hostsim package for testing and replay.
package host
