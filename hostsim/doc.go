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

// Package hostsim is an in-memory implementation of the host interfaces. It
// is used by the tests of the other packages and by the REPLAY mode of the
// command line program.
//
// The Process type is a sparse memory image, mapped in pages, with a list of
// named modules and an optional managed runtime. Reading from an unmapped
// address is an error, in the same way that a read from a real process would
// fail.
//
// The Timer type records every command it receives and maintains a simple
// model of the host's timer state.
package hostsim
