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

// Package splitter contains the state machine of each supported title. A
// Machine converts a sequence of snapshots into a sequence of events.
//
// A Machine is a pure function of the previous State and the latest Snapshot.
// The State contains the phase of the run and the last seen value of every
// field, so there is no history outside of the State. There are no clocks in
// this package.
//
// Each phase of each title has a list of required fields. If any required
// field is absent from the snapshot the State is returned unchanged and no
// event is emitted. Other fields only disable the transitions that read them.
// The last seen value of an absent field is kept, meaning that a change can be
// detected across any number of ticks in which the field was absent.
//
// At most one event is emitted per tick. When more than one event is possible
// the order of priority is:
//
//	Reset, Start, Split (completion), Split, Pause/Resume, SetGameTime
//
// The State only records events that were emitted. A pause, resume or game
// time event that loses to a higher priority event is therefore emitted on a
// later tick.
package splitter
