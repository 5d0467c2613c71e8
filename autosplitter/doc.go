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

// Package autosplitter is the entry point for the host. The host calls
// Update() once per tick and the autosplitter reads the game's memory and
// drives the host's timer.
//
// The work done in a single tick is:
//
//	settings     the host's configuration map is applied
//	resolver     the attached process is identified
//	timer sync   changes made to the timer by the user are noted
//	snapshot     the fields of the layout are read from memory
//	splitter     the state machine for the title is advanced
//	timer        the resulting event is applied to the host's timer
//
// Everything happens synchronously in the goroutine that calls Update(). The
// autosplitter never starts a goroutine of its own. With the "assertions"
// build tag, calling Update() from more than one goroutine will panic.
//
// A problem in any stage of the tick is not an error from the point of view
// of the host. At worst the tick is abandoned and the status string is
// updated. A panic in the pipeline is recovered and logged.
package autosplitter
