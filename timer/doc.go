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

// Package timer applies splitter events to the host's timer. The Controller
// owns the Session, which is the record of what has been sent to the host.
//
// Events are applied idempotently. An event that would not change the host's
// timer (a second Reset while not running, a Pause while paused, etc.) is
// ignored. Applying the same event twice in the same tick causes at most one
// host command.
//
// Game time is accumulated from the positive changes of the in-game clock.
// Changes while game time is paused are discarded, meaning that the game time
// sent to the host never decreases and never increases while paused.
//
// When the run of one title is complete and the run continues with another
// title, game time is paused until the start condition of the next title is
// seen. The start of the next title resumes game time rather than starting a
// new run.
//
// The host has no method for initialising game time. When a run is started
// the game time is set immediately afterwards to the time since the start
// was detected, less the duration of one tick and never less than zero. The
// result is that game time can be marginally shorter than real time for the
// first interval of the run.
package timer
