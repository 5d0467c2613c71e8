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

package timer

import (
	"fmt"
	"time"

	"github.com/jetsetilly/rorsplit/splitter"
)

// Session is the record of what has been sent to the host. The zero value is
// the initial state.
type Session struct {
	Running bool

	// accumulated game time
	GameTime time.Duration

	// the value of the in-game clock on the previous SetGameTime event
	Clock    time.Duration
	HasClock bool

	// game time is paused
	Paused bool

	// the run of one title is complete and the run is waiting for the start
	// of the next title
	Switching bool

	// the most recent event and the tick it was applied on
	LastEvent splitter.Event
	LastTick  time.Time
}

// Reset the session to the initial state.
func (s *Session) Reset() {
	*s = Session{}
}

func (s Session) String() string {
	if !s.Running {
		return "not running"
	}
	var state string
	switch {
	case s.Switching:
		state = "switching"
	case s.Paused:
		state = "paused"
	default:
		state = "running"
	}
	return fmt.Sprintf("%s [%s]", state, s.GameTime)
}
