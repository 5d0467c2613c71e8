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

package splitter

import (
	"slices"

	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/settings"
)

// Risk of Rain. The room ID is the only required field. The run end flag is
// only valid on the final stage.
var ror1 = table{
	required: func(Phase) []string {
		return []string{layout.FieldRoom}
	},
	conditions: ror1Conditions,
}

func ror1Menu(room int64) bool {
	return slices.Contains(layout.RoR1MenuRooms, room)
}

func ror1Lobby(room int64) bool {
	return slices.Contains(layout.RoR1LobbyRooms, room)
}

func ror1Conditions(t tick) conditions {
	var c conditions

	room := t.cur.Room
	old := t.prev.Room
	changed := t.prev.HasRoom && room != old

	c.menu = ror1Menu(room) || ror1Lobby(room)

	// start when entering a stage from a lobby
	c.start = changed && ror1Lobby(old) && !ror1Menu(room)

	// reset on the main menu or the online co-op lobby
	c.reset = room == layout.RoR1RoomMainMenu || room == layout.RoR1RoomOnlineCoop

	// split on stage change but not when returning to or from the menus
	if changed && t.points.Enabled(settings.RoR1Stages) {
		c.split = !(ror1Menu(old) || ror1Menu(room) || ror1Lobby(old) || ror1Lobby(room))
	}

	// completion when the control panel is activated on the final stage
	if t.has(layout.FieldRunEndFlag) && t.prev.HasRunEnd {
		c.completed = room == layout.RoR1RoomFinalStage && t.prev.RunEnd == 0 && t.cur.RunEnd == 1
	}

	// no load removal
	c.loading = loadingNo

	if t.points.Enabled(settings.RoR1IGT) {
		c.clock, c.hasClock = t.clock()
	}

	return c
}
