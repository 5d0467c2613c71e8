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

// Risk of Rain Returns. The room ID is the only required field.
var rorr = table{
	required: func(Phase) []string {
		return []string{layout.FieldRoom}
	},
	conditions: rorrConditions,
}

func rorrMenu(room int64) bool {
	return slices.Contains(layout.RoRRMenuRooms, room)
}

func rorrConditions(t tick) conditions {
	var c conditions

	room := t.cur.Room
	old := t.prev.Room
	changed := t.prev.HasRoom && room != old

	c.menu = rorrMenu(room)

	// start when leaving the lobby for anything other than the menus
	c.start = changed && old == layout.RoRRRoomLobby && !(room == 2 || room == 3 || room == layout.RoRRRoomLobby)

	c.reset = room == layout.RoRRRoomLobby

	if changed && t.points.Enabled(settings.RoRRStages) {
		c.split = !(rorrMenu(old) || rorrMenu(room))
	}

	c.completed = changed && room == layout.RoRRRoomOutro

	c.loading = loadingNo

	if t.points.Enabled(settings.RoRRIGT) {
		c.clock, c.hasClock = t.clock()
	}

	return c
}
