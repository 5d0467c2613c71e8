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

package layout

import (
	"github.com/jetsetilly/rorsplit/fingerprint"
	"github.com/jetsetilly/rorsplit/memview"
)

const rorrModule = "Risk of Rain Returns.exe"

// GameMaker room IDs used by the splitter.
var RoRRMenuRooms = []int64{1, 2, 3, 4, 7}

// List of significant rooms in Risk of Rain Returns.
const (
	RoRRRoomLobby = 4
	RoRRRoomOutro = 8
)

// rorrBuild is the per-build data for Risk of Rain Returns. builds are
// identified by the build string embedded in the executable.
type rorrBuild struct {
	version     string
	buildOffset uint64
	buildString string
	room        []uint64
	inGameTime  []uint64
}

var rorrBuilds = []rorrBuild{
	{
		version:     "1.0.3",
		buildOffset: 0x1A7C700,
		buildString: "BUILD_ID: 234, BUILD_BRANCH: PATCH_1_0_3, VERSION_STRING: 1.0.3",
		room:        []uint64{0x2127B18},
		inGameTime:  []uint64{0x1F01C98, 0x10, 0x1CF0, 0x1B0, 0x48, 0x10, 0x0, 0x0, 0x48, 0x10, 0x50, 0x0},
	},
	{
		version:     "1.0.4",
		buildOffset: 0x1ABCB10,
		buildString: "BUILD_ID: 242, BUILD_BRANCH: the-mouse-aim-branch, VERSION_STRING: 1.0.4",
		room:        []uint64{0x2172888},
		inGameTime:  []uint64{0x01F5F300, 0x170, 0x10, 0x90, 0x0, 0x48, 0x10, 0x60, 0x0, 0x48, 0x10, 0x1B0, 0x0},
	},
	{
		// the version string of 1.0.5 was not updated by the developers
		version:     "1.0.5",
		buildOffset: 0x1ABC988,
		buildString: "BUILD_ID: 248, BUILD_BRANCH: master, VERSION_STRING: 1.0.4",
		room:        []uint64{0x21729D8},
		inGameTime:  []uint64{0x01F5F450, 0x120, 0x10, 0x90, 0x0, 0x48, 0x10, 0xd0, 0x0, 0x48, 0x10, 0x2e0, 0x0},
	},
}

func init() {
	for _, b := range rorrBuilds {
		register(&Descriptor{
			Variant:     RiskOfRainReturns,
			Build:       b.version,
			Module:      rorrModule,
			Signature:   fingerprint.BuildString(rorrModule, b.buildOffset, b.buildString),
			PointerSize: memview.Pointer64,
			Fields: map[string]Field{
				FieldRoom: {
					Path: memview.ModulePath(memview.Pointer64, rorrModule, b.room...),
					Type: memview.TypeInt32,
				},
				FieldInGameTime: {
					Path: memview.ModulePath(memview.Pointer64, rorrModule, b.inGameTime...),
					Type: memview.TypeFloat64,
				},
			},
		})
	}
}
