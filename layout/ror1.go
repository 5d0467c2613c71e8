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

// Risk of Rain was released under two different executable names. Only
// v1.2.2 is supported and it is identified by the presence of the module.
var ror1Modules = []string{"ROR_GMS_controller.exe", "Risk of Rain.exe"}

// GameMaker room IDs used by the splitter.
//
// 18 to 38 are the stages and their variants. 41 is the final stage (UES
// Contact Light).
var (
	RoR1MenuRooms  = []int64{0, 1, 2, 3, 4, 5, 9, 10, 11, 12, 13, 14, 15, 16, 17, 39}
	RoR1LobbyRooms = []int64{6, 7, 40}
)

// List of significant rooms in Risk of Rain.
const (
	RoR1RoomMainMenu   = 2
	RoR1RoomOnlineCoop = 40
	RoR1RoomFinalStage = 41
)

func init() {
	for _, m := range ror1Modules {
		register(&Descriptor{
			Variant:     RiskOfRain,
			Build:       "v1.2.2",
			Module:      m,
			Signature:   fingerprint.ModulePresent{Module: m},
			PointerSize: memview.Pointer32,
			Fields: map[string]Field{
				FieldRoom: {
					Path: memview.ModulePath(memview.Pointer32, m, 0x2BED7A8),
					Type: memview.TypeInt32,
				},
				FieldRunEndFlag: {
					Path: memview.ModulePath(memview.Pointer32, m, 0x2BEB5E0, 0x0, 0x548, 0xC, 0xB4),
					Type: memview.TypeInt32,
				},
				FieldInGameTime: {
					Path: memview.ModulePath(memview.Pointer32, m, 0x02BEB5E0, 0x0, 0x28, 0xC, 0xBC, 0x8, 0x0, 0x720, 0x8, 0x1EC0),
					Type: memview.TypeFloat64,
				},
			},
		})
	}
}
