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

const ror2Module = "Risk of Rain 2.exe"

// scene names are taken from the path of the scene and are never longer than
// this. an over long name is treated as garbage
const ror2SceneLen = 32

// Scene names used by the Risk of Rain 2 splitter.
var (
	// a run starts on one of these scenes
	RoR2FirstStages = []string{"golemplains", "blackbeach", "snowyforest", "lakes", "village"}

	// a run is reset on one of these scenes
	RoR2ResetScenes = []string{"lobby", "title", "crystalworld", "eclipseworld", "infinitetowerworld"}

	// a run is complete when the game end report is shown on one of these
	// scenes
	RoR2EndingScenes = []string{"limbo", "mysteryspace", "voidraid"}
)

// List of significant scenes in Risk of Rain 2.
const (
	RoR2SceneOutro = "outro"
	RoR2SceneMoon  = "moon"
)

// ror2Fields returns the fields for the game code in the named managed image.
// From Survivors of the Void onwards the game code is in the "RoR2" image.
// Before that it was in the default image.
func ror2Fields(image string) map[string]Field {
	return map[string]Field{
		// value goes from 0.0 to 2.0 just before and during loads, then back
		// to 0.0
		FieldFade: {
			Path: memview.ManagedPath(memview.Pointer64, image, "FadeToBlackManager",
				memview.Member{"alpha"},
			),
			Type: memview.TypeFloat32,
		},

		// incremented on every regular stage but not on hidden realms. only
		// valid during a run
		FieldStageCount: {
			Path: memview.ManagedPath(memview.Pointer64, image, "Run",
				memview.Member{"<instance>k__BackingField"},
				memview.Member{"stageClearCount"},
			),
			Type: memview.TypeInt32,
		},

		// invalid until the run ends, including on death. the field was
		// renamed after Seekers of the Storm
		FieldResults: {
			Path: memview.ManagedPath(memview.Pointer64, image, "GameOverController",
				memview.Member{"<instance>k__BackingField"},
				memview.Member{"<shouldDisplayGameEndReportPanels>k__BackingField", "_shouldDisplayGameEndReportPanels"},
			),
			Type: memview.TypeBool,
		},

		// the scene reported by the host. the cached name of the most
		// recent SceneDef is used when the host cannot report a scene
		FieldScene: {
			Path:     memview.ScenePath(),
			Type:     memview.TypeText(ror2SceneLen, memview.UTF8),
			Fallback: &Field{
				Path: memview.ManagedString(memview.ManagedPath(memview.Pointer64, image, "SceneCatalog",
					memview.Member{"<mostRecentSceneDef>k__BackingField"},
					memview.Member{"SceneDef::cachedName"},
				)),
				Type: memview.TypeText(ror2SceneLen, memview.UTF16),
			},
		},
	}
}

func init() {
	register(&Descriptor{
		Variant: RiskOfRain2,
		Build:   "SotV+",
		Module:  ror2Module,
		Signature: fingerprint.All{
			fingerprint.ModulePresent{Module: ror2Module},
			fingerprint.SceneLoaded{},
			fingerprint.ManagedImage{Image: "RoR2"},
		},
		PointerSize: memview.Pointer64,
		Fields:      ror2Fields("RoR2"),
	})

	register(&Descriptor{
		Variant: RiskOfRain2,
		Build:   "pre-SotV",
		Module:  ror2Module,
		Signature: fingerprint.All{
			fingerprint.ModulePresent{Module: ror2Module},
			fingerprint.SceneLoaded{},
			fingerprint.ManagedImage{Image: ""},
			fingerprint.Not{Signature: fingerprint.ManagedImage{Image: "RoR2"}},
		},
		PointerSize: memview.Pointer64,
		Fields:      ror2Fields(""),
	})
}
