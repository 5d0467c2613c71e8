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

package snapshot_test

import (
	"testing"

	"github.com/jetsetilly/rorsplit/hostsim"
	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/memview"
	"github.com/jetsetilly/rorsplit/snapshot"
	"github.com/jetsetilly/rorsplit/test"
)

func TestExtractPartial(t *testing.T) {
	desc := layout.Builds(layout.RiskOfRain)[0]

	p := hostsim.NewProcess(desc.Module)
	p.AddModule(desc.Module, 0x400000, 0x3000000)

	// room is a static value in the module. the other fields are behind
	// pointers that have not been set up
	p.WriteInt32(0x400000+0x2BED7A8, 6)

	snap := snapshot.Extract(10, desc, memview.NewView(p))
	test.ExpectEquality(t, snap.Tick, uint64(10))

	room, ok := snap.Int(layout.FieldRoom)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, room, int64(6))

	_, ok = snap.Int(layout.FieldRunEndFlag)
	test.ExpectFailure(t, ok)
	_, ok = snap.Float(layout.FieldInGameTime)
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, snap.Has(layout.FieldRoom))
	test.ExpectFailure(t, snap.Has(layout.FieldRoom, layout.FieldRunEndFlag))
	test.ExpectEquality(t, snap.String(), "tick 10: room=6")
}

func TestExtractFallback(t *testing.T) {
	desc := layout.Builds(layout.RiskOfRain2)[0]

	p := hostsim.NewProcess(desc.Module)
	p.AddModule(desc.Module, 0x140000000, 0x100000)
	p.AddImage("RoR2")
	p.AddClass("RoR2", "SceneCatalog", 0x50000)
	p.AddField("RoR2", "SceneCatalog", "<mostRecentSceneDef>k__BackingField", 0x8)
	p.AddClass("RoR2", "SceneDef", 0x58000)
	p.AddField("RoR2", "SceneDef", "cachedName", 0x18)
	p.WritePointer(0x50008, 8, 0x60000)
	p.WritePointer(0x60018, 8, 0x70000)
	p.WriteUTF16(0x70014, "blackbeach")

	// the scene reported by the host is preferred
	p.SetScene("Assets/RoR2/Scenes/golemplains.unity")
	snap := snapshot.Extract(1, desc, memview.NewView(p))
	scene, ok := snap.Text(layout.FieldScene)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, scene, "golemplains")

	// the fallback is used when there is no scene
	p.SetScene("")
	snap = snapshot.Extract(2, desc, memview.NewView(p))
	scene, ok = snap.Text(layout.FieldScene)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, scene, "blackbeach")

	// neither is available
	p.RemoveClass("RoR2", "SceneCatalog")
	snap = snapshot.Extract(3, desc, memview.NewView(p))
	_, ok = snap.Text(layout.FieldScene)
	test.ExpectFailure(t, ok)
}

func TestExtractNoDescriptor(t *testing.T) {
	snap := snapshot.Extract(1, nil, memview.NewView(nil))
	test.ExpectEquality(t, len(snap.Fields), 0)
}

func TestAccessors(t *testing.T) {
	snap := snapshot.NewSnapshot(0).
		Set(layout.FieldFade, memview.FloatValue(memview.Float32, 0.5)).
		Set(layout.FieldResults, memview.BoolValue(true)).
		Set(layout.FieldScene, memview.TextValue("lobby"))

	f, ok := snap.Float(layout.FieldFade)
	test.ExpectSuccess(t, ok)
	test.ExpectApproximate(t, f, 0.5, 0.0001)

	b, ok := snap.Bool(layout.FieldResults)
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, b)

	s, ok := snap.Text(layout.FieldScene)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "lobby")

	// wrong kinds are reported as absent rather than coerced
	_, ok = snap.Int(layout.FieldScene)
	test.ExpectFailure(t, ok)
	_, ok = snap.Bool(layout.FieldFade)
	test.ExpectFailure(t, ok)

	// a nil snapshot has no fields
	var nilSnap *snapshot.Snapshot
	_, ok = nilSnap.Value(layout.FieldScene)
	test.ExpectFailure(t, ok)
}
