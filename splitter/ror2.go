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
	"strings"

	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/settings"
)

// Risk of Rain 2. The fade value is available for the lifetime of the
// process and is always required. The scene is also required to start a run.
//
// The scene is unavailable during scene transitions. When it is absent the
// last seen scene is used.
var ror2 = table{
	required: func(p Phase) []string {
		switch p {
		case NotRunning, InMenu, Completed:
			return []string{layout.FieldFade, layout.FieldScene}
		}
		return []string{layout.FieldFade}
	},
	conditions: ror2Conditions,
}

// hidden realms and the split point that enables a split when leaving them
var ror2HiddenRealms = map[string]string{
	"bazaar":        settings.Bazaar,
	"arena":         settings.Arena,
	"goldshores":    settings.GoldShores,
	"artifactworld": settings.ArtifactWorld,
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func ror2Conditions(t tick) conditions {
	var c conditions

	scene := t.cur.Scene
	hasScene := t.cur.HasScene
	sceneChanged := t.has(layout.FieldScene) && t.prev.HasScene && t.prev.Scene != scene

	fade := t.cur.Fade
	oldFade := t.prev.Fade
	hasOldFade := t.prev.HasFade

	c.menu = hasScene && slices.Contains(layout.RoR2ResetScenes, scene)

	// start on the fade in of a first stage
	if hasScene && hasOldFade && hasAnyPrefix(scene, layout.RoR2FirstStages) {
		c.start = fade < 1.0 && oldFade >= 1.0
	}

	c.reset = c.menu

	// split on stage count increase. the stage count also increases after
	// the final stage, so there is no split on the moon to avoid a double
	// split with the completion
	stageSplit := false
	if t.points.Enabled(settings.RoR2Stages) && t.has(layout.FieldStageCount) && t.prev.HasStageCount {
		if t.cur.StageCount >= 1 && t.cur.StageCount > t.prev.StageCount {
			stageSplit = true
			c.split = !(hasScene && strings.HasPrefix(scene, layout.RoR2SceneMoon))
		}
	}

	// split when leaving a hidden realm
	if !stageSplit && sceneChanged {
		if id, ok := ror2HiddenRealms[t.prev.Scene]; ok {
			c.split = t.points.Enabled(id)
		}
	}

	// completion on the outro or on the end report of an alternative ending
	if sceneChanged && scene == layout.RoR2SceneOutro {
		c.completed = true
	}
	if t.has(layout.FieldResults) && t.prev.HasResults && !t.prev.Results && t.cur.Results {
		if hasScene && slices.Contains(layout.RoR2EndingScenes, scene) {
			c.completed = true
		} else if !c.completed {
			c.dead = true
			c.deathReset = t.points.Enabled(settings.RoR2Death)
		}
	}

	// loading when the fade is increasing. not loading when the fade is
	// decreasing or is zero. otherwise the loading state is undetermined
	if hasOldFade {
		switch {
		case fade > oldFade:
			c.loading = loadingYes
		case (fade < oldFade && fade > 0) || fade == 0:
			c.loading = loadingNo
		}
	}

	return c
}
