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

package environment_test

import (
	"os"
	"testing"
	"time"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/settings"
	"github.com/jetsetilly/rorsplit/test"
)

// unset removes the variables from the environment for the duration of the
// test
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigDefaults(t *testing.T) {
	unset(t, "RORSPLIT_SETTINGS", "RORSPLIT_TICK_RATE", "RORSPLIT_ECHO_LOG", "RORSPLIT_OS")

	cfg, err := environment.LoadConfig()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.TickRate, 60)
	test.ExpectEquality(t, cfg.EchoLog, false)
	test.ExpectEquality(t, cfg.Settings, "")
	test.ExpectEquality(t, cfg.TickInterval(), time.Second/60)
}

func TestConfig(t *testing.T) {
	t.Setenv("RORSPLIT_SETTINGS", "ror2_stages::true")
	t.Setenv("RORSPLIT_TICK_RATE", "120")
	t.Setenv("RORSPLIT_ECHO_LOG", "true")

	cfg, err := environment.LoadConfig()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.TickRate, 120)
	test.ExpectEquality(t, cfg.EchoLog, true)
	test.ExpectEquality(t, cfg.Settings, "ror2_stages::true")
}

func TestConfigInvalid(t *testing.T) {
	unset(t, "RORSPLIT_SETTINGS", "RORSPLIT_ECHO_LOG", "RORSPLIT_OS")
	t.Setenv("RORSPLIT_TICK_RATE", "fast")
	_, err := environment.LoadConfig()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, environment.InvalidConfig))

	t.Setenv("RORSPLIT_TICK_RATE", "0")
	_, err = environment.LoadConfig()
	test.ExpectSuccess(t, curated.Is(err, environment.InvalidRate))
}

func TestEnvironment(t *testing.T) {
	unset(t, "RORSPLIT_SETTINGS", "RORSPLIT_TICK_RATE", "RORSPLIT_ECHO_LOG", "RORSPLIT_OS")

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, env.Settings != nil)
	test.ExpectSuccess(t, env.AllowLogging())
	test.ExpectSuccess(t, env.IsMain())

	quiet, err := environment.NewEnvironment(environment.QuietLabel, nil)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, quiet.AllowLogging())
	test.ExpectSuccess(t, quiet.IsLabel(environment.QuietLabel))

	test.DemandSuccess(t, quiet.Settings.Set(settings.RoR2Death, true))
	quiet.Normalise()
	test.ExpectFailure(t, quiet.Settings.Enabled(settings.RoR2Death))
}
