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

package environment

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/settings"
)

// Label is used to name the environment
type Label string

// List of known labels.
const (
	// the main autosplitter. the only environment allowed to log
	MainLabel Label = ""

	// regression and test runs
	QuietLabel Label = "quiet"
)

// Sentinal error patterns.
const (
	InvalidConfig = "environment: %v"
	InvalidRate   = "environment: tick rate must be positive (%d)"
)

// Config is taken from the process environment.
type Config struct {
	// settings in the command line preferences format. applied by the CLI
	// before the -settings flag
	Settings string `env:"RORSPLIT_SETTINGS"`

	// number of ticks per second when replaying a transcript
	TickRate int `env:"RORSPLIT_TICK_RATE" envDefault:"60"`

	// echo the log to stderr as entries are made
	EchoLog bool `env:"RORSPLIT_ECHO_LOG"`

	// the platform used to interpret process names. the empty string means
	// the current platform
	OS string `env:"RORSPLIT_OS"`
}

// LoadConfig parses the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, curated.Errorf(InvalidConfig, err)
	}
	if cfg.TickRate <= 0 {
		return Config{}, curated.Errorf(InvalidRate, cfg.TickRate)
	}
	return cfg, nil
}

// TickInterval is the duration of a single tick at the configured rate.
func (cfg Config) TickInterval() time.Duration {
	if cfg.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(cfg.TickRate)
}

// Environment is used to provide context for an autosplitter.
type Environment struct {
	Label Label

	// the settings used by the autosplitter. the settings are updated from
	// the configuration supplied by the host on every tick
	Settings *settings.Settings

	Config Config
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The settings argument can be nil, in which case a new Settings instance
// will be created. The process environment is parsed to create the Config
// field.
func NewEnvironment(label Label, s *settings.Settings) (*Environment, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if s == nil {
		s = settings.NewSettings()
	}

	return &Environment{
		Label:    label,
		Settings: s,
		Config:   cfg,
	}, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Settings.Reset()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env.IsMain()
}

// IsMain returns true if the environment is intended for the main
// autosplitter
func (env *Environment) IsMain() bool {
	return env.Label == MainLabel
}

// IsLabel checks the environment label and returns true if it matches
func (env *Environment) IsLabel(label Label) bool {
	return env.Label == label
}
