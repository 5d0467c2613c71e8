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

package transcript

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/hostsim"
)

// Sentinal error patterns.
const (
	PlaybackError     = "transcript: %s line %d: %v"
	ExpectationFailed = "transcript: %s line %d: expected %s (got %s)"
	UnknownLabel      = "unknown label (%s)"
)

// Updater is the interface to the autosplitter used by the Player. The
// autosplitter.AutoSplitter type implements this interface.
type Updater interface {
	Update(host.Tick)
}

// Player plays a transcript one block at a time.
type Player struct {
	tr *Transcript

	// the simulated timer. commands sent to the timer by the Updater are
	// recorded here
	Timer *hostsim.Timer

	proc     *hostsim.Process
	attached bool
	labels   map[string]uint64
	settings map[string]bool

	now      time.Time
	interval time.Duration

	next int
	tick int
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The interval is the duration of each tick.
func NewPlayer(tr *Transcript, interval time.Duration) (*Player, error) {
	pl := &Player{
		tr:       tr,
		Timer:    hostsim.NewTimer(tr.Segments),
		settings: map[string]bool{},
		now:      time.Date(2023, 11, 7, 0, 0, 0, 0, time.UTC),
		interval: interval,
	}

	if err := pl.create(); err != nil {
		return nil, err
	}

	return pl, nil
}

// create a new process and perform the setup directives
func (pl *Player) create() error {
	pl.proc = hostsim.NewProcess(pl.tr.Process)
	pl.attached = true
	pl.labels = make(map[string]uint64)
	for _, o := range pl.tr.setup {
		if err := o.perform(pl); err != nil {
			return curated.Errorf(PlaybackError, pl.tr.Name, 0, err)
		}
	}
	return nil
}

// Process returns the simulated process. The process exists even when it is
// detached.
func (pl *Player) Process() *hostsim.Process {
	return pl.proc
}

// Labels returns a copy of the chain labels and their addresses.
func (pl *Player) Labels() map[string]uint64 {
	return maps.Clone(pl.labels)
}

// Done returns true when every block has been played.
func (pl *Player) Done() bool {
	return pl.next >= len(pl.tr.Blocks)
}

// Tick returns the number of ticks played so far.
func (pl *Player) Tick() int {
	return pl.tick
}

func (pl *Player) String() string {
	return fmt.Sprintf("%s: tick %d/%d", pl.tr.Name, pl.tick, pl.tr.Ticks())
}

func (pl *Player) resolve(a Address) (uint64, error) {
	if a.Label == "" {
		return a.Absolute, nil
	}
	v, ok := pl.labels[a.Label]
	if !ok {
		return 0, curated.Errorf(UnknownLabel, a.Label)
	}
	return v, nil
}

// Step plays the next block. The commands sent to the timer during the block
// are returned. An error is returned if an expectation of the block is not
// met or if a directive could not be performed.
func (pl *Player) Step(u Updater) ([]hostsim.Command, error) {
	if pl.Done() {
		return nil, nil
	}

	b := pl.tr.Blocks[pl.next]
	pl.next++

	for _, o := range b.ops {
		if err := o.perform(pl); err != nil {
			return nil, curated.Errorf(PlaybackError, pl.tr.Name, b.Line, err)
		}
	}

	from := len(pl.Timer.Commands())

	for range b.Count {
		pl.now = pl.now.Add(pl.interval)
		pl.tick++

		tick := host.Tick{
			Now:      pl.now,
			Interval: pl.interval,
			Settings: pl.settings,
		}
		if pl.attached {
			tick.Process = pl.proc
		}

		u.Update(tick)
	}

	cmds := append([]hostsim.Command(nil), pl.Timer.Commands()[from:]...)

	for _, e := range b.expect {
		if err := e.check(pl, cmds); err != nil {
			return cmds, err
		}
	}

	return cmds, nil
}

// Play every remaining block. Stops at the first error.
func (pl *Player) Play(u Updater) error {
	for !pl.Done() {
		if _, err := pl.Step(u); err != nil {
			return err
		}
	}
	return nil
}

// op is a directive that changes the process or the host
type op interface {
	perform(pl *Player) error
}

type opModule struct {
	name string
	base uint64
	size uint64
}

func (o opModule) perform(pl *Player) error {
	pl.proc.AddModule(o.name, o.base, o.size)
	return nil
}

type opUnmodule struct {
	name string
}

func (o opUnmodule) perform(pl *Player) error {
	pl.proc.RemoveModule(o.name)
	return nil
}

type opImage struct {
	image string
}

func (o opImage) perform(pl *Player) error {
	pl.proc.AddImage(o.image)
	return nil
}

type opClass struct {
	image string
	class string
	table uint64
}

func (o opClass) perform(pl *Player) error {
	pl.proc.AddClass(o.image, o.class, o.table)
	return nil
}

type opField struct {
	image  string
	class  string
	field  string
	offset uint64
}

func (o opField) perform(pl *Player) error {
	pl.proc.AddField(o.image, o.class, o.field, o.offset)
	return nil
}

type opChain struct {
	label   string
	width   int
	base    uint64
	offsets []uint64
}

func (o opChain) perform(pl *Player) error {
	pl.labels[o.label] = pl.proc.PointerChain(o.width, o.base, o.offsets...)
	return nil
}

type opPoke struct {
	address Address
	data    []byte
}

func (o opPoke) perform(pl *Player) error {
	a, err := pl.resolve(o.address)
	if err != nil {
		return err
	}
	pl.proc.Write(a, o.data)
	return nil
}

type opUnmap struct {
	address Address
	size    uint64
}

func (o opUnmap) perform(pl *Player) error {
	a, err := pl.resolve(o.address)
	if err != nil {
		return err
	}
	pl.proc.Unmap(a, o.size)
	return nil
}

type opScene struct {
	path string
}

func (o opScene) perform(pl *Player) error {
	pl.proc.SetScene(o.path)
	return nil
}

// a nil map means the configuration is missing
type opSettings struct {
	m map[string]bool
}

func (o opSettings) perform(pl *Player) error {
	pl.settings = maps.Clone(o.m)
	return nil
}

type opAttach struct {
	attach bool
}

func (o opAttach) perform(pl *Player) error {
	pl.attached = o.attach
	return nil
}

type opRestart struct{}

func (o opRestart) perform(pl *Player) error {
	return pl.create()
}

type opTimer struct {
	state host.TimerState
}

func (o opTimer) perform(pl *Player) error {
	pl.Timer.ForceState(o.state)
	return nil
}

// expectation is checked at the end of a block
type expectation interface {
	check(pl *Player, cmds []hostsim.Command) error
}

type expectCommands struct {
	line  int
	kinds []hostsim.CommandKind
}

func kindList(kinds []hostsim.CommandKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = k.String()
	}
	return strings.Join(s, " ")
}

func (e expectCommands) check(pl *Player, cmds []hostsim.Command) error {
	got := make([]hostsim.CommandKind, len(cmds))
	for i, c := range cmds {
		got[i] = c.Kind
	}
	want, have := kindList(e.kinds), kindList(got)
	if want != have {
		return curated.Errorf(ExpectationFailed, pl.tr.Name, e.line, want, have)
	}
	return nil
}

type expectStatus struct {
	line   int
	status string
}

func (e expectStatus) check(pl *Player, _ []hostsim.Command) error {
	if pl.Timer.Status() != e.status {
		return curated.Errorf(ExpectationFailed, pl.tr.Name, e.line, fmt.Sprintf("status %q", e.status), fmt.Sprintf("%q", pl.Timer.Status()))
	}
	return nil
}

type expectGameTime struct {
	line     int
	gameTime time.Duration
}

func (e expectGameTime) check(pl *Player, _ []hostsim.Command) error {
	if pl.Timer.GameTime() != e.gameTime {
		return curated.Errorf(ExpectationFailed, pl.tr.Name, e.line, fmt.Sprintf("game time %s", e.gameTime), pl.Timer.GameTime())
	}
	return nil
}

type expectPaused struct {
	line   int
	paused bool
}

func (e expectPaused) check(pl *Player, _ []hostsim.Command) error {
	if pl.Timer.GameTimePaused() != e.paused {
		return curated.Errorf(ExpectationFailed, pl.tr.Name, e.line, fmt.Sprintf("paused %v", e.paused), pl.Timer.GameTimePaused())
	}
	return nil
}
