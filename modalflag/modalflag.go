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

package modalflag

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"
)

const modeSeparator = "/"

type subMode struct {
	name  string
	usage string
}

// Modes is the command line parser. The zero value is usable once NewArgs()
// has been called.
type Modes struct {
	// where to print help messages. defaults to os.Stdout
	Output io.Writer

	// whether Parse() has been called since the last NewMode()
	parsed bool

	// a new flagset is created on every call to NewArgs() and NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// the first remaining argument of the most recent Parse() selected the
	// sub-mode
	modeArg bool

	// sub-modes for the next call to Parse()
	subModes []subMode

	// the sub-modes selected by every call to Parse() so far. never reset
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every selected mode, separated by a forward slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode clears the sub-modes and flags ready for the next call to Parse().
func (md *Modes) NewMode() {
	md.subModes = nil
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""
	md.modeArg = false
	md.parsed = false
}

// AdditionalHelp is printed after the flag and sub-mode information.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called since the last NewMode().
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned by Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified
	// then Mode() should be checked
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Parse the arguments for the current mode.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	if md.Output == nil {
		md.Output = os.Stdout
	}

	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			hw.clear()
			return ParseHelp, nil
		}

		// unrecognised flags are left for the default sub-mode if there is
		// one
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0].name)
		return ParseContinue, nil
	}

	// flags consumed by this mode are not seen by the next mode
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		mode := md.subModes[0].name
		for _, m := range md.subModes {
			if m.name == arg {
				mode = arg
				md.argsIdx++
				md.modeArg = true
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse(). ie. arguments that aren't flags or a
// listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	args := md.flags.Args()
	if md.modeArg && len(args) > 0 {
		return args[1:]
	}
	return args
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
// Returns the empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// AddSubModes to list of sub-modes for next call to Parse(). The first
// sub-mode is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.subModes = append(md.subModes, subMode{name: strings.ToUpper(s)})
	}
}

// AddDefaultSubMode puts the sub-mode at the head of the list.
func (md *Modes) AddDefaultSubMode(defSubMode string) {
	md.subModes = append([]subMode{{name: strings.ToUpper(defSubMode)}}, md.subModes...)
}

// DescribeSubMode adds a one line description of an existing sub-mode to the
// help message.
func (md *Modes) DescribeSubMode(name string, usage string) {
	name = strings.ToUpper(name)
	for i := range md.subModes {
		if md.subModes[i].name == name {
			md.subModes[i].usage = usage
			return
		}
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddRepeated adds a string flag that can be specified more than once. Every
// value is kept in the order it appeared.
func (md *Modes) AddRepeated(name string, usage string) *Repeated {
	r := &Repeated{}
	md.flags.Var(r, name, usage)
	return r
}

// Visit calls fn for every flag that has been set, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}

// Repeated implements the flag.Value interface for flags that can be given
// more than once.
type Repeated struct {
	Values []string
}

func (r *Repeated) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Values, ",")
}

// Set implements the flag.Value interface.
func (r *Repeated) Set(s string) error {
	r.Values = append(r.Values, s)
	return nil
}
