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
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/hostsim"
	"github.com/jetsetilly/rorsplit/settings"
)

// Transcript is a parsed transcript file.
type Transcript struct {
	// the name of the transcript. usually the filename
	Name string

	// name of the simulated process
	Process string

	// number of splits that end the run on the simulated timer
	Segments int

	// directives performed when the process is created
	setup []op

	Blocks []*Block
}

// Block is a tick block of a transcript.
type Block struct {
	// line in the transcript of the tick directive
	Line int

	// number of ticks in the block
	Count int

	ops    []op
	expect []expectation
}

// Ticks returns the total number of ticks in the transcript.
func (tr *Transcript) Ticks() int {
	var n int
	for _, b := range tr.Blocks {
		n += b.Count
	}
	return n
}

// the parser state
type parser struct {
	tr    *Transcript
	block *Block
	line  int
}

func (ps *parser) errorf(err error) error {
	return curated.Errorf(SyntaxError, ps.tr.Name, ps.line, err)
}

func args(toks []string, n int, desc string) error {
	if len(toks)-1 != n {
		return curated.Errorf(WrongArgs, toks[0], desc)
	}
	return nil
}

// Parse a transcript. The name is used in error messages.
func Parse(r io.Reader, name string) (*Transcript, error) {
	ps := &parser{
		tr: &Transcript{Name: name},
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ps.line++

		toks, err := tokenise(scanner.Text())
		if err != nil {
			return nil, ps.errorf(err)
		}
		if len(toks) == 0 {
			continue
		}

		if err := ps.directive(toks); err != nil {
			return nil, ps.errorf(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("transcript: %s: %v", name, err)
	}

	if ps.tr.Process == "" {
		return nil, curated.Errorf(NoProcess, name)
	}
	if len(ps.tr.Blocks) == 0 {
		return nil, curated.Errorf(NoTicks, name)
	}

	return ps.tr, nil
}

// add an operation to the current block or to the setup
func (ps *parser) add(o op) {
	if ps.block == nil {
		ps.tr.setup = append(ps.tr.setup, o)
	} else {
		ps.block.ops = append(ps.block.ops, o)
	}
}

func (ps *parser) directive(toks []string) error {
	switch toks[0] {
	case "process", "segments":
		if ps.block != nil {
			return curated.Errorf("%s must appear before the first tick", toks[0])
		}
		if err := args(toks, 1, "one argument"); err != nil {
			return err
		}
		if toks[0] == "process" {
			ps.tr.Process = toks[1]
			return nil
		}
		n, err := strconv.Atoi(toks[1])
		if err != nil || n < 0 {
			return curated.Errorf("segments must be zero or more (%s)", toks[1])
		}
		ps.tr.Segments = n
		return nil

	case "tick":
		b := &Block{Line: ps.line, Count: 1}
		if len(toks) > 2 {
			return curated.Errorf(WrongArgs, toks[0], "zero or one argument")
		}
		if len(toks) == 2 {
			n, err := strconv.Atoi(toks[1])
			if err != nil || n < 1 {
				return curated.Errorf("tick count must be positive (%s)", toks[1])
			}
			b.Count = n
		}
		ps.tr.Blocks = append(ps.tr.Blocks, b)
		ps.block = b
		return nil

	case "module":
		if err := args(toks, 3, "name, base and size"); err != nil {
			return err
		}
		base, err := parseUint(toks[2])
		if err != nil {
			return err
		}
		size, err := parseUint(toks[3])
		if err != nil {
			return err
		}
		ps.add(opModule{name: toks[1], base: base, size: size})
		return nil

	case "unmodule":
		if err := args(toks, 1, "name"); err != nil {
			return err
		}
		ps.add(opUnmodule{name: toks[1]})
		return nil

	case "image":
		if err := args(toks, 1, "name"); err != nil {
			return err
		}
		ps.add(opImage{image: toks[1]})
		return nil

	case "class":
		if err := args(toks, 3, "image, class and static table address"); err != nil {
			return err
		}
		table, err := parseUint(toks[3])
		if err != nil {
			return err
		}
		ps.add(opClass{image: toks[1], class: toks[2], table: table})
		return nil

	case "field":
		if err := args(toks, 4, "image, class, field and offset"); err != nil {
			return err
		}
		offset, err := parseUint(toks[4])
		if err != nil {
			return err
		}
		ps.add(opField{image: toks[1], class: toks[2], field: toks[3], offset: offset})
		return nil

	case "chain":
		if len(toks) < 5 {
			return curated.Errorf(WrongArgs, toks[0], "label, pointer size, base and at least one offset")
		}
		o := opChain{label: toks[1]}
		switch toks[2] {
		case "32":
			o.width = 4
		case "64":
			o.width = 8
		default:
			return curated.Errorf("pointer size must be 32 or 64 (%s)", toks[2])
		}
		var err error
		o.base, err = parseUint(toks[3])
		if err != nil {
			return err
		}
		for _, t := range toks[4:] {
			v, err := parseUint(t)
			if err != nil {
				return err
			}
			o.offsets = append(o.offsets, v)
		}
		ps.add(o)
		return nil

	case "poke":
		if err := args(toks, 3, "type, address and value"); err != nil {
			return err
		}
		addr, err := parseAddress(toks[2])
		if err != nil {
			return err
		}
		data, err := encode(toks[1], toks[3])
		if err != nil {
			return err
		}
		ps.add(opPoke{address: addr, data: data})
		return nil

	case "unmap":
		if err := args(toks, 2, "address and size"); err != nil {
			return err
		}
		addr, err := parseAddress(toks[1])
		if err != nil {
			return err
		}
		size, err := parseUint(toks[2])
		if err != nil {
			return err
		}
		ps.add(opUnmap{address: addr, size: size})
		return nil

	case "scene":
		if len(toks) > 2 {
			return curated.Errorf(WrongArgs, toks[0], "zero or one argument")
		}
		var path string
		if len(toks) == 2 {
			path = toks[1]
		}
		ps.add(opScene{path: path})
		return nil

	case "settings":
		if err := args(toks, 1, "a settings string or missing"); err != nil {
			return err
		}
		if toks[1] == "missing" {
			ps.add(opSettings{})
			return nil
		}
		s := settings.NewSettings()
		if err := s.Parse(toks[1]); err != nil {
			return err
		}
		ps.add(opSettings{m: s.Map()})
		return nil
	}

	// the remaining directives are only valid in a tick block
	if ps.block == nil {
		switch toks[0] {
		case "detach", "attach", "restart", "timer", "expect":
			return curated.Errorf("%s must appear after a tick", toks[0])
		}
		return curated.Errorf(UnknownDirective, toks[0])
	}

	switch toks[0] {
	case "detach", "attach", "restart":
		if err := args(toks, 0, "no arguments"); err != nil {
			return err
		}
		switch toks[0] {
		case "detach":
			ps.add(opAttach{attach: false})
		case "attach":
			ps.add(opAttach{attach: true})
		case "restart":
			ps.add(opRestart{})
		}
		return nil

	case "timer":
		if err := args(toks, 1, "reset, start or end"); err != nil {
			return err
		}
		var st host.TimerState
		switch toks[1] {
		case "reset":
			st = host.TimerNotRunning
		case "start":
			st = host.TimerRunning
		case "end":
			st = host.TimerEnded
		default:
			return curated.Errorf("unknown timer operation (%s)", toks[1])
		}
		ps.add(opTimer{state: st})
		return nil

	case "expect":
		e, err := parseExpectation(toks, ps.line)
		if err != nil {
			return err
		}
		ps.block.expect = append(ps.block.expect, e)
		return nil
	}

	return curated.Errorf(UnknownDirective, toks[0])
}

var utf16 = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encode the value of a poke directive
func encode(kind string, value string) ([]byte, error) {
	switch kind {
	case "i32":
		v, err := parseInt(value, 32)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(int32(v))), nil
	case "u32", "ptr32":
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, curated.Errorf("not a 32 bit value (%s)", value)
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(v)), nil
	case "u64", "ptr64":
		v, err := parseUint(value)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint64(nil, v), nil
	case "f32":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, curated.Errorf("not a float (%s)", value)
		}
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v))), nil
	case "f64":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, curated.Errorf("not a float (%s)", value)
		}
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)), nil
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, curated.Errorf("not a bool (%s)", value)
		}
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case "str":
		return append([]byte(value), 0), nil
	case "utf16":
		b, err := utf16.NewEncoder().Bytes([]byte(value))
		if err != nil {
			return nil, curated.Errorf("not encodable as utf16 (%s)", value)
		}
		return append(b, 0, 0), nil
	}
	return nil, curated.Errorf("unknown poke type (%s)", kind)
}

var commandKinds = []hostsim.CommandKind{
	hostsim.CmdStart,
	hostsim.CmdSplit,
	hostsim.CmdReset,
	hostsim.CmdPauseGameTime,
	hostsim.CmdResumeGameTime,
	hostsim.CmdSetGameTime,
}

func parseCommandKind(s string) (hostsim.CommandKind, error) {
	i := slices.IndexFunc(commandKinds, func(k hostsim.CommandKind) bool {
		return k.String() == s
	})
	if i == -1 {
		return 0, curated.Errorf("unknown command (%s)", s)
	}
	return commandKinds[i], nil
}

func parseExpectation(toks []string, line int) (expectation, error) {
	if len(toks) < 2 {
		return nil, curated.Errorf(WrongArgs, toks[0], "commands, status, gametime or paused")
	}

	switch toks[1] {
	case "commands":
		if len(toks) < 3 {
			return nil, curated.Errorf(WrongArgs, "expect commands", "a list of commands or none")
		}
		e := expectCommands{line: line}
		if len(toks) == 3 && toks[2] == "none" {
			return e, nil
		}
		for _, t := range toks[2:] {
			k, err := parseCommandKind(strings.TrimSuffix(t, ","))
			if err != nil {
				return nil, err
			}
			e.kinds = append(e.kinds, k)
		}
		return e, nil

	case "status":
		if err := args(toks[1:], 1, "a string"); err != nil {
			return nil, err
		}
		return expectStatus{line: line, status: toks[2]}, nil

	case "gametime":
		if err := args(toks[1:], 1, "a duration"); err != nil {
			return nil, err
		}
		d, err := time.ParseDuration(toks[2])
		if err != nil {
			return nil, curated.Errorf("not a duration (%s)", toks[2])
		}
		return expectGameTime{line: line, gameTime: d}, nil

	case "paused":
		if err := args(toks[1:], 1, "true or false"); err != nil {
			return nil, err
		}
		v, err := strconv.ParseBool(toks[2])
		if err != nil {
			return nil, curated.Errorf("not a bool (%s)", toks[2])
		}
		return expectPaused{line: line, paused: v}, nil
	}

	return nil, curated.Errorf("unknown expectation (%s)", toks[1])
}
