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

package main

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/rorsplit/autosplitter"
	"github.com/jetsetilly/rorsplit/easyterm"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/host"
	"github.com/jetsetilly/rorsplit/hostsim"
	"github.com/jetsetilly/rorsplit/layout"
	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/modalflag"
	"github.com/jetsetilly/rorsplit/notifications"
	"github.com/jetsetilly/rorsplit/paths"
	"github.com/jetsetilly/rorsplit/performance"
	"github.com/jetsetilly/rorsplit/regression"
	"github.com/jetsetilly/rorsplit/settings"
	"github.com/jetsetilly/rorsplit/statsview"
	"github.com/jetsetilly/rorsplit/traceloader"
	"github.com/jetsetilly/rorsplit/transcript"
	"github.com/jetsetilly/rorsplit/version"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch returns the value to use with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("REPLAY", "REGRESS", "PERFORMANCE", "BUILDS", "SETTINGS", "VERSION")
	md.DescribeSubMode("REPLAY", "play a transcript through the autosplitter")
	md.DescribeSubMode("REGRESS", "check the expectations of one or more transcripts")
	md.DescribeSubMode("PERFORMANCE", "measure the number of ticks processed per second")
	md.DescribeSubMode("BUILDS", "list the supported builds of each title")
	md.DescribeSubMode("SETTINGS", "list the settings and their default values")
	md.DescribeSubMode("VERSION", "print version information")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "REPLAY":
		err = replay(md)

	case "REGRESS":
		err = regress(md)

	case "PERFORMANCE":
		err = perform(md)

	case "BUILDS":
		err = builds(md)

	case "SETTINGS":
		err = listSettings(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// printNotices writes notifications to the output
type printNotices struct {
	output io.Writer
}

func (pn printNotices) Notify(notice notifications.Notice, detail string) error {
	if detail == "" {
		_, err := fmt.Fprintf(pn.output, "  %s\n", notice)
		return err
	}
	_, err := fmt.Fprintf(pn.output, "  %s: %s\n", notice, detail)
	return err
}

// overrides replaces settings supplied by the transcript with those supplied
// on the command line
type overrides struct {
	as       *autosplitter.AutoSplitter
	settings map[string]bool
}

func (o overrides) Update(tick host.Tick) {
	if len(o.settings) > 0 {
		m := maps.Clone(tick.Settings)
		if m == nil {
			m = make(map[string]bool)
		}
		maps.Copy(m, o.settings)
		tick.Settings = m
	}
	o.as.Update(tick)
}

func commandList(cmds []hostsim.Command) string {
	if len(cmds) == 0 {
		return "-"
	}
	s := make([]string, len(cmds))
	for i, c := range cmds {
		s[i] = c.String()
	}
	return strings.Join(s, ", ")
}

func replay(md *modalflag.Modes) error {
	md.NewMode()

	step := md.AddBool("step", false, "wait for a key press after every tick block")
	prefs := md.AddRepeated("settings", "override settings (eg. \"ror2_death::true; bazaar::true\")")
	viz := md.AddString("memviz", "", "write a graphviz description of the final state to file (or to a new file in a directory)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	echo := md.AddBool("log", false, "echo log to stderr")
	rate := md.AddInt("rate", 0, "ticks per second (overrides RORSPLIT_TICK_RATE)")

	md.AdditionalHelp(fmt.Sprintf("keys in step mode: space to step, '%c' to continue, '%c' to quit", easyterm.KeyContinue, easyterm.KeyQuit))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("transcript required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	if err != nil {
		return err
	}

	if *rate > 0 {
		env.Config.TickRate = *rate
	} else if *rate < 0 {
		return fmt.Errorf("tick rate must be positive (%d)", *rate)
	}

	// replays always treat the process names of the transcript as windows
	// process names unless the environment says otherwise
	if env.Config.OS == "" {
		env.Config.OS = "windows"
	}

	if *echo || env.Config.EchoLog {
		logger.SetEcho(os.Stderr)
		defer logger.SetEcho(nil)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	// the environment settings are applied before the command line settings
	override, err := settings.Overrides(env.Config.Settings)
	if err != nil {
		return err
	}
	for _, s := range prefs.Values {
		o, err := settings.Overrides(s)
		if err != nil {
			return err
		}
		maps.Copy(override, o)
	}

	tl := traceloader.NewLoader(md.GetArg(0))
	if err := tl.Load(); err != nil {
		return err
	}

	tr, err := transcript.Parse(bytes.NewReader(tl.Data), tl.ShortName())
	if err != nil {
		return err
	}

	pl, err := transcript.NewPlayer(tr, env.Config.TickInterval())
	if err != nil {
		return err
	}

	as, err := autosplitter.NewAutoSplitter(env, pl.Timer, printNotices{output: md.Output})
	if err != nil {
		return err
	}

	u := overrides{as: as, settings: override}

	var term *easyterm.Terminal
	if *step {
		term = &easyterm.Terminal{}
		if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
			return err
		}
		defer term.CleanUp()
		term.CBreakMode()
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	fmt.Fprintf(md.Output, "replaying %s (sha1 %s)\n", tr.Name, tl.Hash)

	for !pl.Done() {
		select {
		case <-intChan:
			fmt.Fprintln(md.Output, "interrupted")
			return nil
		default:
		}

		cmds, err := pl.Step(u)
		fmt.Fprintf(md.Output, "%s: %s\n", pl, commandList(cmds))
		if err != nil {
			return err
		}

		if term != nil && !pl.Done() {
			k, err := term.ReadKey()
			if err != nil {
				return err
			}
			switch k {
			case easyterm.KeyQuit, easyterm.KeyInterrupt:
				return nil
			case easyterm.KeyContinue:
				term.CanonicalMode()
				term = nil
			case easyterm.KeySuspend:
				easyterm.SuspendProcess()
			}
		}
	}

	fmt.Fprintf(md.Output, "timer: %s, %d splits, game time %s\n", pl.Timer.State(), pl.Timer.Splits(), pl.Timer.GameTime())
	fmt.Fprintf(md.Output, "status: %s\n", as.Status())
	fmt.Fprintf(md.Output, "session: %s\n", as.Session())

	if *viz != "" {
		fn := *viz
		if fi, err := os.Stat(fn); err == nil && fi.IsDir() {
			fn = filepath.Join(fn, paths.UniqueFilename("memviz", tl.ShortName())+".dot")
		}

		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()

		state := as.State()
		session := as.Session()
		structures := []any{&state, &session}
		if snap := as.Snapshot(); snap != nil {
			structures = append(structures, snap)
		}
		memviz.Map(f, structures...)
		fmt.Fprintf(md.Output, "memviz: %s\n", fn)
	}

	return nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()

	verbose := md.AddBool("verbose", false, "output more detail about failures and errors")
	failOnError := md.AddBool("fail", false, "stop at the first error")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// the default transcripts directory is used if no transcripts are given
	args := md.RemainingArgs()
	if len(args) == 0 {
		pth, err := paths.ResourcePath("transcripts")
		if err != nil {
			return err
		}
		args = []string{pth}
	}

	cfg, err := environment.LoadConfig()
	if err != nil {
		return err
	}

	loaders, err := regression.Collect(args)
	if err != nil {
		return err
	}

	sum, err := regression.Run(md.Output, *verbose, *failOnError, cfg.TickInterval(), loaders)
	if err != nil {
		return err
	}

	if !sum.Passed() {
		return fmt.Errorf("%d of %d transcripts did not succeed", sum.Fail+sum.Error, len(loaders))
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "none", "produce profiling reports: cpu, mem, all")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("transcript required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	_, err = performance.Check(md.Output, prf, traceloader.NewLoader(md.GetArg(0)), *duration)
	return err
}

func builds(md *modalflag.Modes) error {
	md.NewMode()

	fields := md.AddBool("fields", false, "list the fields of each build")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// optional filter on the title name
	filter := strings.ToLower(strings.Join(md.RemainingArgs(), " "))

	for _, v := range layout.Variants() {
		if filter != "" && !strings.Contains(strings.ToLower(v.String()), filter) {
			continue
		}

		fmt.Fprintf(md.Output, "%s (%s)\n", v, strings.Join(layout.ProcessNames(v), ", "))
		for _, d := range layout.Builds(v) {
			fmt.Fprintf(md.Output, "  %s: %d-bit: %s\n", d.Build, d.PointerSize*8, d.Signature)
			if *fields {
				for _, n := range d.FieldNames() {
					fmt.Fprintf(md.Output, "    %s: %s\n", n, d.Fields[n])
				}
			}
		}
	}

	return nil
}

func listSettings(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	def := settings.NewSettings()
	for _, k := range settings.Keys() {
		fmt.Fprintf(md.Output, "%-14s %-5v %s\n", k, def.Enabled(k), settings.Describe(k))
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		_, rev, _ := version.Version()
		fmt.Fprintln(md.Output, rev)
		return nil
	}

	fmt.Fprintln(md.Output, version.String())
	return nil
}
