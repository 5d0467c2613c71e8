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

package regression

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jetsetilly/rorsplit/autosplitter"
	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/traceloader"
	"github.com/jetsetilly/rorsplit/transcript"
)

// Sentinal error patterns.
const (
	NoOutput  = "regression: io.Writer should not be nil"
	NoEntries = "regression: no transcripts found"
	Aborted   = "regression: aborted after error in %s"
)

// Summary of a regression run.
type Summary struct {
	Succeed int
	Fail    int
	Error   int
}

func (s Summary) String() string {
	msg := fmt.Sprintf("regression tests: %d succeed, %d fail", s.Succeed, s.Fail)
	if s.Error > 0 {
		msg = fmt.Sprintf("%s [with %d errors]", msg, s.Error)
	}
	return msg
}

// Passed returns true if every transcript succeeded.
func (s Summary) Passed() bool {
	return s.Fail == 0 && s.Error == 0
}

// Collect expands the list of paths into a list of loaders. Directories are
// replaced by the transcripts and archives they contain, in lexical order.
// Everything else is passed through unchanged.
func Collect(paths []string) ([]traceloader.Loader, error) {
	var loaders []traceloader.Loader

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			loaders = append(loaders, traceloader.NewLoader(p))
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, curated.Errorf("regression: %v", err)
		}

		var names []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			n := e.Name()
			if strings.EqualFold(filepath.Ext(n), traceloader.Extension) || traceloader.IsContainer(n) {
				names = append(names, n)
			}
		}
		slices.Sort(names)

		for _, n := range names {
			loaders = append(loaders, traceloader.NewLoader(filepath.Join(p, n)))
		}
	}

	if len(loaders) == 0 {
		return nil, curated.Errorf(NoEntries)
	}

	return loaders, nil
}

// Regress plays a single transcript. The returned boolean is false if an
// expectation was not met, in which case the error describes the failed
// expectation. Any other error means the transcript could not be played.
func Regress(tl traceloader.Loader, interval time.Duration) (bool, error) {
	if err := tl.Load(); err != nil {
		return false, err
	}

	tr, err := transcript.Parse(bytes.NewReader(tl.Data), tl.ShortName())
	if err != nil {
		return false, err
	}

	pl, err := transcript.NewPlayer(tr, interval)
	if err != nil {
		return false, err
	}

	env, err := environment.NewEnvironment(environment.QuietLabel, nil)
	if err != nil {
		return false, err
	}
	env.Normalise()

	// transcripts name windows processes. the platform of the machine
	// running the regression should not matter
	env.Config.OS = "windows"

	as, err := autosplitter.NewAutoSplitter(env, pl.Timer, nil)
	if err != nil {
		return false, err
	}

	err = pl.Play(as)
	if curated.Is(err, transcript.ExpectationFailed) {
		return false, err
	}

	return err == nil, err
}

// Run every transcript and write the result of each to output. Processing
// stops after the first error if failOnError is true.
func Run(output io.Writer, verbose bool, failOnError bool, interval time.Duration, loaders []traceloader.Loader) (Summary, error) {
	var sum Summary

	if output == nil {
		return sum, curated.Errorf(NoOutput)
	}

	defer func() {
		fmt.Fprintln(output, sum)
	}()

	for _, tl := range loaders {
		name := tl.Filename
		if tl.Entry != "" {
			name = fmt.Sprintf("%s#%s", tl.Filename, tl.Entry)
		}

		ok, err := Regress(tl, interval)

		switch {
		case ok:
			sum.Succeed++
			fmt.Fprintf(output, "succeed: %s\n", name)

		case curated.Is(err, transcript.ExpectationFailed):
			sum.Fail++
			fmt.Fprintf(output, "failure: %s\n", name)
			if verbose {
				fmt.Fprintf(output, "%v\n", err)
			}

		default:
			sum.Error++
			fmt.Fprintf(output, "  ERROR: %s\n", name)
			if verbose {
				fmt.Fprintf(output, "%v\n", err)
			}
			if failOnError {
				return sum, curated.Errorf(Aborted, name)
			}
		}
	}

	return sum, nil
}
