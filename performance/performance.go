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

package performance

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/rorsplit/autosplitter"
	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/environment"
	"github.com/jetsetilly/rorsplit/traceloader"
	"github.com/jetsetilly/rorsplit/transcript"
)

// Sentinal error patterns.
const (
	CheckError = "performance: %v"
)

// Result of a performance check.
type Result struct {
	Ticks    int
	Replays  int
	Duration time.Duration

	// ticks per second and the factor of the host's tick rate
	TPS    float64
	Factor float64
}

func (r Result) String() string {
	return fmt.Sprintf("%.0f tps (%d ticks in %.2f seconds, %d replays) %.1fx realtime", r.TPS, r.Ticks, r.Duration.Seconds(), r.Replays, r.Factor)
}

// CalcTPS calculates ticks-per-second and the factor of the expected rate.
func CalcTPS(ticks int, duration float64, rate int) (tps float64, factor float64) {
	if duration <= 0 {
		return 0, 0
	}
	tps = float64(ticks) / duration
	if rate > 0 {
		factor = tps / float64(rate)
	}
	return tps, factor
}

// Check replays the transcript for the specified duration and writes the
// result to output. Expectations in the transcript are ignored.
func Check(output io.Writer, profile Profile, tl traceloader.Loader, duration time.Duration) (Result, error) {
	var res Result

	if err := tl.Load(); err != nil {
		return res, err
	}

	tr, err := transcript.Parse(bytes.NewReader(tl.Data), tl.ShortName())
	if err != nil {
		return res, err
	}

	env, err := environment.NewEnvironment(environment.QuietLabel, nil)
	if err != nil {
		return res, err
	}
	env.Config.OS = "windows"

	interval := env.Config.TickInterval()

	runner := func() error {
		start := time.Now()
		for time.Since(start) < duration {
			pl, err := transcript.NewPlayer(tr, interval)
			if err != nil {
				return err
			}

			as, err := autosplitter.NewAutoSplitter(env, pl.Timer, nil)
			if err != nil {
				return err
			}

			for !pl.Done() && time.Since(start) < duration {
				_, err := pl.Step(as)
				if err != nil && !curated.Is(err, transcript.ExpectationFailed) {
					return err
				}
			}

			res.Ticks += pl.Tick()
			res.Replays++
		}
		res.Duration = time.Since(start)
		return nil
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return res, curated.Errorf(CheckError, err)
	}

	res.TPS, res.Factor = CalcTPS(res.Ticks, res.Duration.Seconds(), env.Config.TickRate)
	fmt.Fprintln(output, res)

	return res, nil
}
