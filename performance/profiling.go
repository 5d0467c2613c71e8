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
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jetsetilly/rorsplit/curated"
)

// Sentinal error patterns.
const (
	ProfilingError = "performance: profiling: %v"
	UnknownProfile = "performance: unknown profile type (%s)"
)

// Profile specifies which profiles should be generated.
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 0x01
	ProfileMem  Profile = 0x02
	ProfileAll  Profile = ProfileCPU | ProfileMem
)

func (p Profile) String() string {
	switch p {
	case ProfileNone:
		return "none"
	case ProfileCPU:
		return "cpu"
	case ProfileMem:
		return "mem"
	case ProfileAll:
		return "all"
	}
	return "unknown"
}

// ParseProfile converts a string to a Profile value. The string is a comma
// separated list of "cpu", "mem", "all" and "none". Case insensitive.
func ParseProfile(s string) (Profile, error) {
	var p Profile
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "", "none":
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		case "all":
			p |= ProfileAll
		default:
			return ProfileNone, curated.Errorf(UnknownProfile, f)
		}
	}
	return p, nil
}

// RunProfiler runs the supplied function with the requested profiles.
// Profiles are written to files named after filenameHeader.
func RunProfiler(profile Profile, filenameHeader string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer pprof.StopCPUProfile()
	}

	err := run()

	if profile&ProfileMem == ProfileMem {
		if merr := memProfile(fmt.Sprintf("%s_mem.profile", filenameHeader)); merr != nil && err == nil {
			err = merr
		}
	}

	return err
}

func memProfile(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(ProfilingError, err)
	}
	defer f.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return curated.Errorf(ProfilingError, err)
	}

	return nil
}
