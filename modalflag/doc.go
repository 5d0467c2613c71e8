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

// Package modalflag wraps the flag package of the standard library so that a
// command line can select a program mode (and sub-modes) with each mode having
// its own set of flags.
//
// Arguments are given to NewArgs() and flags are added before calling Parse().
// Parse() takes no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("REPLAY", "BUILDS", "VERSION")
//	p, err := md.Parse()
//
// If the first non-flag argument matches one of the sub-modes then that mode is
// selected and becomes the last part of the mode path. Otherwise the first
// sub-mode in the list is selected. Sub-mode comparisons are case insensitive.
//
// After a mode has been selected, NewMode() prepares the Modes instance for
// the flags of that mode and Parse() is called again:
//
//	switch md.Mode() {
//	case "REPLAY":
//		md.NewMode()
//		step := md.AddBool("step", false, "wait for a key press between blocks")
//		p, err := md.Parse()
//		...
//	}
//
// Non-flag arguments that remain after a Parse() are retrieved with
// RemainingArgs() or GetArg().
//
// Help is printed to the Output writer when the -help flag is encountered.
// Sub-modes can be given a one line description with DescribeSubMode() and
// these are included in the help message.
//
// Flags that can be specified more than once are added with AddRepeated().
package modalflag
