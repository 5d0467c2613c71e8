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

// Package regression plays transcripts through the autosplitter and reports
// whether the expectations in each transcript were met.
//
// Transcripts are specified as filenames, URLs or directories. Directories
// are searched (not recursively) for transcripts and for archives that
// might contain transcripts. Each transcript is played in a quiet environment
// with default settings so that the result does not depend on the process
// environment of the test run.
//
// A transcript that fails an expectation is a failure. A transcript that
// cannot be loaded, parsed or played is an error.
package regression
