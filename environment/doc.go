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

// Package environment provides the context for an autosplitter instance. The
// environment carries the settings and the configuration taken from the
// process environment, and decides whether the instance is allowed to log.
//
// More than one autosplitter can exist at once. The regression tests for
// example create many autosplitters with a quiet environment so that the
// central log is not swamped.
package environment
