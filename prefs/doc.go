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

// Package prefs implements typed preference values. RoRSplit does not persist
// preferences; the values are set every tick from the configuration supplied
// by the host, or once from the command line.
//
// Each value can have hooks that are run before and after the value is
// changed. A pre-hook returning an error prevents the change.
//
// The command line format is a list of key/value pairs, separated by
// semicolons. Keys and values are separated by a double colon:
//
//	ror2_stages::true; bazaar::true
package prefs
