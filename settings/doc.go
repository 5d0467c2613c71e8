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

// Package settings holds the split point and automation configuration. Each
// setting is a prefs.Bool keyed by an event ID.
//
// The host supplies the configuration every tick as a map of event ID to
// boolean. Apply() copies the map into the Settings. Keys missing from the
// map take their default value. A nil map means that the configuration is
// missing entirely, in which case every setting takes its default value and
// an error is returned so that the problem can be reported.
//
// The Parse() function accepts the command line preferences format of the
// prefs package. For example:
//
//	ror2_stages::true; bazaar::true; reset::false
package settings
