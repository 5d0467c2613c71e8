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

// Package notifications allow the autosplitter to tell an interested party
// about events that change the state of the attachment or of the run. The
// notices are informational only and the autosplitter does not depend on
// the response.
//
// The CLI uses notifications to print a running commentary of a replay.
// Notices are not sent for every event. Splits for example are visible
// through the host's timer and are not duplicated here.
package notifications
