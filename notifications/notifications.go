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

package notifications

// Notice describes events that somehow change the state of the autosplitter.
type Notice string

// List of defined notifications.
const (
	// a process has been attached or detached
	NotifyAttached Notice = "NotifyAttached"
	NotifyDetached Notice = "NotifyDetached"

	// a build has been identified for the attached process
	NotifyBuildSelected Notice = "NotifyBuildSelected"

	// the attached process is one of the games but no build matches
	NotifyUnsupported Notice = "NotifyUnsupported"

	// run notifications. sent only when the host timer was changed
	NotifyRunStarted   Notice = "NotifyRunStarted"
	NotifyRunCompleted Notice = "NotifyRunCompleted"
	NotifyRunReset     Notice = "NotifyRunReset"

	// the host reset or started the timer without the autosplitter
	NotifyHostReset Notice = "NotifyHostReset"
	NotifyHostStart Notice = "NotifyHostStart"

	// the settings map supplied by the host could not be applied in full
	NotifySettingsInvalid Notice = "NotifySettingsInvalid"
)

// Notify is implemented by types that want to receive notices. The detail
// argument is a short human readable description of the notice, for example
// the name of the selected build.
type Notify interface {
	Notify(notice Notice, detail string) error
}
