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

// Package resolver selects the layout.Descriptor for the attached process.
//
// Resolution is attempted every tick until a descriptor is selected. Once
// selected the descriptor remains active until the attachment changes. A
// change of attachment is detected by comparing the ID of the process with
// the ID of the previous tick's process.
//
// Failure to find a matching descriptor is not an error. The game may still
// be initialising and the attempt is repeated on the next tick.
package resolver
