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

// Package fingerprint identifies a build of a game from observable features
// of the attached process. A Signature is a predicate over a memview.View;
// each supported build has exactly one Signature.
//
// The Bytes signature is the most common. It compares a build string at a
// fixed offset in the main module. Only the length of the expected string is
// compared, meaning that any trailing bytes in the process memory are
// ignored.
//
// Signatures never cause a side effect in the process or in the View (other
// than the module lookup cache of the View) and they are safe to test every
// tick.
package fingerprint
