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

// Package logger is the central log for RoRSplit. There is only one log for
// the entire program and it is accessed through the package level functions.
//
// Entries are made up of a tag and a detail string. The tag identifies the
// part of the program making the entry, for example "resolver" or "timer",
// and the detail is the message itself.
//
// Because the autosplitter runs once per tick, the same message is often
// logged many times in succession (eg. an unsupported build being retried).
// Consecutive identical entries are collapsed into a single entry with a
// repeat count.
//
// All logging requests are accompanied by a Permission. The Permission
// decides whether the entry is made. The Allow value can be used when an
// entry should always be made.
package logger
