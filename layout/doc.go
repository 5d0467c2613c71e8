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

// Package layout contains the static description of every supported build of
// every supported title. A Descriptor maps the logical field names used by
// the splitter package to a memview.Path and a memview.Type.
//
// Builds of the same title often differ only by offsets. Descriptors are
// therefore plain data and builds are added by adding to the tables in the
// per-title files. There are no per-build types.
//
// All descriptors are created during package initialisation and must never be
// altered.
package layout
