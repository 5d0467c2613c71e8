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

// Package paths prepares paths to RoRSplit resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory. For example, the default location of the
// regression transcripts:
//
//	d, err := paths.ResourcePath("transcripts")
//
// If the directory ".rorsplit" is present in the current directory then that
// is used as the base. Otherwise the base is the "rorsplit" directory in the
// user's config directory, as returned by os.UserConfigDir(). On a Linux
// system the example above returns:
//
//	/home/user/.config/rorsplit/transcripts
//
// Directories are not created by the package.
package paths
