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

// Package traceloader fetches transcript data for replay.
//
// Transcripts can be loaded from a local file or over HTTP. In both cases the
// data can be compressed or archived. Supported containers are gzip, zip, 7z
// and rar. For archives the first entry with the ".transcript" extension is
// used, unless an entry name has been specified.
//
// The simplest instance of the Loader type:
//
//	tl := traceloader.Loader{
//		Filename: "runs/ror1.transcript",
//	}
//
// An entry inside an archive is selected with a hash separator:
//
//	tl := traceloader.NewLoader("runs/all.7z#rorr.transcript")
//
// After a successful Load() the Hash field contains the SHA1 of the
// transcript data (not of the archive that contained it).
package traceloader
