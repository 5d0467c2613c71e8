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

package traceloader

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode/v2"

	"github.com/jetsetilly/rorsplit/curated"
)

// file extensions of supported containers. anything else is treated as plain
// transcript text
var containers = []string{".gz", ".zip", ".7z", ".rar"}

// IsContainer returns true if the filename has the extension of a supported
// container.
func IsContainer(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, c := range containers {
		if ext == c {
			return true
		}
	}
	return false
}

func unpack(filename string, entry string, raw []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".gz":
		return fromGzip(filename, raw)
	case ".zip":
		return fromZip(filename, entry, raw)
	case ".7z":
		return from7z(filename, entry, raw)
	case ".rar":
		return fromRar(filename, entry, raw)
	}
	return raw, nil
}

// selected returns true if the archive entry should be used
func selected(name string, entry string) bool {
	if entry != "" {
		return name == entry || path.Base(name) == entry
	}
	return strings.EqualFold(path.Ext(name), Extension)
}

func missing(filename string, entry string) error {
	if entry != "" {
		return curated.Errorf(NoEntry, entry, filename)
	}
	return curated.Errorf(NoTranscript, filename)
}

func fromGzip(filename string, raw []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer gr.Close()
	return limitedRead(filename, gr)
}

func fromZip(filename string, entry string, raw []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !selected(f.Name, entry) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		defer rc.Close()

		return limitedRead(f.Name, rc)
	}

	return nil, missing(filename, entry)
}

func from7z(filename string, entry string, raw []byte) ([]byte, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !selected(f.Name, entry) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		defer rc.Close()

		return limitedRead(f.Name, rc)
	}

	return nil, missing(filename, entry)
}

func fromRar(filename string, entry string, raw []byte) ([]byte, error) {
	rr, err := rardecode.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	for {
		hdr, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}

		if hdr.IsDir || !selected(hdr.Name, entry) {
			continue
		}

		return limitedRead(hdr.Name, rr)
	}

	return nil, missing(filename, entry)
}
