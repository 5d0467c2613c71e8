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
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/rorsplit/curated"
)

// Sentinal error patterns.
const (
	LoadError      = "traceloader: %v"
	UnexpectedHash = "traceloader: unexpected hash value"
	NoTranscript   = "traceloader: no transcript in %s"
	NoEntry        = "traceloader: no entry named %s in %s"
	TooLarge       = "traceloader: %s is larger than %d bytes"
)

// Transcripts are plain text. Anything bigger than this is not a transcript.
const maxSize = 64 * 1024 * 1024

// Extension is the file extension of a transcript file.
const Extension = ".transcript"

// Loader specifies the transcript to replay.
type Loader struct {
	// filename or URL of the transcript or of the container holding it
	Filename string

	// name of the entry inside an archive. empty string selects the first
	// entry with the transcript extension
	Entry string

	// expected hash of the transcript data. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
// A filename of the form "archive.zip#entry" selects the named entry.
func NewLoader(filename string) Loader {
	tl := Loader{
		Filename: filename,
	}

	// fragments on URLs are left alone by url.Parse() so this works for both
	// local files and remote files
	if i := strings.LastIndex(filename, "#"); i > 0 {
		tl.Filename = filename[:i]
		tl.Entry = filename[i+1:]
	}

	return tl
}

// ShortName returns the base name of the transcript without the extension.
func (tl Loader) ShortName() string {
	name := tl.Filename
	if tl.Entry != "" {
		name = tl.Entry
	}
	name = path.Base(name)
	for _, ext := range containers {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// HasLoaded returns true if Load() has been successfully called.
func (tl Loader) HasLoaded() bool {
	return len(tl.Data) > 0
}

// Load the transcript data. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (tl *Loader) Load() error {
	if len(tl.Data) > 0 {
		return nil
	}

	raw, err := tl.fetch()
	if err != nil {
		return err
	}

	data, err := unpack(tl.Filename, tl.Entry, raw)
	if err != nil {
		return err
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if tl.Hash != "" && tl.Hash != hash {
		return curated.Errorf(UnexpectedHash)
	}

	tl.Hash = hash
	tl.Data = data

	return nil
}

func (tl *Loader) fetch() ([]byte, error) {
	scheme := "file"

	u, err := url.Parse(tl.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(tl.Filename)
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, curated.Errorf(LoadError, resp.Status)
		}

		return limitedRead(tl.Filename, resp.Body)

	case "file":
		fallthrough

	case "":
		f, err := os.Open(tl.Filename)
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		defer f.Close()

		return limitedRead(tl.Filename, f)
	}

	// single letter schemes are windows drive letters
	if len(scheme) == 1 {
		f, err := os.Open(tl.Filename)
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		defer f.Close()
		return limitedRead(tl.Filename, f)
	}

	return nil, curated.Errorf(LoadError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
}

func limitedRead(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	if len(data) > maxSize {
		return nil, curated.Errorf(TooLarge, name, maxSize)
	}
	return data, nil
}
