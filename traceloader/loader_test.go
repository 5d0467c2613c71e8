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

package traceloader_test

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/jetsetilly/rorsplit/curated"
	"github.com/jetsetilly/rorsplit/test"
	"github.com/jetsetilly/rorsplit/traceloader"
)

const transcript = "process \"Risk of Rain.exe\"\ntick\nexpect commands none\n"

func hash(data string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(data)))
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0644))
	return fn
}

func zipped(t *testing.T, entries map[string]string, order ...string) []byte {
	t.Helper()
	var b bytes.Buffer
	w := zip.NewWriter(&b)
	for _, name := range order {
		fw, err := w.Create(name)
		test.DemandSuccess(t, err)
		_, err = fw.Write([]byte(entries[name]))
		test.DemandSuccess(t, err)
	}
	test.DemandSuccess(t, w.Close())
	return b.Bytes()
}

func TestNewLoader(t *testing.T) {
	tl := traceloader.NewLoader("runs/all.zip#rorr.transcript")
	test.ExpectEquality(t, tl.Filename, "runs/all.zip")
	test.ExpectEquality(t, tl.Entry, "rorr.transcript")
	test.ExpectEquality(t, tl.ShortName(), "rorr")

	tl = traceloader.NewLoader("runs/ror1.transcript.gz")
	test.ExpectEquality(t, tl.Filename, "runs/ror1.transcript.gz")
	test.ExpectEquality(t, tl.Entry, "")
	test.ExpectEquality(t, tl.ShortName(), "ror1")
	test.ExpectSuccess(t, !tl.HasLoaded())

	test.ExpectSuccess(t, traceloader.IsContainer("a.7z"))
	test.ExpectSuccess(t, traceloader.IsContainer("a.RAR"))
	test.ExpectSuccess(t, !traceloader.IsContainer("a.transcript"))
}

func TestPlainFile(t *testing.T) {
	fn := writeFile(t, "ror1.transcript", []byte(transcript))

	tl := traceloader.NewLoader(fn)
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), transcript)
	test.ExpectEquality(t, tl.Hash, hash(transcript))
	test.ExpectSuccess(t, tl.HasLoaded())

	// loading again is a no-op
	test.ExpectSuccess(t, tl.Load())

	// hash mismatch
	tl = traceloader.NewLoader(fn)
	tl.Hash = "0000"
	err := tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.UnexpectedHash))
	test.ExpectSuccess(t, !tl.HasLoaded())

	// missing file
	tl = traceloader.NewLoader(filepath.Join(t.TempDir(), "missing.transcript"))
	err = tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.LoadError))
}

func TestGzip(t *testing.T) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write([]byte(transcript))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, w.Close())

	tl := traceloader.NewLoader(writeFile(t, "ror1.transcript.gz", b.Bytes()))
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), transcript)
	test.ExpectEquality(t, tl.Hash, hash(transcript))

	// not actually compressed
	tl = traceloader.NewLoader(writeFile(t, "bad.transcript.gz", []byte(transcript)))
	test.ExpectFailure(t, tl.Load())
}

func TestZip(t *testing.T) {
	entries := map[string]string{
		"README":               "not a transcript",
		"runs/ror1.transcript": transcript,
		"runs/rorr.transcript": "process rorr\n",
	}
	data := zipped(t, entries, "README", "runs/ror1.transcript", "runs/rorr.transcript")
	fn := writeFile(t, "runs.zip", data)

	// first transcript entry
	tl := traceloader.NewLoader(fn)
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), transcript)

	// named entry by base name
	tl = traceloader.NewLoader(fn + "#rorr.transcript")
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), "process rorr\n")

	// named entry by full name
	tl = traceloader.NewLoader(fn + "#README")
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), "not a transcript")

	// missing entry
	tl = traceloader.NewLoader(fn + "#ror2.transcript")
	err := tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.NoEntry))

	// no transcripts at all
	data = zipped(t, map[string]string{"README": "nothing"}, "README")
	tl = traceloader.NewLoader(writeFile(t, "empty.zip", data))
	err = tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.NoTranscript))
}

func TestInvalidArchives(t *testing.T) {
	for _, name := range []string{"bad.zip", "bad.7z"} {
		tl := traceloader.NewLoader(writeFile(t, name, []byte("not an archive")))
		err := tl.Load()
		test.ExpectSuccess(t, curated.Is(err, traceloader.LoadError), name)
	}

	// rar reader searches for the signature so the error may come from
	// either the reader or the entry search
	tl := traceloader.NewLoader(writeFile(t, "bad.rar", []byte("not an archive")))
	test.ExpectFailure(t, tl.Load())

	for _, name := range []string{"empty.zip", "empty.7z", "empty.rar"} {
		tl := traceloader.NewLoader(writeFile(t, name, []byte{}))
		test.ExpectFailure(t, tl.Load(), name)
	}
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ror1.transcript":
			fmt.Fprint(w, transcript)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tl := traceloader.NewLoader(srv.URL + "/ror1.transcript")
	test.ExpectSuccess(t, tl.Load())
	test.ExpectEquality(t, string(tl.Data), transcript)
	test.ExpectEquality(t, tl.Hash, hash(transcript))

	tl = traceloader.NewLoader(srv.URL + "/missing.transcript")
	err := tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.LoadError))
}

func TestUnsupportedScheme(t *testing.T) {
	tl := traceloader.NewLoader("ftp://example.com/ror1.transcript")
	err := tl.Load()
	test.ExpectSuccess(t, curated.Is(err, traceloader.LoadError))
}
