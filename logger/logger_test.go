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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/rorsplit/logger"
	"github.com/jetsetilly/rorsplit/test"
)

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "")

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\n")

	tw.Clear()
	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectEquality(t, tw.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "test2: this is another test\n")

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Log(logger.Allow, "resolver", "unsupported build")
	logger.Log(logger.Allow, "resolver", "unsupported build")
	logger.Logf(logger.Allow, "resolver", "unsupported %s", "build")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "resolver: unsupported build (repeat x3)\n")
}

func TestPermission(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}

	logger.Log(deny{}, "test", "should not appear")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "")
}

func TestRecentAndEcho(t *testing.T) {
	logger.Clear()
	tw := &test.Writer{}
	echo := &test.Writer{}

	logger.SetEcho(echo)
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "a", "one")
	logger.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "a: one\n")

	tw.Clear()
	logger.Log(logger.Allow, "b", "two")
	logger.WriteRecent(tw)
	test.ExpectEquality(t, tw.String(), "b: two\n")

	test.ExpectEquality(t, echo.String(), "a: one\nb: two\n")
}
