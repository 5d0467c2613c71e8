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

package transcript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/rorsplit/curated"
)

// Sentinal error patterns.
const (
	SyntaxError      = "transcript: %s line %d: %v"
	UnknownDirective = "unknown directive (%s)"
	WrongArgs        = "%s requires %s"
	NoProcess        = "transcript: %s: no process declared"
	NoTicks          = "transcript: %s: no ticks"
)

func tokenise(line string) ([]string, error) {
	var toks []string

	s := strings.TrimSpace(line)
	for s != "" {
		if s[0] == '#' {
			break
		}

		if s[0] == '"' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, curated.Errorf("unterminated string")
			}
			t, _ := strconv.Unquote(q)
			toks = append(toks, t)
			s = strings.TrimSpace(s[len(q):])
			continue
		}

		i := strings.IndexAny(s, " \t#")
		if i == -1 {
			toks = append(toks, s)
			break
		}
		toks = append(toks, s[:i])
		s = strings.TrimLeft(s[i:], " \t")
	}

	return toks, nil
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf("not a number (%s)", s)
	}
	return v, nil
}

func parseInt(s string, bits int) (int64, error) {
	v, err := strconv.ParseInt(s, 0, bits)
	if err != nil {
		return 0, curated.Errorf("not a %d bit integer (%s)", bits, s)
	}
	return v, nil
}

// Address is either an absolute address or the label of a chain.
type Address struct {
	Label    string
	Absolute uint64
}

func (a Address) String() string {
	if a.Label != "" {
		return "@" + a.Label
	}
	return fmt.Sprintf("%#x", a.Absolute)
}

func parseAddress(s string) (Address, error) {
	if l, ok := strings.CutPrefix(s, "@"); ok {
		if l == "" {
			return Address{}, curated.Errorf("empty label")
		}
		return Address{Label: l}, nil
	}
	v, err := parseUint(s)
	if err != nil {
		return Address{}, err
	}
	return Address{Absolute: v}, nil
}
