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

package prefs

import (
	"strings"

	"github.com/jetsetilly/rorsplit/curated"
)

// Pair is a single key/value pair from a command line preferences string.
type Pair struct {
	Key   string
	Value string
}

const (
	pairSeparator     = ";"
	keyValueSeparator = "::"
)

// ParseCommandLine divides a preferences string into key/value pairs. The
// order of the pairs is preserved.
//
// Empty entries are ignored. Entries without the key/value separator are an
// error but do not prevent the remaining entries from being returned.
func ParseCommandLine(prefs string) ([]Pair, error) {
	pairs := make([]Pair, 0)
	var err error

	for _, p := range strings.Split(prefs, pairSeparator) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, keyValueSeparator, 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			if err == nil {
				err = curated.Errorf("prefs: malformed entry (%s)", p)
			}
			continue
		}

		pairs = append(pairs, Pair{
			Key:   strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		})
	}

	return pairs, err
}
