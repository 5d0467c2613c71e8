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

package memview

import (
	"fmt"
	"strconv"
)

// Kind is the primitive type of a value in memory.
type Kind int

// List of valid Kind values.
const (
	Int32 Kind = iota
	Uint32
	Int64
	Float32
	Float64
	Bool
	Text
)

func (k Kind) String() string {
	switch k {
	case Int32:
		return "i32"
	case Uint32:
		return "u32"
	case Int64:
		return "i64"
	case Float32:
		return "f32"
	case Float64:
		return "f64"
	case Bool:
		return "bool"
	case Text:
		return "text"
	}
	return "unknown kind"
}

// size of the kind in bytes. text values have a variable size
func (k Kind) size() int {
	switch k {
	case Int32, Uint32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case Bool:
		return 1
	}
	return 0
}

// Encoding of a Text value.
type Encoding int

// List of valid Encoding values.
const (
	UTF8 Encoding = iota
	UTF16
)

// Type describes how a value should be decoded from memory.
type Type struct {
	Kind Kind

	// maximum length of a text value, not including the terminating NUL.
	// the length is in bytes for UTF8 and in code units for UTF16. a text
	// value that is longer is not available
	Len int

	// encoding of a text value
	Encoding Encoding
}

func (t Type) String() string {
	if t.Kind == Text {
		enc := "utf8"
		if t.Encoding == UTF16 {
			enc = "utf16"
		}
		return fmt.Sprintf("text[%d,%s]", t.Len, enc)
	}
	return t.Kind.String()
}

// Predefined types for the non-text kinds.
var (
	TypeInt32   = Type{Kind: Int32}
	TypeUint32  = Type{Kind: Uint32}
	TypeInt64   = Type{Kind: Int64}
	TypeFloat32 = Type{Kind: Float32}
	TypeFloat64 = Type{Kind: Float64}
	TypeBool    = Type{Kind: Bool}
)

// TypeText returns a Type for a text value of maximum length n bytes.
func TypeText(n int, enc Encoding) Type {
	return Type{Kind: Text, Len: n, Encoding: enc}
}

// Value is a decoded value. Values are comparable with the == operator.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// IntValue creates a new integer value. The kind must be one of the integer
// kinds.
func IntValue(kind Kind, v int64) Value {
	return Value{kind: kind, i: v}
}

// FloatValue creates a new floating point value. The kind must be one of the
// float kinds.
func FloatValue(kind Kind, v float64) Value {
	return Value{kind: kind, f: v}
}

// BoolValue creates a new boolean value.
func BoolValue(v bool) Value {
	return Value{kind: Bool, b: v}
}

// TextValue creates a new text value.
func TextValue(v string) Value {
	return Value{kind: Text, s: v}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the value as an integer. Float values are truncated and bool
// values are 0 or 1. Text values are always 0.
func (v Value) Int() int64 {
	switch v.kind {
	case Int32, Uint32, Int64:
		return v.i
	case Float32, Float64:
		return int64(v.f)
	case Bool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Float returns the value as a float.
func (v Value) Float() float64 {
	switch v.kind {
	case Float32, Float64:
		return v.f
	case Int32, Uint32, Int64:
		return float64(v.i)
	case Bool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Bool returns the value as a boolean. Numeric values are true if they are
// not zero. Text values are true if they are not empty.
func (v Value) Bool() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Int32, Uint32, Int64:
		return v.i != 0
	case Float32, Float64:
		return v.f != 0
	case Text:
		return v.s != ""
	}
	return false
}

// Text returns the value as a string. Non-text values are formatted.
func (v Value) Text() string {
	if v.kind == Text {
		return v.s
	}
	return v.String()
}

func (v Value) String() string {
	switch v.kind {
	case Int32, Uint32, Int64:
		return strconv.FormatInt(v.i, 10)
	case Float32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case Text:
		return strconv.Quote(v.s)
	}
	return "?"
}
