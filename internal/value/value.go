// Package value models heterogeneous configuration values as an explicit
// tagged variant. Menu files are hand-authored YAML, so any field may arrive
// as a string, number, boolean, list or nested mapping; conversions here are
// total and report absence or a type mismatch via the second return value
// instead of panicking.
package value

import (
	"fmt"
	"strconv"
)

// Kind tags the runtime type carried by a Value.
type Kind int

const (
	Absent Kind = iota
	String
	Int
	Float
	Bool
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is one configuration value. The zero Value has Kind Absent.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	l    []Value
	m    map[string]Value
}

// None is the absent value.
var None = Value{}

// From converts a value decoded by yaml.v3 (or encoding/json) into a Value.
// Unrecognized Go types collapse to their fmt representation rather than
// failing: a menu file should degrade, not abort.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return None
	case string:
		return Value{kind: String, s: t}
	case bool:
		return Value{kind: Bool, b: t}
	case int:
		return Value{kind: Int, i: int64(t)}
	case int64:
		return Value{kind: Int, i: t}
	case uint64:
		return Value{kind: Int, i: int64(t)}
	case float32:
		return Value{kind: Float, f: float64(t)}
	case float64:
		return Value{kind: Float, f: t}
	case []any:
		l := make([]Value, len(t))
		for i, e := range t {
			l[i] = From(e)
		}
		return Value{kind: List, l: l}
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = From(e)
		}
		return Value{kind: Map, m: m}
	case map[any]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = From(e)
		}
		return Value{kind: Map, m: m}
	default:
		return Value{kind: String, s: fmt.Sprint(t)}
	}
}

// Of wraps a string.
func Of(s string) Value { return Value{kind: String, s: s} }

// OfInt wraps an integer.
func OfInt(i int64) Value { return Value{kind: Int, i: i} }

// OfFloat wraps a float.
func OfFloat(f float64) Value { return Value{kind: Float, f: f} }

// OfBool wraps a bool.
func OfBool(b bool) Value { return Value{kind: Bool, b: b} }

// Kind reports the tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Str returns the string form. Scalars stringify; lists and maps do not.
func (v Value) Str() (string, bool) {
	switch v.kind {
	case String:
		return v.s, true
	case Int:
		return strconv.FormatInt(v.i, 10), true
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64), true
	case Bool:
		return strconv.FormatBool(v.b), true
	}
	return "", false
}

// Int returns an integer if v is numeric or a numeric string.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case Int:
		return v.i, true
	case Float:
		return int64(v.f), true
	case String:
		i, err := strconv.ParseInt(v.s, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Float returns a float if v is numeric or a numeric string.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	case String:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	}
	return 0, false
}

// Bool returns a boolean if v is a bool or the strings "true"/"false".
func (v Value) Bool() (bool, bool) {
	switch v.kind {
	case Bool:
		return v.b, true
	case String:
		b, err := strconv.ParseBool(v.s)
		return b, err == nil
	}
	return false, false
}

// List returns the element slice if v is a list.
func (v Value) List() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return v.l, true
}

// Map returns the key→value mapping if v is a map.
func (v Value) Map() (map[string]Value, bool) {
	if v.kind != Map {
		return nil, false
	}
	return v.m, true
}

// StrOr returns the string form or def when v is not a scalar.
func (v Value) StrOr(def string) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return def
}

// IntOr returns the integer form or def.
func (v Value) IntOr(def int64) int64 {
	if i, ok := v.Int(); ok {
		return i
	}
	return def
}

// BoolOr returns the boolean form or def.
func (v Value) BoolOr(def bool) bool {
	if b, ok := v.Bool(); ok {
		return b
	}
	return def
}

// Truthy implements the condition grammar's bare-fact test: absent, empty
// string, zero and false are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case Absent:
		return false
	case String:
		return v.s != "" && v.s != "false" && v.s != "0"
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case Bool:
		return v.b
	case List:
		return len(v.l) > 0
	case Map:
		return len(v.m) > 0
	}
	return false
}

// Strings converts a list of scalars to []string, accepting a bare scalar as
// a single-element list. Menu lore fields use both shapes.
func (v Value) Strings() ([]string, bool) {
	if s, ok := v.Str(); ok {
		return []string{s}, true
	}
	l, ok := v.List()
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(l))
	for _, e := range l {
		s, ok := e.Str()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
