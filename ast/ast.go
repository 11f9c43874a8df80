// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSONC values, and a
// parser that constructs syntax trees from JSONC source.
//
// Unlike the plain values built by jsonc.Parse, a syntax tree preserves the
// order of object members, the source location of every value, and the
// literal text of numbers, so callers can report positions and recover
// integer values exactly.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jsonc"
)

// A Value is an arbitrary JSONC value.
type Value interface{ Span() jsonc.Span }

// A Datum is a Value with a source text representation.
type Datum interface {
	Value
	Text() string
}

func newSpan(pos, end int) jsonc.Span { return jsonc.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members, in the order they appear
// in the source.
type Object struct {
	pos, end int

	Members []*Member
}

// Span satisfies the Value interface.
func (o *Object) Span() jsonc.Span { return newSpan(o.pos, o.end) }

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object. The Key is
// unquoted. A member recovered from a damaged input may have a nil Value,
// when its key was parsed but no value could be recovered for it.
type Member struct {
	pos, end int

	Key   string
	Value Value
}

// Span satisfies the Value interface. The span runs from the member's key
// through the end of its value.
func (m *Member) Span() jsonc.Span { return newSpan(m.pos, m.end) }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a *Array) Span() jsonc.Span { return newSpan(a.pos, a.end) }

// Len reports the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

type datum struct {
	pos, end int
	text     string
}

// Span satisfies the Value interface.
func (d datum) Span() jsonc.Span { return newSpan(d.pos, d.end) }

// Text satisfies the Datum interface.
func (d datum) Text() string { return d.text }

// A Quoted is a string value.
type Quoted struct {
	datum
	value string
}

// Value returns the content of q with the quotes removed and escapes
// undone.
func (q *Quoted) Value() string { return q.value }

// A Number is a numeric value. The literal source text is preserved, so
// integers too big for a float64 can be recovered exactly using Int64.
type Number struct{ datum }

// IsInt reports whether n is an integer literal, having no fraction or
// exponent part.
func (n *Number) IsInt() bool { return !strings.ContainsAny(n.text, ".eE") }

// Float64 returns the value of n as a float64.
func (n *Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// Int64 returns the value of n as an int64. It panics if n is not an
// integer literal, or if the value does not fit in an int64.
func (n *Number) Int64() int64 {
	v, err := strconv.ParseInt(n.text, 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// Value reports the truth value of b.
func (b *Bool) Value() bool { return b.value }

// Null represents the null constant.
type Null struct{ datum }

// ToValue converts a string, int, int64, float64, bool, or nil into a
// Value. A Value is returned unchanged. It panics if v does not have one of
// those types. Values constructed by ToValue have an empty span.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return &Null{datum{text: "null"}}
	case bool:
		return &Bool{datum: datum{text: strconv.FormatBool(t)}, value: t}
	case string:
		return &Quoted{datum: datum{text: strconv.Quote(t)}, value: t}
	case int:
		return &Number{datum{text: strconv.Itoa(t)}}
	case int64:
		return &Number{datum{text: strconv.FormatInt(t, 10)}}
	case float64:
		return &Number{datum{text: strconv.FormatFloat(t, 'g', -1, 64)}}
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

// Unwrap converts v into the plain Go form used by jsonc.Parse: objects
// become map[string]any, arrays []any, and literals string, float64, bool,
// or nil. Object members whose Value is nil are omitted, and a later
// duplicate key replaces an earlier one. A nil v yields nil. Unwrap panics
// if v contains a Value type it does not know.
func Unwrap(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object:
		out := make(map[string]any, len(t.Members))
		for _, m := range t.Members {
			if m.Value != nil {
				out[m.Key] = Unwrap(m.Value)
			}
		}
		return out
	case *Member:
		return Unwrap(t.Value)
	case *Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = Unwrap(elt)
		}
		return out
	case *Quoted:
		return t.value
	case *Number:
		return t.Float64()
	case *Bool:
		return t.value
	case *Null:
		return nil
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}
