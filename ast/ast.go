// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a value tree for JSON documents under incremental
// construction, and a builder that assembles trees from the updates
// reported by a jfrag.Parser.
package ast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jfrag"
	"github.com/creachadair/jfrag/upath"
)

// A Value is a JSON value, possibly still under construction.
type Value interface {
	Span() jfrag.Span // the span of input text covered by the value
	JSON() string     // the value rendered as JSON text
}

// A Datum is a Value with a source text representation.
type Datum interface {
	Value
	Text() string
}

// An Object is a collection of key-value members.
type Object struct {
	span    jfrag.Span
	Members []*Member
}

// Span satisfies the Value interface.
func (o *Object) Span() jfrag.Span { return o.span }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON renders the members received so far. A member whose value has not
// yet begun to arrive is omitted.
func (o *Object) JSON() string {
	var buf strings.Builder
	buf.WriteString("{")
	for _, m := range o.Members {
		if m.Value == nil {
			continue
		}
		if buf.Len() > 1 {
			buf.WriteString(",")
		}
		buf.WriteString(m.JSON())
	}
	buf.WriteString("}")
	return buf.String()
}

// A Member is a single key-value pair belonging to an Object. Its Value is
// nil until at least part of the member's value has arrived.
type Member struct {
	span jfrag.Span

	Key   string // the unescaped key text
	Value Value
}

// Span satisfies the Value interface.
func (m *Member) Span() jfrag.Span { return m.span }

// JSON satisfies the Value interface.
func (m *Member) JSON() string {
	if m.Value == nil {
		return jfrag.Quote(m.Key) + ":null"
	}
	return jfrag.Quote(m.Key) + ":" + m.Value.JSON()
}

// An Array is a sequence of values.
type Array struct {
	span jfrag.Span

	Values []Value
}

// Span satisfies the Value interface.
func (a *Array) Span() jfrag.Span { return a.span }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	ss := make([]string, len(a.Values))
	for i, v := range a.Values {
		ss[i] = v.JSON()
	}
	return "[" + strings.Join(ss, ",") + "]"
}

type datum struct {
	span jfrag.Span
	text string
}

// Span satisfies the Value interface.
func (d datum) Span() jfrag.Span { return d.span }

// Text satisfies the Datum interface.
func (d datum) Text() string { return d.text }

// JSON satisfies the Value interface.
func (d datum) JSON() string { return d.text }

// An Integer is a number without fraction or exponent.
type Integer struct{ datum }

func (z Integer) Int64() int64 {
	v, err := strconv.ParseInt(z.text, 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Number is a number with a fraction and/or exponent.
type Number struct{ datum }

func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
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

func (b Bool) Value() bool { return b.value }

// Null represents the null constant.
type Null struct{ datum }

// A String is a string value. While the input producing it is still
// arriving, a String holds the unescaped content received so far.
type String struct {
	span jfrag.Span
	text string // unescaped content received so far
	raw  string // source text with quotes, once complete
	done bool
}

// Span satisfies the Value interface.
func (s *String) Span() jfrag.Span { return s.span }

// Value returns the unescaped content received so far.
func (s *String) Value() string { return s.text }

// Done reports whether the closing quote of the string has been received.
func (s *String) Done() bool { return s.done }

// Text returns the source text of the string with quotes. For a string
// still arriving, the content received so far is re-quoted.
func (s *String) Text() string {
	if s.done {
		return s.raw
	}
	return jfrag.Quote(s.text)
}

// JSON satisfies the Value interface.
func (s *String) JSON() string { return s.Text() }

// At returns the value at the given update path within root. The path must
// be concrete; wildcard steps report an error. Members whose values have
// not yet arrived are treated as absent.
func At(root Value, path string) (Value, error) {
	e, err := upath.Parse(path)
	if err != nil {
		return nil, err
	}
	v := root
	for _, s := range e {
		if s.IsWild() {
			return nil, errors.New("wildcard in path")
		}
		switch t := v.(type) {
		case *Object:
			if s.Op != upath.Member {
				return nil, fmt.Errorf("cannot index into object at %q", path)
			}
			m := t.Find(s.Name)
			if m == nil || m.Value == nil {
				return nil, fmt.Errorf("key %q not found", s.Name)
			}
			v = m.Value
		case *Array:
			if s.Op != upath.Index {
				return nil, fmt.Errorf("cannot select member of array at %q", path)
			} else if s.Index >= len(t.Values) {
				return nil, fmt.Errorf("index %d out of range", s.Index)
			}
			v = t.Values[s.Index]
		default:
			return nil, fmt.Errorf("cannot traverse %T value", v)
		}
	}
	return v, nil
}
