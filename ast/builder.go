// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"strings"

	"github.com/creachadair/jfrag"
)

// A Builder assembles a value tree from the updates reported by a
// jfrag.Parser. Updates must be applied in emission order. The tree is
// attached eagerly, so Root may be inspected between fragments: values
// still arriving are present with the content received so far.
type Builder struct {
	root Value
	stk  []Value // open objects, arrays, members, and strings; innermost last
	done bool
}

// Root returns the root of the tree under construction. It is nil until
// the first update of the root value has been applied.
func (b *Builder) Root() Value { return b.root }

// Complete reports whether the root value is complete.
func (b *Builder) Complete() bool { return b.done }

// Reset restores b to its initial state, discarding the tree.
func (b *Builder) Reset() {
	b.root = nil
	b.stk = b.stk[:0]
	b.done = false
}

// ApplyAll applies each update of us in order.
func (b *Builder) ApplyAll(us []jfrag.Update) {
	for _, u := range us {
		b.Apply(u)
	}
}

// Apply applies a single update to the tree. Updates that do not fit the
// current state, as arise from malformed input, are discarded.
func (b *Builder) Apply(u jfrag.Update) {
	switch u.Kind {
	case jfrag.BeginObject:
		o := &Object{span: u.Span}
		b.place(o)
		b.push(o)

	case jfrag.BeginArray:
		a := &Array{span: u.Span}
		b.place(a)
		b.push(a)

	case jfrag.EndObject:
		if o, ok := b.top().(*Object); ok {
			o.span.End = u.Span.End
			b.pop()
			b.valueDone(u.Span.End)
		}

	case jfrag.EndArray:
		if a, ok := b.top().(*Array); ok {
			a.span.End = u.Span.End
			b.pop()
			b.valueDone(u.Span.End)
		}

	case jfrag.MemberKey:
		o, ok := b.top().(*Object)
		if !ok {
			return
		}
		m := &Member{span: u.Span, Key: memberKey(u.Text)}
		o.Members = append(o.Members, m)
		b.push(m)

	case jfrag.BeginString:
		s := &String{span: u.Span}
		b.place(s)
		b.push(s)

	case jfrag.StringPart:
		if s, ok := b.top().(*String); ok {
			s.text += u.Text
			s.span.End = u.Span.End
		}

	case jfrag.String:
		if s, ok := b.top().(*String); ok {
			s.raw, s.done = u.Text, true
			s.span = u.Span
			b.pop()
			b.valueDone(u.Span.End)
		}

	case jfrag.Number:
		d := datum{span: u.Span, text: u.Text}
		if strings.ContainsAny(u.Text, ".eE") {
			b.place(Number{datum: d})
		} else {
			b.place(Integer{datum: d})
		}
		b.valueDone(u.Span.End)

	case jfrag.Bool:
		b.place(Bool{datum: datum{span: u.Span, text: u.Text}, value: u.Text == "true"})
		b.valueDone(u.Span.End)

	case jfrag.Null:
		b.place(Null{datum: datum{span: u.Span, text: u.Text}})
		b.valueDone(u.Span.End)

	case jfrag.Complete:
		b.done = true
	}
}

func (b *Builder) top() Value {
	if len(b.stk) == 0 {
		return nil
	}
	return b.stk[len(b.stk)-1]
}

func (b *Builder) push(v Value) { b.stk = append(b.stk, v) }
func (b *Builder) pop()         { b.stk = b.stk[:len(b.stk)-1] }

// place attaches v at the current position: the value of the innermost
// member, the next element of the innermost array, or the root.
func (b *Builder) place(v Value) {
	switch t := b.top().(type) {
	case *Member:
		t.Value = v
	case *Array:
		t.Values = append(t.Values, v)
	case nil:
		if b.root == nil {
			b.root = v
		}
	}
}

// valueDone records that the value at the current position is complete,
// closing out the member it belongs to, if any.
func (b *Builder) valueDone(end int) {
	if m, ok := b.top().(*Member); ok {
		m.span.End = end
		b.pop()
	}
}

// memberKey decodes the quoted key text of a MemberKey update, falling
// back to the raw text if it does not decode.
func memberKey(quoted string) string {
	dec, err := jfrag.Unquote(quoted)
	if err != nil {
		return quoted
	}
	return string(dec)
}
