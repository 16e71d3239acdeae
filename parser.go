// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

import "strings"

// A Parser consumes the text of a single JSON value delivered in arbitrary
// fragments, and reports the structure of the input as a sequence of
// Updates. Each call to AddFragment scans only the new fragment; work is
// never redone when a token, an escape sequence, or a container spans a
// fragment boundary.
//
// A Parser is a sequential, single-writer object. To parse several
// concurrent streams, use one Parser per stream (see the mux package).
type Parser struct {
	tool string

	input strings.Builder // all input text, in arrival order
	tok   tokenizer
	path  pathTracker

	keyRaw  string // quoted text of a member key awaiting its colon
	keyText string // unescaped text of the pending key
	keySpan Span
	haveKey bool // a pending key is held
	inKey   bool // the string in progress occupies a key position

	closed bool // the root value has been fully consumed

	out []Update // updates collected during the current call
}

// New constructs an empty Parser for a single JSON value. The tool name
// tags the stream for the benefit of the caller; it has no effect on
// parsing.
func New(tool string) *Parser { return &Parser{tool: tool} }

// Tool returns the stream tag the parser was constructed with.
func (p *Parser) Tool() string { return p.tool }

// CurrentJSON returns all input text received since construction or the
// last Reset, verbatim and in arrival order.
func (p *Parser) CurrentJSON() string { return p.input.String() }

// IsComplete reports whether the root value has been fully consumed.
// Once true, it remains true until Reset.
func (p *Parser) IsComplete() bool { return p.closed }

// Reset restores the parser to its construction state, discarding all
// accumulated input. The same instance can then parse a new value.
func (p *Parser) Reset() {
	p.input.Reset()
	p.tok.reset()
	p.path.reset()
	p.keyRaw, p.keyText = "", ""
	p.keySpan = Span{}
	p.haveKey, p.inKey = false, false
	p.closed = false
	p.out = nil
}

// AddFragment appends s to the accumulated input, scans it, and returns the
// updates it produced in emission order. An empty fragment produces no
// updates. Once the root value is complete, further fragments accumulate
// into CurrentJSON but produce no updates.
//
// The parser assumes well-formed input and does not validate: on malformed
// input it reports a best-effort sequence of updates and never panics.
func (p *Parser) AddFragment(s string) []Update {
	base := p.input.Len()
	p.input.WriteString(s)
	if s == "" || p.closed {
		return nil
	}

	p.out = nil
	for i := 0; i < len(s) && !p.closed; i++ {
		off := base + i
		for {
			sig, redo := p.tok.step(s[i], off)
			if sig != sigNone {
				p.apply(sig, off)
			}
			if !redo || p.closed {
				break
			}
		}
	}

	// Report string content contributed by this fragment. Content belonging
	// to an unfinished member key is withheld; keys are reported whole. The
	// bytes of an unresolved escape are excluded from the span; they belong
	// to the update that reports the escape's decoded content.
	if !p.closed && p.tok.inString() && !p.inKey && p.tok.part.Len() > 0 {
		end := base + len(s)
		if p.tok.mode == mEscape {
			end = p.tok.escStart
		}
		text, span := p.tok.takePart(end)
		p.emit(Update{Kind: StringPart, Path: p.path.valuePath(), Span: span, Text: text})
	}
	return p.out
}

// Close finalizes a number left pending at the end of input. A number has
// no closing delimiter, so a bare root value such as "15" is not complete
// until a delimiter follows it or the caller signals the end of the stream
// by calling Close. Close returns the updates produced by finalization;
// it reports nothing when no number is pending, and is safe to call any
// number of times.
func (p *Parser) Close() []Update {
	p.out = nil
	if !p.closed && p.tok.mode == mNumber {
		p.tok.mode = mOutside
		p.apply(sigNumber, p.input.Len())
	}
	return p.out
}

func (p *Parser) emit(u Update) { p.out = append(p.out, u) }

// apply translates one tokenizer signal at offset off into updates.
func (p *Parser) apply(sg sig, off int) {
	switch sg {
	case sigLBrace:
		path := p.path.enter(objectFrame)
		p.emit(Update{Kind: BeginObject, Path: path, Span: byteSpan(off)})

	case sigLSquare:
		path := p.path.enter(arrayFrame)
		p.emit(Update{Kind: BeginArray, Path: path, Span: byteSpan(off)})

	case sigRBrace:
		p.haveKey = false // a key with no colon has nowhere to go
		path := p.path.exit()
		p.emit(Update{Kind: EndObject, Path: path, Span: byteSpan(off)})
		p.endValue(off + 1)

	case sigRSquare:
		path := p.path.exit()
		p.emit(Update{Kind: EndArray, Path: path, Span: byteSpan(off)})
		p.endValue(off + 1)

	case sigColon:
		if p.haveKey {
			p.path.setKey(p.keyText)
			p.emit(Update{Kind: MemberKey, Path: p.path.containerPath(), Span: p.keySpan, Text: p.keyRaw})
			p.haveKey = false
		}

	case sigComma:
		// Nothing to do: element and member boundaries are tracked as each
		// value completes.

	case sigOpenStr:
		p.inKey = p.path.keyExpected()
		if !p.inKey {
			p.emit(Update{Kind: BeginString, Path: p.path.valuePath(), Span: byteSpan(off)})
		}

	case sigString:
		raw := p.tok.takeRaw()
		text, span := p.tok.takePart(off)
		if p.inKey {
			p.keyRaw, p.keyText = raw, text
			p.keySpan = Span{Pos: p.tok.tokStart, End: off + 1}
			p.haveKey, p.inKey = true, false
			break
		}
		path := p.path.valuePath()
		if text != "" {
			p.emit(Update{Kind: StringPart, Path: path, Span: span, Text: text})
		}
		p.emit(Update{Kind: String, Path: path, Span: Span{Pos: p.tok.tokStart, End: off + 1}, Text: raw})
		p.endValue(off + 1)

	case sigNumber:
		raw := p.tok.takeRaw()
		end := p.tok.tokStart + len(raw)
		p.emit(Update{Kind: Number, Path: p.path.valuePath(), Span: Span{Pos: p.tok.tokStart, End: end}, Text: raw})
		p.endValue(end)

	case sigLiteral:
		raw := p.tok.takeRaw()
		kind := Bool
		if raw == "null" {
			kind = Null
		}
		end := p.tok.tokStart + len(raw)
		p.emit(Update{Kind: kind, Path: p.path.valuePath(), Span: Span{Pos: p.tok.tokStart, End: end}, Text: raw})
		p.endValue(end)
	}
}

// endValue records that the value ending at offset end is complete. When it
// is the root value, the parser reports completion and goes inert.
func (p *Parser) endValue(end int) {
	p.path.endValue()
	if p.path.depth() == 0 {
		p.closed = true
		p.emit(Update{Kind: Complete, Path: "root", Span: Span{Pos: 0, End: end}, Text: p.input.String()})
	}
}

func byteSpan(off int) Span { return Span{Pos: off, End: off + 1} }
