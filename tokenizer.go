// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jfrag

import (
	"bytes"

	"github.com/creachadair/jfrag/internal/escape"
	"go4.org/mem"
)

// A mode is the lexical state of a tokenizer between input bytes.
type mode byte

const (
	mOutside mode = iota // between tokens
	mString              // inside a quoted string
	mEscape              // inside a backslash escape within a string
	mNumber              // inside a number
	mLiteral             // inside one of the names true, false, or null
)

// A sig is a low-level signal reported by the tokenizer as it consumes input
// bytes. The parser translates signals into Updates.
type sig byte

const (
	sigNone    sig = iota // nothing to report
	sigLBrace             // left brace "{"
	sigRBrace             // right brace "}"
	sigLSquare            // left square bracket "["
	sigRSquare            // right square bracket "]"
	sigComma              // comma ","
	sigColon              // colon ":"
	sigOpenStr            // a quoted string opened
	sigString             // a quoted string closed
	sigNumber             // a number ended; the delimiting byte was not consumed
	sigLiteral            // a name (true, false, null) ended
)

// A tokenizer is a push-oriented lexical scanner for JSON. The caller feeds
// it one byte of input at a time via step, and the tokenizer reports a
// signal whenever the byte completes a lexical milestone. A token split
// across any number of input fragments, including inside an escape
// sequence, accumulates in the tokenizer until its final byte arrives.
//
// The tokenizer keeps two views of a string token in progress: raw, the
// source text including quotes and escapes, and part, the unescaped content
// that has not yet been handed to the parser. Escape sequences contribute
// nothing to part until their final byte resolves them.
type tokenizer struct {
	mode mode
	raw  bytes.Buffer // source text of the token in progress
	part bytes.Buffer // unescaped string content not yet reported
	esc  []byte       // pending escape sequence, including the backslash

	tokStart  int // offset of the first byte of the token in progress
	partStart int // offset of the first source byte contributing to part
	escStart  int // offset of the backslash opening the pending escape
}

// step consumes the input byte c at offset off. It returns the signal the
// byte produced, if any, and whether the byte was left unconsumed and must
// be stepped again after the signal is handled. A byte is left unconsumed
// only when it delimits the end of a number.
func (t *tokenizer) step(c byte, off int) (sig, bool) {
	switch t.mode {
	case mOutside:
		switch {
		case isSpace(c):
			return sigNone, false
		case c == '{':
			return sigLBrace, false
		case c == '}':
			return sigRBrace, false
		case c == '[':
			return sigLSquare, false
		case c == ']':
			return sigRSquare, false
		case c == ',':
			return sigComma, false
		case c == ':':
			return sigColon, false
		case c == '"':
			t.mode = mString
			t.tokStart = off
			t.raw.WriteByte(c)
			return sigOpenStr, false
		case c == '-' || isDigit(c):
			t.mode = mNumber
			t.tokStart = off
			t.raw.WriteByte(c)
			return sigNone, false
		case c == 't' || c == 'f' || c == 'n':
			t.mode = mLiteral
			t.tokStart = off
			t.raw.WriteByte(c)
			return sigNone, false
		default:
			// Unrecognized input; skip it. The tokenizer does not validate.
			return sigNone, false
		}

	case mString:
		switch c {
		case '"':
			t.raw.WriteByte(c)
			t.mode = mOutside
			return sigString, false
		case '\\':
			t.raw.WriteByte(c)
			t.mode = mEscape
			t.esc = append(t.esc[:0], c)
			t.escStart = off
			return sigNone, false
		default:
			t.raw.WriteByte(c)
			if t.part.Len() == 0 {
				t.partStart = off
			}
			t.part.WriteByte(c)
			return sigNone, false
		}

	case mEscape:
		t.raw.WriteByte(c)
		t.esc = append(t.esc, c)
		if len(t.esc) < escape.EscapeLen(mem.B(t.esc)) {
			return sigNone, false
		}
		if t.part.Len() == 0 {
			t.partStart = t.escStart
		}
		t.part.Write(escape.Decode(mem.B(t.esc)))
		t.esc = t.esc[:0]
		t.mode = mString
		return sigNone, false

	case mNumber:
		if isNumByte(c) {
			t.raw.WriteByte(c)
			return sigNone, false
		}
		t.mode = mOutside
		return sigNumber, true

	case mLiteral:
		if c >= 'a' && c <= 'z' {
			t.raw.WriteByte(c)
			if t.literalDone() {
				t.mode = mOutside
				return sigLiteral, false
			}
			return sigNone, false
		}
		// A name delimited before matching any constant is malformed;
		// report what accumulated and let the parser make what it can of it.
		t.mode = mOutside
		return sigLiteral, true
	}
	return sigNone, false
}

// inString reports whether the tokenizer is inside a string token,
// including partway through an escape sequence.
func (t *tokenizer) inString() bool { return t.mode == mString || t.mode == mEscape }

// literalDone reports whether the accumulated name is a complete constant.
// The grammar has no constant that extends another, so a match is final.
func (t *tokenizer) literalDone() bool {
	got := mem.B(t.raw.Bytes())
	return got.EqualString("true") || got.EqualString("false") || got.EqualString("null")
}

// takePart removes and returns the pending unescaped string content,
// together with the span of source text that produced it. The end of the
// span is end, the offset just past the last contributing byte.
func (t *tokenizer) takePart(end int) (string, Span) {
	s := t.part.String()
	t.part.Reset()
	return s, Span{Pos: t.partStart, End: end}
}

// takeRaw removes and returns the source text of the finished token.
func (t *tokenizer) takeRaw() string {
	s := t.raw.String()
	t.raw.Reset()
	return s
}

func (t *tokenizer) reset() {
	t.mode = mOutside
	t.raw.Reset()
	t.part.Reset()
	t.esc = t.esc[:0]
	t.tokStart, t.partStart, t.escStart = 0, 0, 0
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isNumByte reports whether c can occur within a number token. The
// tokenizer accepts a superset of valid JSON numbers; it records the text
// verbatim and leaves interpretation to the consumer.
func isNumByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}
