// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. Unquote reports an
// error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i)

		n := EscapeLen(src)
		if n > src.Len() {
			return nil, errors.New("incomplete escape sequence")
		}
		dec = appendEscape(dec, src.SliceTo(n))
		src = src.SliceFrom(n)
	}
	return dec, nil
}

// EscapeLen reports the length in bytes of the escape sequence beginning at
// the start of src, which must begin with a backslash. The reported length
// may exceed src.Len() if the sequence is truncated by the end of input.
func EscapeLen(src mem.RO) int {
	if src.Len() >= 2 && src.At(1) == 'u' {
		return 6
	}
	return 2
}

// Decode decodes a single complete escape sequence, such as `\n` or
// `\u0041`, and returns its unescaped content. An invalid escape decodes
// to the Unicode replacement rune.
func Decode(seq mem.RO) []byte { return appendEscape(nil, seq) }

// appendEscape appends the unescaped content of the escape sequence seq to
// dec and returns the result.
func appendEscape(dec []byte, seq mem.RO) []byte {
	putRune := func(r rune) []byte {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		return append(dec, buf[:n]...)
	}
	if seq.Len() < 2 || seq.At(0) != '\\' {
		return putRune(utf8.RuneError)
	}
	switch c := seq.At(1); c {
	case '"', '\\', '/':
		return append(dec, c)
	case 'b':
		return append(dec, '\b')
	case 'f':
		return append(dec, '\f')
	case 'n':
		return append(dec, '\n')
	case 'r':
		return append(dec, '\r')
	case 't':
		return append(dec, '\t')
	case 'u':
		if seq.Len() < 6 {
			return putRune(utf8.RuneError)
		}
		v, err := parseHex(seq.Slice(2, 6))
		if err != nil {
			return putRune(utf8.RuneError)
		}
		return putRune(rune(v))
	default:
		return putRune(utf8.RuneError)
	}
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
