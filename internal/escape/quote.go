// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); {
		c := src.At(i)
		if c >= utf8.RuneSelf {
			// Multibyte runes never require escaping.
			_, n := mem.DecodeRune(src.SliceFrom(i))
			if n == 0 {
				n = 1
			}
			buf = mem.Append(buf, src.Slice(i, i+n))
			i += n
			continue
		}
		switch {
		case c == '\\' || c == '"':
			buf = append(buf, '\\', c)
		case c < ' ':
			if b := controlEsc[c]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&15])
			}
		default:
			buf = append(buf, c)
		}
		i++
	}
	return buf
}
