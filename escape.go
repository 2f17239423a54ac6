package stencil

import (
	"strconv"
	"unicode/utf8"
)

// Escape replaces every code point above 127, and each of the characters `"`, `'`, `<`, `>` and `&`, with a decimal
// numeric character reference such as "&#38;".  Other characters are left alone.  Escape is applied once, when a
// Text node is constructed; escaping an escaped string escapes its ampersands again.
//
// Invalid UTF-8 bytes are decoded as utf8.RuneError and therefore become "&#65533;".
func Escape(text string) string {
	return string(appendEscaped(make([]byte, 0, len(text)), text))
}

func appendEscaped(buf []byte, text string) []byte {
	for len(text) > 0 {
		r, n := utf8.DecodeRuneInString(text)
		switch {
		case r > 127, r == '"', r == '\'', r == '<', r == '>', r == '&':
			buf = append(buf, '&', '#')
			buf = strconv.AppendInt(buf, int64(r), 10)
			buf = append(buf, ';')
		default:
			buf = append(buf, text[:n]...)
		}
		text = text[n:]
	}
	return buf
}
