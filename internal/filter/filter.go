// Package filter implements the optional non-ASCII stripping pass.
// Grounded on original_source/src/filters.c's filter_non_ascii.
package filter

// StripNonASCII drops every byte that is neither ASCII-printable
// (isgraph: 0x21-0x7E) nor ASCII whitespace (space, tab, newline,
// vertical tab, form feed, carriage return), matching filter_non_ascii's
// isgraph(*text) || isspace(*text) keep condition. Multibyte UTF-8
// sequences are dropped byte by byte, same as the C original running
// in the "C" locale.
func StripNonASCII(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for _, b := range text {
		if isGraph(b) || isSpace(b) {
			out = append(out, b)
		}
	}
	return out
}

func isGraph(b byte) bool {
	return b > 0x20 && b < 0x7F
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
