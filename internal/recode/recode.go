// Package recode walks a byte buffer one codepoint at a time, replacing
// each with its mapped byte sequence from an encoding table. Grounded
// on original_source/src/recode.c.
package recode

import (
	"github.com/bertronika/copris-go/internal/symtab"
	"github.com/bertronika/copris-go/internal/utf8x"
)

// Recode returns a new buffer with every codepoint in text replaced by
// its entry in syms, if one exists; codepoints without a mapping pass
// through unchanged. warnUnmapped is true if any multi-byte codepoint
// without a mapping survived to the output, so the caller can warn that
// raw multibyte output was produced.
func Recode(text []byte, syms *symtab.Table) (out []byte, warnUnmapped bool) {
	out = make([]byte, 0, len(text))

	for i := 0; i < len(text); {
		var codepoint []byte
		if utf8x.IsMultibyte(text[i]) {
			n := utf8x.CodepointLength(text[i])
			if i+n > len(text) {
				n = len(text) - i
			}
			codepoint = text[i : i+n]
		} else {
			codepoint = text[i : i+1]
		}

		if e, ok := syms.Lookup(string(codepoint)); ok {
			out = append(out, e.Bytes()...)
		} else {
			out = append(out, codepoint...)
			if len(codepoint) > 1 {
				warnUnmapped = true
			}
		}

		i += len(codepoint)
	}

	return out, warnUnmapped
}
