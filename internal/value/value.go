// Package value implements the number/value parser shared by the
// encoding and feature loaders: a whitespace-separated token stream of
// base-8/10/16 byte literals and (for feature values) C_/F_ symbol
// references, packed into a byte sequence. Grounded on
// original_source/src/parse_value.c.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bertronika/copris-go/internal/copris"
	"github.com/bertronika/copris-go/internal/symtab"
)

// ParseNumberString parses value as whitespace-separated base-8/10/16
// byte literals (strconv base 0, like C's strtol(..., 0) used by the
// original), appending the parsed bytes. It fails if any token isn't a
// valid number, any literal exceeds 255, or the result would exceed
// capacity bytes.
func ParseNumberString(value string, capacity int) ([]byte, error) {
	var out []byte
	for _, tok := range strings.Fields(value) {
		b, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		if len(out)+1 > capacity {
			return nil, fmt.Errorf("%w: value %q is overlong", copris.ErrOverlong, value)
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseAllToCommands parses value as whitespace-separated tokens, where
// each token is either a numeric literal (see ParseNumberString) or a
// C_/F_-prefixed symbol reference resolved against syms. Symbol
// references must already carry a non-empty value (no forward
// references).
func ParseAllToCommands(value string, syms *symtab.Table, capacity int) ([]byte, error) {
	var out []byte
	for _, tok := range strings.Fields(value) {
		if len(tok) >= 2 && (tok[0] == 'C' || tok[0] == 'F') && tok[1] == '_' {
			e, ok := syms.Lookup(tok)
			if !ok || e.Empty() {
				return nil, fmt.Errorf("%w: %q", copris.ErrUndefinedSymbol, tok)
			}
			if len(out)+e.Len > capacity {
				return nil, fmt.Errorf("%w: value %q is overlong", copris.ErrOverlong, value)
			}
			out = append(out, e.Bytes()...)
			continue
		}

		b, err := parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		if len(out)+1 > capacity {
			return nil, fmt.Errorf("%w: value %q is overlong", copris.ErrOverlong, value)
		}
		out = append(out, b)
	}
	return out, nil
}

// parseLiteral parses a single base-8/10/16 token into one byte.
func parseLiteral(tok string) (byte, error) {
	n, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unrecognised token %q", copris.ErrParseError, tok)
	}
	if n > 255 {
		return 0, fmt.Errorf("%w: value %q is out of bounds", copris.ErrOutOfRange, tok)
	}
	return byte(n), nil
}
