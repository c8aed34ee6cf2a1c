// Package vars implements the "COPRIS <cmd>" modeline directive and the
// $NAME variable substitution pass that runs after it. Grounded on
// original_source/src/parse_vars.c.
package vars

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bertronika/copris-go/internal/symtab"
	"github.com/bertronika/copris-go/internal/value"
)

// trailingPunctuation holds the characters preserved (and re-appended
// after expansion) when they trail a $NAME token.
const trailingPunctuation = `!"#%&'()*+,./:;<=>?@[\]^` + "`" + `{|}~`

// tokenSeparators bound a variable name: a space, tab or newline always
// ends it, ';' ends and consumes it.
const tokenSeparators = " \t\n;"

// StripModeline inspects the first line of text for a "COPRIS <cmd>"
// directive. If found, it is removed from the returned buffer
// regardless of whether its commands were understood. enableCommands
// and disableMarkdown report which recognized tokens were present.
// warning is non-empty if the modeline was present but empty or held
// only unrecognized tokens; it is empty (and flags are both false) if
// no modeline was found at all, in which case text is returned
// unchanged.
func StripModeline(text []byte) (rest []byte, enableCommands, disableMarkdown bool, warning string) {
	if len(text) < 6 || !strings.EqualFold(string(text[:6]), "COPRIS") {
		return text, false, false, ""
	}

	nl := bytes.IndexByte(text, '\n')
	var line []byte
	if nl < 0 {
		line = text[6:]
		rest = nil
	} else {
		line = text[6:nl]
		rest = append([]byte(nil), text[nl+1:]...)
	}

	if len(bytes.TrimSpace(line)) == 0 {
		return rest, false, false, "modeline is empty, ignoring it"
	}

	upper := strings.ToUpper(string(line))
	if strings.Contains(upper, "ENABLE-COMMAND") || strings.Contains(upper, "ENABLE-CMD") ||
		strings.Contains(upper, "ENABLE-VARIABLE") || strings.Contains(upper, "ENABLE-VAR") {
		enableCommands = true
	}
	if strings.Contains(upper, "DISABLE-MARKDOWN") || strings.Contains(upper, "DISABLE-MD") {
		disableMarkdown = true
	}

	if !enableCommands && !disableMarkdown {
		return rest, false, false, "modeline has unknown commands, ignoring it"
	}

	return rest, enableCommands, disableMarkdown, ""
}

// Substitute scans text for $-prefixed variables and replaces each per
// spec.md's rules, returning the resulting buffer together with any
// warnings about undefined or malformed variables. Text outside of
// variables is copied through byte for byte.
func Substitute(text []byte, syms *symtab.Table) ([]byte, []string) {
	var out []byte
	var warnings []string

	i := 0
	n := len(text)
	for i < n {
		dollar := bytes.IndexByte(text[i:], '$')
		if dollar < 0 {
			out = append(out, text[i:]...)
			break
		}
		out = append(out, text[i:i+dollar]...)
		i += dollar

		rel := bytes.IndexAny(text[i+1:], tokenSeparators)

		var tok []byte
		skip := 0
		if rel < 0 {
			tok = text[i:]
			i = n
		} else {
			tokEnd := i + 1 + rel
			tok = text[i:tokEnd]
			sep := text[tokEnd]

			switch {
			case len(tok) > 0 && tok[len(tok)-1] == '$':
				// "$NAME$" - trailing delimiter consumed, plus the separator
				tok = tok[:len(tok)-1]
				skip = 1
			case sep == ';':
				// "$NAME;" - terminator consumed
				skip = 1
			case len(tok) >= 2 && tok[1] == '#':
				// "$#comment" - discarded together with trailing whitespace
				skip = 1
			}
			i = tokEnd + skip
		}

		expanded, warn := expandToken(tok, syms)
		out = append(out, expanded...)
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	return out, warnings
}

// expandToken expands a single "$..." token (tok includes the leading
// '$' but excludes any terminator already consumed by the caller).
func expandToken(tok []byte, syms *symtab.Table) (expanded []byte, warning string) {
	body := tok[1:]
	if len(body) == 0 {
		return tok, ""
	}

	switch body[0] {
	case '#':
		return nil, ""
	case '$':
		// "$$..." - escaped dollar, the rest of the token is literal
		return append([]byte{'$'}, body[1:]...), ""
	}

	name := body
	var trail []byte

	i := len(name)
	for i > 0 && strings.IndexByte(trailingPunctuation, name[i-1]) >= 0 {
		i--
	}
	trail = name[i:]
	name = name[:i]

	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		b, err := value.ParseNumberString(string(name), 2)
		if err != nil {
			return append([]byte(nil), tok...), fmt.Sprintf("variable %q was skipped: %v", tok, err)
		}
		return append(b, trail...), ""
	}

	lookup := "C_" + string(name)
	e, ok := syms.Lookup(lookup)
	if !ok {
		return append([]byte(nil), tok...), fmt.Sprintf("found variable %q, but the command %q is not defined", tok, lookup)
	}

	return append(append([]byte(nil), e.Bytes()...), trail...), ""
}
