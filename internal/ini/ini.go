// Package ini is a minimal scanner for the INI dialect spec.md §6
// describes: `name = value` entries, `;` or `#` full-line comments,
// sections accepted but ignored, and whitespace trimmed around `=`. The
// `\e` escape standing in for a literal equals sign in a name is not
// interpreted here; names are passed to the caller as written. Grounded on the
// `inih` library's parsing contract as exercised by
// original_source/src/feature.c and recode.c, not on ltick-go-ini (see
// SPEC_FULL.md §3 for why that example doesn't fit this grammar).
package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry is one parsed `name = value` line, with its 1-based source line
// number for error reporting.
type Entry struct {
	Name  string
	Value string
	Line  int
}

// ParseError names the offending line; callers add the file name.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Handler is called for each parsed entry. Returning an error aborts
// parsing; the error is wrapped in a *ParseError carrying the line
// number unless it already is one.
type Handler func(entry Entry) error

// Parse scans r line by line, calling handler for each name/value entry.
// Blank lines, full-line `;`/`#` comments, and `[section]` headers are
// skipped silently.
func Parse(r io.Reader, handler Handler) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}

		name, value, err := splitEntry(line)
		if err != nil {
			return &ParseError{Line: lineNo, Msg: err.Error()}
		}

		if err := handler(Entry{Name: name, Value: value, Line: lineNo}); err != nil {
			if pe, ok := err.(*ParseError); ok {
				return pe
			}
			return &ParseError{Line: lineNo, Msg: err.Error()}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ini: reading input: %w", err)
	}
	return nil
}

// splitEntry splits "name = value" on the first '='. Escape
// interpretation (e.g. encoding.go's "\e" standing for a literal '=') is
// left to the caller, since it's specific to one loader, not the
// grammar itself.
func splitEntry(line string) (name, value string, err error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", fmt.Errorf("expected 'name = value', got %q", line)
	}

	name = strings.TrimSpace(line[:eq])
	value = strings.TrimSpace(line[eq+1:])

	if name == "" || value == "" {
		return "", "", fmt.Errorf("entry has either no name or no value")
	}

	return name, value, nil
}
