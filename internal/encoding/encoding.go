// Package encoding loads the character-encoding file: an INI document
// mapping single UTF-8 characters to replacement byte sequences, used
// by internal/recode to adapt input for printers that expect legacy
// codepages. Grounded on original_source/src/recode.c.
package encoding

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bertronika/copris-go/internal/copris"
	"github.com/bertronika/copris-go/internal/ini"
	"github.com/bertronika/copris-go/internal/symtab"
	"github.com/bertronika/copris-go/internal/value"
)

// Load reads the encoding file at path into a new symbol table, keyed
// by the single character each entry recodes. It returns the number of
// definitions loaded.
func Load(path string) (*symtab.Table, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening encoding file %q: %w", path, err)
	}
	defer f.Close()

	return LoadFrom(f, path)
}

// LoadFrom reads an encoding document from r. name is used only for
// error messages.
func LoadFrom(r io.Reader, name string) (*symtab.Table, int, error) {
	syms := symtab.New()
	count := 0

	err := ini.Parse(r, func(e ini.Entry) error {
		key, err := normalizeKey(e.Name)
		if err != nil {
			return &ini.ParseError{Line: e.Line, Msg: err.Error()}
		}

		if e.Value == "@" {
			if err := syms.Set(key, nil); err != nil {
				return &ini.ParseError{Line: e.Line, Msg: err.Error()}
			}
			count++
			return nil
		}

		bytes, err := value.ParseNumberString(e.Value, symtab.MaxValueLen)
		if err != nil {
			return &ini.ParseError{Line: e.Line, Msg: fmt.Sprintf("value %q: %v", e.Value, err)}
		}

		if err := syms.Set(key, bytes); err != nil {
			return &ini.ParseError{Line: e.Line, Msg: err.Error()}
		}
		count++
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%q: %w", name, err)
	}

	return syms, count, nil
}

// normalizeKey validates that name is exactly one character, or a
// backslash-escaped single character, with "\e"/"\E" standing for a
// literal '=' (the INI grammar's own delimiter has no other escape).
func normalizeKey(name string) (string, error) {
	if name[0] == '\\' {
		rest := name[1:]
		if utf8.RuneCountInString(rest) != 1 {
			return "", fmt.Errorf("%w: %q has more than one character", copris.ErrAmbiguousName, name)
		}
		if rest == "e" || rest == "E" {
			return "=", nil
		}
		return rest, nil
	}

	if utf8.RuneCountInString(name) != 1 {
		return "", fmt.Errorf("%w: %q has more than one character", copris.ErrAmbiguousName, name)
	}
	return name, nil
}
