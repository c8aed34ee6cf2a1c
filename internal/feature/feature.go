// Package feature loads the printer feature file: an INI document that
// sets well-known F_*/S_* formatting and session commands, or declares
// new C_* user macros. Grounded on original_source/src/feature.c and
// printer_commands.h.
package feature

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bertronika/copris-go/internal/copris"
	"github.com/bertronika/copris-go/internal/ini"
	"github.com/bertronika/copris-go/internal/symtab"
	"github.com/bertronika/copris-go/internal/value"
)

// WellKnownCommands lists every F_* formatting pair and S_* session
// command the feature table is pre-populated with, in the order
// original_source/src/printer_commands.h defines them.
var WellKnownCommands = []string{
	"F_BOLD_ON", "F_BOLD_OFF",
	"F_ITALIC_ON", "F_ITALIC_OFF",
	"F_H1_ON", "F_H1_OFF",
	"F_H2_ON", "F_H2_OFF",
	"F_H3_ON", "F_H3_OFF",
	"F_H4_ON", "F_H4_OFF",
	"F_BLOCKQUOTE_ON", "F_BLOCKQUOTE_OFF",
	"F_INLINE_CODE_ON", "F_INLINE_CODE_OFF",
	"F_CODE_BLOCK_ON", "F_CODE_BLOCK_OFF",
	"F_LINK_ON", "F_LINK_OFF",

	"S_BEFORE_TEXT", "S_AFTER_TEXT",
	"S_AT_STARTUP", "S_AT_SHUTDOWN",
}

// reservedNames may never be assigned in a feature file.
var reservedNames = map[string]bool{
	"C_NO_MARKDOWN": true,
	"C_NO_COMMANDS": true,
}

// NewTable returns a feature table pre-populated with every well-known
// name carrying an empty value, matching feature.c's
// initialise_commands.
func NewTable() *symtab.Table {
	t := symtab.New()
	for _, name := range WellKnownCommands {
		t.Insert(name)
	}
	return t
}

// Load reads the feature file at path, populating syms (normally one
// returned by NewTable). It returns the number of entries the file
// assigned, well-known names and C_* commands alike.
func Load(path string, syms *symtab.Table) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening printer feature file %q: %w", path, err)
	}
	defer f.Close()

	return LoadFrom(f, path, syms)
}

// LoadFrom reads a feature document from r into syms. name is used only
// for error messages.
func LoadFrom(r io.Reader, name string, syms *symtab.Table) (int, error) {
	count := 0

	err := ini.Parse(r, func(e ini.Entry) error {
		upper := strings.ToUpper(e.Name)

		if reservedNames[upper] {
			return &ini.ParseError{Line: e.Line, Msg: fmt.Sprintf("%v: %q", copris.ErrReservedName, e.Name)}
		}

		entry, found := syms.Lookup(e.Name)
		if !found {
			if !strings.HasPrefix(e.Name, "C_") {
				return &ini.ParseError{Line: e.Line, Msg: fmt.Sprintf("%v: %q is not a known name; custom commands must be prefixed with 'C_'", copris.ErrUnknownName, e.Name)}
			}
			entry, _ = syms.Insert(e.Name)
		}

		if e.Value == "@" {
			if err := entry.SetBytes([]byte{'@'}); err != nil {
				return &ini.ParseError{Line: e.Line, Msg: err.Error()}
			}
			count++
			return nil
		}

		bytes, err := value.ParseAllToCommands(e.Value, syms, symtab.MaxValueLen)
		if err != nil {
			return &ini.ParseError{Line: e.Line, Msg: fmt.Sprintf("command %q: %v", e.Name, err)}
		}

		if err := entry.SetBytes(bytes); err != nil {
			return &ini.ParseError{Line: e.Line, Msg: err.Error()}
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%q: %w", name, err)
	}

	if count > 0 {
		if err := validatePairs(syms); err != nil {
			return 0, fmt.Errorf("%q: %w", name, err)
		}
	}

	return count, nil
}

// validatePairs ensures every F_*_ON with a non-empty value has a
// matching, non-empty F_*_OFF, and vice versa. A "@" sentinel
// ("defined empty") satisfies pairing and is normalized to an empty
// value once confirmed, matching feature.c's validate_command_pairs.
func validatePairs(syms *symtab.Table) error {
	for _, name := range WellKnownCommands {
		if !strings.HasPrefix(name, "F_") {
			continue
		}

		isOn := strings.HasSuffix(name, "_ON")
		if !isOn && !strings.HasSuffix(name, "_OFF") {
			continue
		}

		entry, ok := syms.Lookup(name)
		if !ok || entry.Empty() {
			continue // not user-defined, nothing to pair
		}

		var pairName string
		if isOn {
			pairName = strings.TrimSuffix(name, "_ON") + "_OFF"
		} else {
			pairName = strings.TrimSuffix(name, "_OFF") + "_ON"
		}

		pair, ok := syms.Lookup(pairName)
		if !ok || pair.Empty() {
			return fmt.Errorf("%w: %q is missing its pair %q", copris.ErrMissingPair, name, pairName)
		}

		normalizeSentinel(entry)
		normalizeSentinel(pair)
	}
	return nil
}

// normalizeSentinel clears e's value once its pairing is confirmed, if
// it still holds the literal "@" placeholder byte. Both sides of a
// pair are normalized in the same iteration: WellKnownCommands lists
// _ON right before _OFF, and if only _ON were cleared, the loop's later
// visit to _OFF would find an empty _ON and report a missing pair.
func normalizeSentinel(e *symtab.Entry) {
	if e.Len == 1 && e.Value[0] == '@' {
		e.Len = 0
	}
}

// Dump writes a commented feature-file template listing every
// well-known name with a blank value, matching feature.c's
// dump_printer_feature_commands.
func Dump(w io.Writer, version string) error {
	fmt.Fprintf(w, "# Printer feature command listing. Generated by COPRIS-Go %s\n\n", version)
	fmt.Fprintln(w, "# Define your custom commands here. You can use them in categories below. Examples:")
	fmt.Fprintln(w, "#  C_UNDERLINE_ON = 0x1B 0x2D 0x31")
	fmt.Fprintln(w, "#  C_RESET_PRINTER = C_MARGIN_3CM C_SIZE_10CPI  ; both must be previously defined")
	fmt.Fprintln(w)

	prefix := byte(0)
	for _, name := range WellKnownCommands {
		if name[0] != prefix {
			prefix = name[0]
			switch prefix {
			case 'F':
				fmt.Fprintln(w, "# Text formatting commands; both parts of a pair must be defined.")
			case 'S':
				fmt.Fprintln(w, "\n# Session commands; used before and after printing received text,")
				fmt.Fprintln(w, "# or when copris-go starts and before it exits.")
			}
		}
		fmt.Fprintf(w, "; %s = \n", name)
	}
	fmt.Fprintln(w)
	return nil
}
