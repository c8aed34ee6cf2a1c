// Package session wraps outgoing text with the S_* session commands
// read from the printer feature table. Grounded on
// original_source/src/feature.c's apply_session_commands.
package session

import "github.com/bertronika/copris-go/internal/symtab"

// State names the point in a print cycle a session command applies to.
type State int

const (
	// Print wraps a single chunk of received text: S_BEFORE_TEXT is
	// prepended, S_AFTER_TEXT is appended.
	Print State = iota
	// Startup emits S_AT_STARTUP once, before any stream is handled.
	Startup
	// Shutdown emits S_AT_SHUTDOWN once, as the server exits.
	Shutdown
)

// Wrap applies syms' session commands for state to text, returning the
// resulting buffer. Startup and Shutdown ignore text and return only
// their respective command's value; Print prepends S_BEFORE_TEXT and
// appends S_AFTER_TEXT around text.
func Wrap(text []byte, syms *symtab.Table, state State) []byte {
	switch state {
	case Startup:
		return valueOf(syms, "S_AT_STARTUP")
	case Shutdown:
		return valueOf(syms, "S_AT_SHUTDOWN")
	}

	before := valueOf(syms, "S_BEFORE_TEXT")
	after := valueOf(syms, "S_AFTER_TEXT")

	out := make([]byte, 0, len(before)+len(text)+len(after))
	out = append(out, before...)
	out = append(out, text...)
	out = append(out, after...)
	return out
}

func valueOf(syms *symtab.Table, name string) []byte {
	e, ok := syms.Lookup(name)
	if !ok || e.Empty() {
		return nil
	}
	return e.Bytes()
}
