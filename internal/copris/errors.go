// Package copris collects the sentinel errors shared across the
// conversion pipeline's packages, mirroring the error categories of
// spec.md §7.
package copris

import "errors"

var (
	// ErrOutOfRange is returned when a parsed literal or configuration
	// value falls outside its allowed range (e.g. a byte value > 255,
	// a port outside 1..65535).
	ErrOutOfRange = errors.New("value out of range")

	// ErrParseError is returned when a token could not be parsed at all.
	ErrParseError = errors.New("parse error")

	// ErrUndefinedSymbol is returned when a symbol reference resolves to
	// a name that doesn't exist yet, or still carries an empty value
	// (the strict no-forward-reference rule).
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrOverlong is returned when a parsed value would exceed its
	// destination's capacity.
	ErrOverlong = errors.New("value too long")

	// ErrMissingPair is returned when a loaded feature table has an
	// F_*_ON without its F_*_OFF, or vice versa.
	ErrMissingPair = errors.New("missing formatting command pair")

	// ErrReservedName is returned when a feature file tries to assign
	// one of the reserved C_NO_MARKDOWN/C_NO_COMMANDS names.
	ErrReservedName = errors.New("name is reserved")

	// ErrUnknownName is returned when a feature file entry's name is
	// neither a well-known F_*/S_* name nor C_*-prefixed.
	ErrUnknownName = errors.New("unknown name")

	// ErrAmbiguousName is returned by the encoding loader when a name
	// has more than one character without a recognised escape.
	ErrAmbiguousName = errors.New("ambiguous multi-character name")

	// ErrNoInput is returned when stdin produced zero bytes before EOF.
	ErrNoInput = errors.New("no input received")

	// ErrIO wraps an underlying open/read/write/bind/listen/accept/close
	// failure; fatal for the current stream, non-fatal for the process
	// in daemon mode.
	ErrIO = errors.New("i/o error")
)
