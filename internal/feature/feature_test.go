package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertronika/copris-go/internal/copris"
)

func TestLoadFromHeadingExample(t *testing.T) {
	syms := NewTable()
	n, err := LoadFrom(strings.NewReader("F_H1_ON = 0x1B 0x21 0x30\nF_H1_OFF = 0x1B 0x21 0x00\n"), "test", syms)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	e, ok := syms.Lookup("F_H1_ON")
	require.True(t, ok)
	assert.Equal(t, "\x1B\x21\x30", string(e.Bytes()))
}

func TestMissingPairFails(t *testing.T) {
	syms := NewTable()
	_, err := LoadFrom(strings.NewReader("F_BOLD_ON = 0x1B 0x45\n"), "test", syms)
	require.ErrorIs(t, err, copris.ErrMissingPair)
	assert.Contains(t, err.Error(), "F_BOLD_ON")
	assert.Contains(t, err.Error(), "F_BOLD_OFF")
}

func TestForwardReferenceFails(t *testing.T) {
	syms := NewTable()
	_, err := LoadFrom(strings.NewReader("C_FOO = C_BAR\nC_BAR = 0x41\n"), "test", syms)
	require.ErrorIs(t, err, copris.ErrUndefinedSymbol)
}

func TestAtSentinelSatisfiesPairing(t *testing.T) {
	syms := NewTable()
	n, err := LoadFrom(strings.NewReader("F_BOLD_ON = @\nF_BOLD_OFF = @\n"), "test", syms)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	on, _ := syms.Lookup("F_BOLD_ON")
	assert.True(t, on.Empty(), "expected '@' to normalize to empty after pair validation")

	off, _ := syms.Lookup("F_BOLD_OFF")
	assert.True(t, off.Empty(), "both sides of a mutual-'@' pair must normalize, not just the first one validated")
}

func TestReservedNameRejected(t *testing.T) {
	syms := NewTable()
	_, err := LoadFrom(strings.NewReader("C_NO_MARKDOWN = 1\n"), "test", syms)
	require.ErrorIs(t, err, copris.ErrReservedName)
}

func TestUnknownNameRejected(t *testing.T) {
	syms := NewTable()
	_, err := LoadFrom(strings.NewReader("X_UNKNOWN = 1\n"), "test", syms)
	require.ErrorIs(t, err, copris.ErrUnknownName)
}

func TestOverwriteCustomCommandSucceeds(t *testing.T) {
	syms := NewTable()
	_, err := LoadFrom(strings.NewReader("C_BOLD = 0x1B 0x45\n"), "test", syms)
	require.NoError(t, err)

	_, err = LoadFrom(strings.NewReader("C_BOLD = 0x1B 0x46\n"), "test", syms)
	require.NoError(t, err)

	e, _ := syms.Lookup("C_BOLD")
	assert.Equal(t, "\x1B\x46", string(e.Bytes()), "expected silent overwrite")
}
