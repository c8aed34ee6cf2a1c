package utf8x

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodepointLength(t *testing.T) {
	cases := []struct {
		b    byte
		want int
	}{
		{'a', 1},
		{0xC3, 2}, // é lead byte
		{0xE2, 3}, // € lead byte
		{0xF0, 4},
		{0x80, 1}, // continuation byte, degrades to 1
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CodepointLength(c.b), "CodepointLength(%#x)", c.b)
	}
}

func TestIsContinuation(t *testing.T) {
	assert.True(t, IsContinuation(0x80))
	assert.False(t, IsContinuation('a'))
}

func TestTerminateIncomplete(t *testing.T) {
	// "aaBBcc€" truncated to 8 bytes cuts the 3-byte € lead at position 6.
	full := []byte("aaBBcc€")
	cut := full[:8]
	out, truncated := TerminateIncomplete(cut)
	require.True(t, truncated)
	assert.Equal(t, "aaBBcc", string(out))
}

func TestTerminateIncompleteNoop(t *testing.T) {
	in := []byte("hello")
	out, truncated := TerminateIncomplete(in)
	require.False(t, truncated)
	assert.Equal(t, "hello", string(out))
}

func TestCountCodepoints(t *testing.T) {
	assert.Equal(t, 3, CountCodepoints([]byte("abc"), 10))
}
