package reader

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertronika/copris-go/internal/config"
)

func TestReadConnBasic(t *testing.T) {
	ln, err := Listen(0)
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	go func() {
		c, err := net.Dial("tcp", addr.String())
		if err != nil {
			return
		}
		c.Write([]byte("hello"))
		c.Close()
	}()

	conn, err := ln.AcceptTCP()
	require.NoError(t, err)
	defer conn.Close()

	buf, stats, err := ReadConn(conn, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
	assert.EqualValues(t, 5, stats.Sum)
	assert.Equal(t, 1, stats.Chunks)
	assert.False(t, stats.SizeLimitActive, "limit should not have fired")
}

func TestReadConnDiscardOverLimit(t *testing.T) {
	ln, err := Listen(0)
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	go func() {
		c, err := net.Dial("tcp", addr.String())
		if err != nil {
			return
		}
		defer c.Close()
		c.Write([]byte("hello world"))
	}()

	conn, err := ln.AcceptTCP()
	require.NoError(t, err)
	defer conn.Close()

	cfg := config.DefaultConfig()
	cfg.Limit = 3

	buf, stats, err := ReadConn(conn, cfg)
	require.NoError(t, err)
	assert.Empty(t, buf, "expected discarded buffer")
	assert.True(t, stats.SizeLimitActive)
	assert.Equal(t, stats.Sum, stats.Discarded)
}

func TestReadConnTruncateOverLimit(t *testing.T) {
	ln, err := Listen(0)
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	go func() {
		c, err := net.Dial("tcp", addr.String())
		if err != nil {
			return
		}
		defer c.Close()
		c.Write([]byte("hello world"))
	}()

	conn, err := ln.AcceptTCP()
	require.NoError(t, err)
	defer conn.Close()

	cfg := config.DefaultConfig()
	cfg.Limit = 5
	cfg.Cutoff = config.Truncate

	buf, stats, err := ReadConn(conn, cfg)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf), "want truncated to limit")
	assert.True(t, stats.SizeLimitActive)
	assert.Equal(t, stats.Sum-5, stats.Discarded)
}

func TestReadConnTruncateSplitsMultibyteCodepoint(t *testing.T) {
	ln, err := Listen(0)
	require.NoError(t, err)
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	payload := []byte("aaBBcc€") // 9 bytes; limit=8 cuts the 3-byte € lead at index 6
	go func() {
		c, err := net.Dial("tcp", addr.String())
		if err != nil {
			return
		}
		defer c.Close()
		c.Write(payload)
	}()

	conn, err := ln.AcceptTCP()
	require.NoError(t, err)
	defer conn.Close()

	cfg := config.DefaultConfig()
	cfg.Limit = 8
	cfg.Cutoff = config.Truncate

	buf, stats, err := ReadConn(conn, cfg)
	require.NoError(t, err)
	assert.Equal(t, "aaBBcc", string(buf))
	assert.EqualValues(t, 9, stats.Sum)
	assert.EqualValues(t, 3, stats.Discarded)
}

func TestReadStdinBasic(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		w.Write([]byte("piped text"))
		w.Close()
	}()

	buf, stats, err := ReadStdin(r)
	require.NoError(t, err)
	assert.Equal(t, "piped text", string(buf))
	assert.EqualValues(t, len("piped text"), stats.Sum)
}

func TestReadStdinNoInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	w.Close()

	_, _, err = ReadStdin(r)
	assert.Error(t, err, "expected ErrNoInput for an immediately-closed pipe")
}
