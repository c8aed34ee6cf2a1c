package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertronika/copris-go/internal/clog"
	"github.com/bertronika/copris-go/internal/config"
	"github.com/bertronika/copris-go/internal/feature"
)

func newTestServer(t *testing.T, dest string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Destination = dest

	return &Server{
		Config:   cfg,
		Features: feature.NewTable(),
		Encoding: feature.NewTable(), // no single-character keys, so it recodes nothing
		Log:      clog.New(clog.Silent),
	}
}

func TestProcessStreamPlainText(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	srv := newTestServer(t, dest)

	require.NoError(t, srv.processStream([]byte("hello\n")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}

func TestProcessStreamModelineAndVariables(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	srv := newTestServer(t, dest)
	srv.Features.Set("C_BOLD", []byte{0x1B, 0x45})

	require.NoError(t, srv.processStream([]byte("COPRIS enable-vars\n$BOLD world\n")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	want := string([]byte{0x1B, 0x45}) + " world\n"
	assert.Equal(t, want, string(got))
}

func TestProcessStreamSessionCommandsWrap(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	srv := newTestServer(t, dest)
	srv.Features.Set("S_BEFORE_TEXT", []byte{0x01})
	srv.Features.Set("S_AFTER_TEXT", []byte{0x02})

	require.NoError(t, srv.processStream([]byte("hi")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	want := string([]byte{0x01}) + "hi" + string([]byte{0x02})
	assert.Equal(t, want, string(got))
}

func TestProcessStreamStripsNonASCIIWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	srv := newTestServer(t, dest)
	srv.Config.StripNonASCII = true

	require.NoError(t, srv.processStream([]byte("plačilo\n")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "plailo\n", string(got))
}

func TestProcessStreamKeepsNonASCIIByDefault(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	srv := newTestServer(t, dest)

	require.NoError(t, srv.processStream([]byte("plačilo\n")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "plačilo\n", string(got))
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Port = 70000
	_, err := New(cfg, clog.New(clog.Silent))
	assert.Error(t, err, "expected an error for an invalid config")
}
