// Package reader implements COPRIS's two inbound byte sources: a
// byte-bounded TCP stream reader and a stdin reader, both tracking
// chunk/byte statistics the way the original does. Grounded on
// original_source/src/read_socket.c and original_source/src/read_stdin.c.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/bertronika/copris-go/internal/config"
	"github.com/bertronika/copris-go/internal/copris"
	"github.com/bertronika/copris-go/internal/utf8x"
)

// backlog matches original_source's BACKLOG constant for listen(2).
const backlog = 2

// Stats tracks what one ReadConn or ReadStdin call observed, mirroring
// original_source's struct Stats.
type Stats struct {
	Chunks          int
	Sum             int64
	SizeLimitActive bool
	Discarded       int64
}

// limitNotice is written verbatim to a peer that exceeded its byte
// limit, matching spec.md §4.10's fixed wire message.
const limitNotice = "copris: You have sent too much text. Terminating connection.\n"

// Listen opens a passive TCP socket on port, as
// original_source/src/read_socket.c's copris_socket_listen does. The
// socket gets the Go runtime's default listen backlog; the backlog
// constant above is not passed to listen(2).
func Listen(port int) (*net.TCPListener, error) {
	ln, err := net.ListenTCP("tcp", &net.TCPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("%w: listen on port %d: %v", copris.ErrIO, port, err)
	}
	return ln, nil
}

// ReadConn reads conn to completion (until the peer closes the
// connection), applying cfg's byte limit. If the limit is exceeded,
// the fixed notice is written back to conn before returning. Matches
// spec.md §5's "no timeouts" baseline: this blocks on conn.Read with
// no read deadline.
func ReadConn(conn *net.TCPConn, cfg config.Config) ([]byte, Stats, error) {
	var buf []byte
	var stats Stats

	chunk := make([]byte, config.BufSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			stats.Chunks++
			stats.Sum += int64(n)

			if cfg.Limit > 0 && stats.Sum > cfg.Limit {
				buf = applyByteLimit(buf, conn, &stats, cfg)
				break
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return buf, stats, fmt.Errorf("%w: reading from socket: %v", copris.ErrIO, err)
		}
	}

	return buf, stats, nil
}

func applyByteLimit(buf []byte, w io.Writer, stats *Stats, cfg config.Config) []byte {
	_, _ = io.WriteString(w, limitNotice)
	stats.SizeLimitActive = true

	if cfg.Cutoff == config.Truncate {
		cut := buf[:cfg.Limit]
		safe, _ := utf8x.TerminateIncomplete(cut)
		stats.Discarded = stats.Sum - int64(len(safe))
		return safe
	}

	stats.Discarded = stats.Sum
	return nil
}

// ReadStdin reads standard input to EOF byte-exactly, in BufSize
// chunks, printing an interactive hint if stdin is a terminal.
// Grounded on read_stdin.c's copris_handle_stdin/read_from_stdin.
func ReadStdin(stdin *os.File) ([]byte, Stats, error) {
	if fi, err := stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		fmt.Fprintln(os.Stderr, "copris: You are in text input mode (reading from stdin). "+
			"To stop reading, press Ctrl+D.")
	}

	var buf []byte
	var stats Stats

	r := bufio.NewReaderSize(stdin, config.BufSize)
	chunk := make([]byte, config.BufSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			stats.Chunks++
			stats.Sum += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return buf, stats, fmt.Errorf("%w: reading from stdin: %v", copris.ErrIO, err)
		}
	}

	if stats.Sum == 0 {
		return buf, stats, copris.ErrNoInput
	}

	return buf, stats, nil
}
