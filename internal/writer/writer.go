// Package writer sends converted text to its final destination:
// standard output, a plain file opened in append mode, or a character
// device put into raw mode first. Grounded on
// original_source/src/writer.c's copris_write.
package writer

import (
	"fmt"
	"os"

	"github.com/bertronika/copris-go/internal/copris"
)

// Write appends data to dest, or to stdout if dest is empty. If dest
// names a character device, it's switched to raw mode (see
// termios_linux.go) before the write.
func Write(dest string, data []byte) error {
	if dest == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: writing to stdout: %v", copris.ErrIO, err)
		}
		return nil
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %q for writing: %v", copris.ErrIO, dest, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		if err := setRawMode(f.Fd()); err != nil {
			// Not fatal: a device COPRIS can't put into raw mode can
			// still be written to, just with whatever tty settings
			// were already in place.
			fmt.Fprintf(os.Stderr, "copris: could not set raw mode on %q: %v\n", dest, err)
		}
	}

	n, err := f.Write(data)
	if err != nil {
		return fmt.Errorf("%w: writing to %q: %v", copris.ErrIO, dest, err)
	}
	if n < len(data) {
		return fmt.Errorf("%w: short write to %q (%d of %d bytes)", copris.ErrIO, dest, n, len(data))
	}

	return nil
}
