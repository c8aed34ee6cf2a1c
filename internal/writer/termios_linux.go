//go:build linux

// Character-device raw-mode setup, adapted from
// Daedaluz-goserial/port_linux.go and ioctl_linux.go's Termios2/TCGETS2/
// TCSETS2 handling. Not part of original_source: COPRIS's C original
// wrote to a character device with whatever mode the OS left it in;
// putting the line into raw mode before writing is this port's
// addition, so print data isn't mangled by the tty layer's echo,
// canonical processing or CR/LF translation.
package writer

import (
	"fmt"
	"unsafe"

	ioctl "github.com/daedaluz/goioctl"
)

type iflag uint32
type oflag uint32
type cflag uint32
type lflag uint32

const (
	ignbrk iflag = 0000001
	brkint iflag = 0000002
	parmrk iflag = 0000010
	istrip iflag = 0000040
	inlcr  iflag = 0000100
	igncr  iflag = 0000200
	icrnl  iflag = 0000400
	ixon   iflag = 0002000
)

const opost oflag = 0000001

const (
	csize  cflag = 0000060
	cs8    cflag = 0000060
	parenb cflag = 0000400
)

const (
	isig   lflag = 0000001
	icanon lflag = 0000002
	echo   lflag = 0000010
	echonl lflag = 0000100
	iexten lflag = 0100000
)

// termios2 mirrors struct termios2 from linux/termios.h, as used by
// TCGETS2/TCSETS2 on Linux.
type termios2 struct {
	Iflag  iflag
	Oflag  oflag
	Cflag  cflag
	Lflag  lflag
	Line   byte
	Cc     [19]byte
	ISpeed uint32
	OSpeed uint32
}

var (
	tcgets2 = ioctl.IOR('T', 0x2A, unsafe.Sizeof(termios2{}))
	tcsets2 = ioctl.IOW('T', 0x2B, unsafe.Sizeof(termios2{}))
)

func (t *termios2) makeRaw() {
	t.Iflag &^= ignbrk | brkint | parmrk | istrip | inlcr | igncr | icrnl | ixon
	t.Oflag &^= opost
	t.Lflag &^= echo | echonl | icanon | isig | iexten
	t.Cflag &^= csize | parenb
	t.Cflag |= cs8
}

// setRawMode puts the character device at fd into raw mode: no
// canonical line buffering, no echo, no output post-processing. It's
// a best-effort step; a plain file or socket passed in by mistake
// simply fails the ioctl and is left untouched by the caller.
func setRawMode(fd uintptr) error {
	var t termios2
	if err := ioctl.Ioctl(fd, tcgets2, uintptr(unsafe.Pointer(&t))); err != nil {
		return fmt.Errorf("TCGETS2: %w", err)
	}

	t.makeRaw()

	if err := ioctl.Ioctl(fd, tcsets2, uintptr(unsafe.Pointer(&t))); err != nil {
		return fmt.Errorf("TCSETS2: %w", err)
	}
	return nil
}
