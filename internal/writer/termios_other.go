//go:build !linux

package writer

import "errors"

func setRawMode(fd uintptr) error {
	return errors.New("raw mode is only supported on linux character devices")
}
