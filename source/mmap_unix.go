//go:build unix

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps the file read-only. Zero-length files are not mappable
// and fall back to an owned slice.
func mapFile(file *os.File, size int) ([]byte, bool) {
	if size == 0 {
		return nil, false
	}
	text, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false
	}
	return text, true
}

func unmapFile(text []byte) error {
	return unix.Munmap(text)
}
