//go:build unix

package winmap

import (
	"golang.org/x/sys/unix"
)

// munmap is a variable so tests can make teardown fail.
var munmap = unix.Munmap

// PageSize returns the platform page size.
func PageSize() int {
	return unix.Getpagesize()
}

func mmap(fd uintptr, length int) ([]byte, error) {
	return unix.Mmap(int(fd), 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}
