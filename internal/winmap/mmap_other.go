//go:build !unix

package winmap

import (
	"errors"
	"os"
)

var munmap = func([]byte) error {
	return errors.ErrUnsupported
}

func PageSize() int {
	return os.Getpagesize()
}

func mmap(uintptr, int) ([]byte, error) {
	return nil, errors.ErrUnsupported
}
