//go:build !unix

package window

import (
	"errors"
)

// File is a file-backed window. Mapping a framebuffer needs a unix host, so
// on other platforms OpenFile always fails.
type File struct {
	geom Geometry
}

func OpenFile(path string, geom Geometry) (*File, error) {
	return nil, errors.ErrUnsupported
}

func (w *File) Fd() uintptr {
	return InvalidFd
}

func (w *File) Path() (string, error) {
	return w.geom.String(), nil
}

func (w *File) Sync() error {
	return errors.ErrUnsupported
}

func (w *File) Geometry() Geometry {
	return w.geom
}

func (w *File) Name() string {
	return ""
}

func (w *File) Resize(width, height int) error {
	return errors.ErrUnsupported
}

func (w *File) Close() error {
	return nil
}
