//go:build unix

package window

import (
	"fmt"
	"os"

	"github.com/bnema/softbuf/internal/logger"
	"github.com/bnema/softbuf/internal/winmap"
	"golang.org/x/sys/unix"
)

// File is a window whose framebuffer is a regular file. It plays the
// compositor's part: it owns the geometry and can be resized independently
// of any surface presenting into it.
type File struct {
	f    *os.File
	geom Geometry
}

// OpenFile opens (creating if needed) the framebuffer file at path and sizes
// it for geom.
func OpenFile(path string, geom Geometry) (*File, error) {
	if !Addressable(geom.Width, geom.Height) {
		return nil, fmt.Errorf("invalid window size %dx%d", geom.Width, geom.Height)
	}
	if geom.Scheme == "" {
		geom.Scheme = "orbital"
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open window buffer: %w", err)
	}

	w := &File{f: f, geom: geom}
	if err := w.grow(); err != nil {
		f.Close()
		return nil, err
	}

	logger.Debug("opened window buffer", "path", path, "desc", geom.String())
	return w, nil
}

// grow makes the file at least as long as the page-aligned framebuffer so
// every mapped page is backed.
func (w *File) grow() error {
	need := int64(winmap.AlignedSize(w.geom.BufferSize()))

	fi, err := w.f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat window buffer: %w", err)
	}
	if fi.Size() >= need {
		return nil
	}
	if err := w.f.Truncate(need); err != nil {
		return fmt.Errorf("failed to size window buffer: %w", err)
	}
	return nil
}

func (w *File) Fd() uintptr {
	return w.f.Fd()
}

func (w *File) Path() (string, error) {
	return w.geom.String(), nil
}

func (w *File) Sync() error {
	return unix.Fsync(int(w.f.Fd()))
}

// Geometry returns the window's current geometry.
func (w *File) Geometry() Geometry {
	return w.geom
}

// Name returns the framebuffer file path.
func (w *File) Name() string {
	return w.f.Name()
}

// Resize changes the window size from the server side.
func (w *File) Resize(width, height int) error {
	if !Addressable(width, height) {
		return fmt.Errorf("invalid window size %dx%d", width, height)
	}
	w.geom.Width = width
	w.geom.Height = height
	return w.grow()
}

func (w *File) Close() error {
	return w.f.Close()
}
