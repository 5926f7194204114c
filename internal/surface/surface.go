// Package surface is a software pixel buffer presented into a window whose
// framebuffer is exposed as a mappable handle.
package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/bnema/softbuf/internal/fault"
	"github.com/bnema/softbuf/internal/logger"
	"github.com/bnema/softbuf/internal/window"
	"github.com/bnema/softbuf/internal/winmap"
)

var (
	ErrNilHandle     = errors.New("nil window handle")
	ErrInvalidHandle = errors.New("invalid window descriptor")
	ErrTooLarge      = errors.New("surface dimensions overflow")
	ErrPresented     = errors.New("buffer already presented")
)

// ConstructionError is returned when a surface cannot be built for a handle.
type ConstructionError struct {
	Err error
}

func (e *ConstructionError) Error() string {
	return "failed to create surface: " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Surface holds the client pixel store for one window. It is not safe for
// concurrent use.
type Surface struct {
	handle window.Handle
	width  uint32
	height uint32
	pixels []uint32
}

// New creates an empty surface for h. The handle is borrowed and must
// outlive the surface.
func New(h window.Handle) (*Surface, error) {
	if h == nil {
		return nil, &ConstructionError{Err: ErrNilHandle}
	}
	if h.Fd() == window.InvalidFd {
		return nil, &ConstructionError{Err: ErrInvalidHandle}
	}
	return &Surface{handle: h}, nil
}

// Resize records the size of the next frame. Zero is allowed. The pixel
// store is only adjusted when the next Buffer is taken.
func (s *Surface) Resize(width, height uint32) error {
	if width != 0 && uint64(height) > uint64(math.MaxInt/4)/uint64(width) {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	s.width = width
	s.height = height
	return nil
}

// Size returns the requested client size.
func (s *Surface) Size() (width, height uint32) {
	return s.width, s.height
}

// Buffer returns a view of the pixel store sized width*height. New pixels
// are zero; pixels that survive a resize keep their values at the same
// index.
func (s *Surface) Buffer() (*Buffer, error) {
	n := int(s.width) * int(s.height)
	switch {
	case len(s.pixels) < n:
		s.pixels = append(s.pixels, make([]uint32, n-len(s.pixels))...)
	case len(s.pixels) > n:
		s.pixels = s.pixels[:n]
	}
	return &Buffer{s: s, width: int(s.width), height: int(s.height)}, nil
}

// present copies a width x height frame into the window at its current size
// and tells the compositor to redraw.
func (s *Surface) present(pixels []uint32, width, height int) error {
	ww, wh := window.QuerySize(s.handle)

	rows, err := s.blit(ww, wh, pixels, width, height)
	if err != nil {
		return err
	}

	logger.Debug("present",
		"client", fmt.Sprintf("%dx%d", width, height),
		"window", fmt.Sprintf("%dx%d", ww, wh),
		"rows", rows)

	// The mapping is gone by now, so the compositor sees a finished frame.
	if err := s.handle.Sync(); err != nil {
		fault.Abort(fault.SyncFailure, fmt.Errorf("sync window: %w", err))
	}
	return nil
}

func (s *Surface) blit(ww, wh int, pixels []uint32, width, height int) (int, error) {
	m, err := winmap.Acquire(s.handle.Fd(), ww*wh*4)
	if err != nil {
		return 0, fmt.Errorf("failed to map window buffer: %w", err)
	}
	defer m.Release()

	dst := m.Pixels()[:ww*wh]
	return CopyCropped(dst, ww, wh, pixels, width, height), nil
}

// Fetch reads back the window framebuffer at the window's current size.
func (s *Surface) Fetch() (pixels []uint32, width, height int, err error) {
	width, height = window.QuerySize(s.handle)

	m, err := winmap.Acquire(s.handle.Fd(), width*height*4)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to map window buffer: %w", err)
	}
	defer m.Release()

	pixels = make([]uint32, width*height)
	copy(pixels, m.Pixels())
	return pixels, width, height, nil
}
