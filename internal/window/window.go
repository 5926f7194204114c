// Package window describes the window a surface presents into and the
// descriptor the display server uses to report its geometry.
package window

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bnema/softbuf/internal/logger"
)

// Handle is a borrowed reference to a display server window. It is never
// created or destroyed through this interface.
type Handle interface {
	// Fd returns the descriptor whose contents are the window framebuffer.
	Fd() uintptr
	// Path returns the window descriptor, scheme:flags/x/y/width/height/title.
	Path() (string, error)
	// Sync asks the compositor to redraw from the framebuffer.
	Sync() error
}

// InvalidFd is the descriptor value of a handle that refers to nothing.
const InvalidFd = ^uintptr(0)

// Geometry is the decoded form of a window descriptor.
type Geometry struct {
	Scheme string
	Flags  string
	X      int
	Y      int
	Width  int
	Height int
	Title  string
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s:%s/%d/%d/%d/%d/%s", g.Scheme, g.Flags, g.X, g.Y, g.Width, g.Height, g.Title)
}

// BufferSize is the framebuffer length in bytes at this geometry.
func (g Geometry) BufferSize() int {
	return g.Width * g.Height * 4
}

// ParseSize extracts width and height from a window descriptor. Missing or
// malformed fields come back as zero.
func ParseSize(desc string) (width, height int) {
	// orbital:flags/x/y/w/h/title; the title may contain more slashes
	parts := strings.SplitN(desc, "/", 6)
	if len(parts) > 3 {
		width = parseDim(parts[3])
	}
	if len(parts) > 4 {
		height = parseDim(parts[4])
	}
	return width, height
}

func parseDim(s string) int {
	s = strings.TrimPrefix(s, "+")
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0
	}
	return int(n)
}

// QuerySize asks the server for the window's current size. A failed query
// is reported as a zero size.
func QuerySize(h Handle) (width, height int) {
	desc, err := h.Path()
	if err != nil {
		logger.Warn("window size query failed", "err", err)
		return 0, 0
	}

	width, height = ParseSize(desc)
	if !Addressable(width, height) {
		logger.Warn("window size too large to map", "desc", desc)
		return 0, 0
	}
	if width == 0 || height == 0 {
		logger.Debug("window descriptor has no usable size", "desc", desc)
	}
	return width, height
}

// Addressable reports whether a width x height framebuffer fits in an int
// byte count.
func Addressable(width, height int) bool {
	if width < 0 || height < 0 {
		return false
	}
	return width == 0 || height <= math.MaxInt/4/width
}
