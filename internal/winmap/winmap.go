// Package winmap maps a window's framebuffer into the process for the
// duration of a single copy.
package winmap

import (
	"errors"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/bnema/softbuf/internal/fault"
	"github.com/bnema/softbuf/internal/logger"
)

// Error is returned when the framebuffer cannot be mapped.
type Error struct {
	Op   string
	Size int
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "winmap: " + e.Op + ": " + e.Err.Error()
	}
	return "winmap: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errno returns the OS failure code, or 0 if the failure did not come from
// the OS.
func (e *Error) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

var ErrInvalidSize = &Error{Op: "invalid size"}

// noCopy makes go vet report accidental copies of a Mapping.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Mapping is a shared read/write view of a window framebuffer. It is valid
// until Release.
type Mapping struct {
	_    noCopy
	data []byte
	size int
}

// live counts mappings that have been acquired and not yet released.
var live atomic.Int64

// Active returns the number of mappings currently held by the process.
func Active() int {
	return int(live.Load())
}

// AlignedSize rounds n up to a whole number of pages. Zero still occupies
// one page.
func AlignedSize(n int) int {
	ps := PageSize()
	pages := (n + ps - 1) / ps
	if pages == 0 {
		pages = 1
	}
	return pages * ps
}

// Acquire maps the framebuffer behind fd. size is the number of bytes the
// caller needs; the mapping covers it rounded up to the page size.
func Acquire(fd uintptr, size int) (*Mapping, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}

	aligned := AlignedSize(size)
	data, err := mmap(fd, aligned)
	if err != nil {
		return nil, &Error{Op: "mmap", Size: aligned, Err: err}
	}

	live.Add(1)
	logger.Debug("mapped window buffer", "fd", fd, "requested", size, "mapped", aligned)
	return &Mapping{data: data, size: aligned}, nil
}

// Size returns the page-aligned length of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Pixels returns the mapping as packed 32-bit pixels, Size()/4 of them.
// The slice must not be used after Release.
func (m *Mapping) Pixels() []uint32 {
	if len(m.data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(m.data))), len(m.data)/4)
}

// Release unmaps the region. Only the first call does anything. A failed
// unmap leaves the address space in an unknown state and aborts the process.
func (m *Mapping) Release() {
	if m.data == nil {
		return
	}

	data := m.data
	m.data = nil
	live.Add(-1)
	if err := munmap(data); err != nil {
		fault.Abort(fault.UnmapFailure, &Error{Op: "munmap", Size: m.size, Err: err})
	}
}
