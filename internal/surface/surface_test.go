//go:build unix

package surface

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/softbuf/internal/fault"
	"github.com/bnema/softbuf/internal/window"
	"github.com/bnema/softbuf/internal/winmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinel = 0xDEADBEEF

// testWindow is a file-backed window that counts syncs and can report a
// different descriptor or fail to sync.
type testWindow struct {
	*window.File
	desc    string
	syncErr error
	syncs   int
	// mapped records winmap.Active at each Sync
	mapped []int
}

func (w *testWindow) Path() (string, error) {
	if w.desc != "" {
		return w.desc, nil
	}
	return w.File.Path()
}

func (w *testWindow) Sync() error {
	w.syncs++
	w.mapped = append(w.mapped, winmap.Active())
	if w.syncErr != nil {
		return w.syncErr
	}
	return w.File.Sync()
}

// newWindow creates a width x height window whose framebuffer is filled
// with the sentinel value.
func newWindow(t *testing.T, width, height int) *testWindow {
	t.Helper()

	f, err := window.OpenFile(filepath.Join(t.TempDir(), "window.buf"), window.Geometry{
		Width:  width,
		Height: height,
		Title:  t.Name(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	w := &testWindow{File: f}
	fillWindow(t, w, sentinel)
	return w
}

func fillWindow(t *testing.T, w *testWindow, c uint32) {
	t.Helper()

	fi, err := os.Stat(w.Name())
	require.NoError(t, err)

	raw := make([]byte, fi.Size())
	for i := 0; i+4 <= len(raw); i += 4 {
		binary.NativeEndian.PutUint32(raw[i:], c)
	}
	require.NoError(t, os.WriteFile(w.Name(), raw, 0600))
}

// framebuffer returns the first n pixels of the window file.
func framebuffer(t *testing.T, w *testWindow, n int) []uint32 {
	t.Helper()

	raw, err := os.ReadFile(w.Name())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), n*4)

	px := make([]uint32, n)
	for i := range px {
		px[i] = binary.NativeEndian.Uint32(raw[i*4:])
	}
	return px
}

// pattern gives every pixel a distinct value.
func pattern(x, y int) uint32 {
	return 0xFF000000 | uint32(y)<<12 | uint32(x)
}

func presentPattern(t *testing.T, s *Surface, width, height uint32) {
	t.Helper()

	require.NoError(t, s.Resize(width, height))
	buf, err := s.Buffer()
	require.NoError(t, err)
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			buf.Set(x, y, pattern(x, y))
		}
	}
	require.NoError(t, buf.Present())
}

type badHandle struct{}

func (badHandle) Fd() uintptr           { return window.InvalidFd }
func (badHandle) Path() (string, error) { return "", nil }
func (badHandle) Sync() error           { return nil }

func TestNew(t *testing.T) {
	t.Run("nil handle", func(t *testing.T) {
		s, err := New(nil)
		assert.Nil(t, s)

		var cerr *ConstructionError
		require.True(t, errors.As(err, &cerr))
		assert.ErrorIs(t, err, ErrNilHandle)
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		_, err := New(badHandle{})
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("starts empty", func(t *testing.T) {
		s, err := New(newWindow(t, 1, 1))
		require.NoError(t, err)

		w, h := s.Size()
		assert.Zero(t, w)
		assert.Zero(t, h)

		buf, err := s.Buffer()
		require.NoError(t, err)
		assert.Empty(t, buf.Pixels())
	})
}

func TestBufferLength(t *testing.T) {
	s, err := New(newWindow(t, 1, 1))
	require.NoError(t, err)

	sizes := []struct{ w, h uint32 }{
		{4, 2}, {0, 0}, {640, 480}, {1, 1}, {0, 10}, {10, 0}, {33, 17}, {2, 2},
	}
	for _, sz := range sizes {
		require.NoError(t, s.Resize(sz.w, sz.h))
		buf, err := s.Buffer()
		require.NoError(t, err)
		assert.Len(t, buf.Pixels(), int(sz.w*sz.h), "after resize to %dx%d", sz.w, sz.h)
	}
}

func TestBufferResizeKeepsPrefix(t *testing.T) {
	s, err := New(newWindow(t, 1, 1))
	require.NoError(t, err)

	require.NoError(t, s.Resize(2, 2))
	buf, err := s.Buffer()
	require.NoError(t, err)
	buf.Fill(7)

	require.NoError(t, s.Resize(1, 2))
	buf, err = s.Buffer()
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 7}, buf.Pixels())

	require.NoError(t, s.Resize(3, 2))
	buf, err = s.Buffer()
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 7, 0, 0, 0, 0}, buf.Pixels(), "regrown pixels must be zero")
}

func TestResizeTooLarge(t *testing.T) {
	s, err := New(newWindow(t, 1, 1))
	require.NoError(t, err)

	require.NoError(t, s.Resize(3, 5))
	err = s.Resize(^uint32(0), ^uint32(0))
	if err == nil {
		t.Skip("platform int holds the full uint32 product")
	}
	assert.ErrorIs(t, err, ErrTooLarge)

	w, h := s.Size()
	assert.Equal(t, uint32(3), w, "failed resize must not change the size")
	assert.Equal(t, uint32(5), h)
}

func TestBufferAccessors(t *testing.T) {
	s, err := New(newWindow(t, 1, 1))
	require.NoError(t, err)
	require.NoError(t, s.Resize(3, 2))

	buf, err := s.Buffer()
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Width())
	assert.Equal(t, 2, buf.Height())

	buf.Set(2, 1, 0xAABBCCDD)
	buf.Set(3, 0, 1)
	buf.Set(-1, 0, 1)
	assert.Equal(t, uint32(0xAABBCCDD), buf.At(2, 1))
	assert.Equal(t, uint32(0xAABBCCDD), buf.Pixels()[5])
	assert.Zero(t, buf.At(3, 0))
	assert.Zero(t, buf.At(0, 2))
	assert.Equal(t, []uint32{0, 0, 0, 0, 0, 0xAABBCCDD}, buf.Pixels())
}

func TestPresentSameSize(t *testing.T) {
	const width, height = 5, 3
	w := newWindow(t, width, height)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, width, height)

	fb := framebuffer(t, w, width*height+8)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			assert.Equal(t, pattern(x, y), fb[y*width+x], "pixel %d,%d", x, y)
		}
	}
	for i := width * height; i < len(fb); i++ {
		assert.Equal(t, uint32(sentinel), fb[i], "pixel %d past the frame was touched", i)
	}
	assert.Equal(t, 1, w.syncs)
}

func TestPresentCrops(t *testing.T) {
	w := newWindow(t, 2, 2)
	s, err := New(w)
	require.NoError(t, err)

	require.NoError(t, s.Resize(4, 2))
	buf, err := s.Buffer()
	require.NoError(t, err)
	buf.Fill(0xFFFFFFFF)
	require.NoError(t, buf.Present())

	fb := framebuffer(t, w, 8)
	assert.Equal(t, []uint32{
		0xFFFFFFFF, 0xFFFFFFFF,
		0xFFFFFFFF, 0xFFFFFFFF,
		sentinel, sentinel, sentinel, sentinel,
	}, fb)
}

func TestPresentCropsRowsAndColumns(t *testing.T) {
	const ww, wh = 3, 2
	w := newWindow(t, ww, wh)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 5, 4)

	fb := framebuffer(t, w, ww*wh)
	for y := 0; y < wh; y++ {
		for x := 0; x < ww; x++ {
			assert.Equal(t, pattern(x, y), fb[y*ww+x], "pixel %d,%d", x, y)
		}
	}
}

func TestPresentExpands(t *testing.T) {
	const ww, wh = 4, 3
	w := newWindow(t, ww, wh)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 2, 2)

	fb := framebuffer(t, w, ww*wh)
	for y := 0; y < wh; y++ {
		for x := 0; x < ww; x++ {
			want := uint32(sentinel)
			if x < 2 && y < 2 {
				want = pattern(x, y)
			}
			assert.Equal(t, want, fb[y*ww+x], "pixel %d,%d", x, y)
		}
	}
}

func TestPresentIdempotent(t *testing.T) {
	w := newWindow(t, 6, 4)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 7, 3)
	first, err := os.ReadFile(w.Name())
	require.NoError(t, err)

	buf, err := s.Buffer()
	require.NoError(t, err)
	require.NoError(t, buf.Present())
	second, err := os.ReadFile(w.Name())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, w.syncs)
}

func TestPresentFollowsServerResize(t *testing.T) {
	w := newWindow(t, 2, 2)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 4, 4)
	assert.Equal(t, []uint32{pattern(0, 0), pattern(1, 0), pattern(0, 1), pattern(1, 1)}, framebuffer(t, w, 4))

	require.NoError(t, w.Resize(4, 4))
	buf, err := s.Buffer()
	require.NoError(t, err)
	require.NoError(t, buf.Present())

	fb := framebuffer(t, w, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, pattern(x, y), fb[y*4+x], "pixel %d,%d", x, y)
		}
	}
}

func TestPresentUnparseableDescriptor(t *testing.T) {
	w := newWindow(t, 4, 4)
	w.desc = "orbital:/0/0/wide/tall/broken"
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 4, 4)

	for i, px := range framebuffer(t, w, 16) {
		assert.Equal(t, uint32(sentinel), px, "pixel %d", i)
	}
	assert.Equal(t, 1, w.syncs)
}

func TestPresentOversizedDescriptor(t *testing.T) {
	w := newWindow(t, 2, 2)
	w.desc = "orbital:/0/0/2147483648/2147483648/huge"
	s, err := New(w)
	require.NoError(t, err)

	require.NotPanics(t, func() { presentPattern(t, s, 2, 2) })
	assert.Equal(t, []uint32{sentinel, sentinel, sentinel, sentinel}, framebuffer(t, w, 4))
	assert.Equal(t, 1, w.syncs)

	px, width, height, err := s.Fetch()
	require.NoError(t, err)
	assert.Zero(t, width)
	assert.Zero(t, height)
	assert.Empty(t, px)
}

func TestPresentUnmapsBeforeSync(t *testing.T) {
	w := newWindow(t, 3, 3)
	s, err := New(w)
	require.NoError(t, err)

	base := winmap.Active()
	presentPattern(t, s, 3, 3)
	presentPattern(t, s, 5, 1)

	assert.Equal(t, []int{base, base}, w.mapped, "mapping must be released before every sync")
	assert.Equal(t, base, winmap.Active())
}

func TestBufferOutlivesResize(t *testing.T) {
	w := newWindow(t, 2, 2)
	s, err := New(w)
	require.NoError(t, err)

	t.Run("grow", func(t *testing.T) {
		require.NoError(t, s.Resize(2, 2))
		buf, err := s.Buffer()
		require.NoError(t, err)

		require.NoError(t, s.Resize(4, 4))
		assert.NotPanics(t, func() { buf.Set(1, 1, 7) })
		assert.Equal(t, uint32(7), buf.At(1, 1))
		assert.Equal(t, 2, buf.Width(), "view keeps its size")
		assert.Zero(t, buf.At(3, 3))
	})

	t.Run("store shrinks under a stale view", func(t *testing.T) {
		require.NoError(t, s.Resize(4, 4))
		stale, err := s.Buffer()
		require.NoError(t, err)

		require.NoError(t, s.Resize(0, 0))
		_, err = s.Buffer()
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			stale.Set(1, 1, 7)
			stale.Fill(9)
			assert.Zero(t, stale.At(1, 1))
			assert.Empty(t, stale.Pixels())
		})
	})

	t.Run("present uses the view size", func(t *testing.T) {
		require.NoError(t, s.Resize(2, 2))
		buf, err := s.Buffer()
		require.NoError(t, err)
		buf.Fill(0xFF00FF00)

		require.NoError(t, s.Resize(8, 8))
		require.NoError(t, buf.Present())
		assert.Equal(t, []uint32{0xFF00FF00, 0xFF00FF00, 0xFF00FF00, 0xFF00FF00}, framebuffer(t, w, 4))
	})
}

func TestPresentTwice(t *testing.T) {
	w := newWindow(t, 1, 1)
	s, err := New(w)
	require.NoError(t, err)

	buf, err := s.Buffer()
	require.NoError(t, err)
	require.NoError(t, buf.Present())
	assert.ErrorIs(t, buf.Present(), ErrPresented)
	assert.Equal(t, 1, w.syncs)
}

func TestPresentSyncFailure(t *testing.T) {
	w := newWindow(t, 2, 2)
	w.syncErr = errors.New("compositor gone")
	s, err := New(w)
	require.NoError(t, err)

	var got *fault.Fault
	restore := fault.SetHandler(func(f *fault.Fault) { got = f })
	defer restore()

	require.NoError(t, s.Resize(2, 2))
	buf, err := s.Buffer()
	require.NoError(t, err)
	buf.Fill(1)

	assert.Panics(t, func() { _ = buf.Present() })
	require.NotNil(t, got)
	assert.Equal(t, fault.SyncFailure, got.Kind)
	assert.ErrorIs(t, got, w.syncErr)

	// the frame was written before the sync was attempted
	assert.Equal(t, []uint32{1, 1, 1, 1}, framebuffer(t, w, 4))
}

// pipeWindow is a handle whose descriptor cannot be mapped.
type pipeWindow struct {
	r     *os.File
	syncs int
}

func (p *pipeWindow) Fd() uintptr           { return p.r.Fd() }
func (p *pipeWindow) Path() (string, error) { return "orbital:/0/0/2/2/pipe", nil }
func (p *pipeWindow) Sync() error           { p.syncs++; return nil }

func TestPresentMappingFailure(t *testing.T) {
	r, wr, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer wr.Close()

	p := &pipeWindow{r: r}
	s, err := New(p)
	require.NoError(t, err)

	require.NoError(t, s.Resize(2, 2))
	buf, err := s.Buffer()
	require.NoError(t, err)

	err = buf.Present()
	require.Error(t, err)

	var merr *winmap.Error
	require.True(t, errors.As(err, &merr), "expected *winmap.Error, got %v", err)
	assert.Equal(t, "mmap", merr.Op)
	assert.NotZero(t, merr.Errno())
	assert.Zero(t, p.syncs, "no sync after a failed mapping")
}

func TestFetch(t *testing.T) {
	w := newWindow(t, 3, 2)
	s, err := New(w)
	require.NoError(t, err)

	presentPattern(t, s, 2, 2)

	px, width, height, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, 3, width)
	assert.Equal(t, 2, height)
	assert.Equal(t, []uint32{
		pattern(0, 0), pattern(1, 0), sentinel,
		pattern(0, 1), pattern(1, 1), sentinel,
	}, px)
}
