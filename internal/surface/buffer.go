package surface

// Buffer is a borrowed view of a surface's pixels for a single frame.
// Pixels are packed 32-bit values, row-major, Width() per row. The view
// keeps the size it was taken at; a later Resize does not change it.
type Buffer struct {
	s             *Surface
	width, height int
	presented     bool
}

// Pixels returns the frame's pixels. The slice is only valid until Present
// or the next Surface.Buffer call.
func (b *Buffer) Pixels() []uint32 {
	n := min(b.width*b.height, len(b.s.pixels))
	return b.s.pixels[:n]
}

func (b *Buffer) Width() int {
	return b.width
}

func (b *Buffer) Height() int {
	return b.height
}

// index returns the store offset of (x, y), or false when it lies outside
// the view or the store has since shrunk under it.
func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	i := y*b.width + x
	return i, i < len(b.s.pixels)
}

// At returns the pixel at (x, y), or 0 outside the buffer.
func (b *Buffer) At(x, y int) uint32 {
	i, ok := b.index(x, y)
	if !ok {
		return 0
	}
	return b.s.pixels[i]
}

// Set writes the pixel at (x, y). Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, c uint32) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.s.pixels[i] = c
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c uint32) {
	px := b.Pixels()
	for i := range px {
		px[i] = c
	}
}

// Present copies the frame into the window and requests a redraw. The
// buffer cannot be used again afterwards.
func (b *Buffer) Present() error {
	if b.presented {
		return ErrPresented
	}
	b.presented = true
	return b.s.present(b.Pixels(), b.width, b.height)
}
