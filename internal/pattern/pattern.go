// Package pattern draws test images into a pixel buffer.
package pattern

import (
	"fmt"
	"sort"
)

// Canvas is a row-major packed pixel target.
type Canvas interface {
	Width() int
	Height() int
	Set(x, y int, c uint32)
}

// Func draws frame n of a pattern using fill as its base color.
type Func func(c Canvas, n int, fill uint32)

var registry = map[string]Func{
	"solid":    Solid,
	"gradient": Gradient,
	"checker":  Checker,
	"bars":     Bars,
}

// Lookup returns the pattern registered under name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q (have %v)", name, Names())
	}
	return f, nil
}

// Names lists the registered patterns.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pack builds a 0xAARRGGBB pixel.
func Pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func Solid(c Canvas, _ int, fill uint32) {
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			c.Set(x, y, fill)
		}
	}
}

// Gradient is a diagonal ramp that scrolls one pixel per frame.
func Gradient(c Canvas, n int, fill uint32) {
	w, h := c.Width(), c.Height()
	if w == 0 || h == 0 {
		return
	}
	alpha := uint8(fill >> 24)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := uint8((x + n) * 255 / (w + h))
			g := uint8((y + n) * 255 / (w + h))
			b := uint8(fill)
			c.Set(x, y, Pack(alpha, r, g, b))
		}
	}
}

// Checker alternates fill and its inverse in 8 pixel squares, shifted by
// the frame number.
func Checker(c Canvas, n int, fill uint32) {
	const size = 8
	inv := fill ^ 0x00FFFFFF
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if ((x+n)/size+y/size)%2 == 0 {
				c.Set(x, y, fill)
			} else {
				c.Set(x, y, inv)
			}
		}
	}
}

// Bars draws eight vertical color bars; the frame number rotates them.
func Bars(c Canvas, n int, fill uint32) {
	bars := [8]uint32{
		0xFFFFFFFF, 0xFFFFFF00, 0xFF00FFFF, 0xFF00FF00,
		0xFFFF00FF, 0xFFFF0000, 0xFF0000FF, fill,
	}
	w := c.Width()
	if w == 0 {
		return
	}
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < w; x++ {
			c.Set(x, y, bars[(x*len(bars)/w+n)%len(bars)])
		}
	}
}
