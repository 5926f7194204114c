package cmd

import (
	"github.com/bnema/softbuf/internal/config"
	"github.com/bnema/softbuf/internal/window"
	"github.com/spf13/cobra"
)

// windowFlags selects the file-backed window a command works on. Unset
// flags fall back to the [window] config section.
type windowFlags struct {
	buffer string
	width  int
	height int
}

func (f *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.buffer, "buffer", "", "window framebuffer file (default from config)")
	cmd.Flags().IntVar(&f.width, "window-width", 0, "window width reported by the server (default from config)")
	cmd.Flags().IntVar(&f.height, "window-height", 0, "window height reported by the server (default from config)")
}

func (f *windowFlags) open(cmd *cobra.Command) (*window.File, error) {
	wc := config.Get().Window

	path := wc.BufferPath
	if cmd.Flags().Changed("buffer") {
		path = f.buffer
	}

	geom := window.Geometry{
		Scheme: wc.Scheme,
		X:      wc.X,
		Y:      wc.Y,
		Width:  wc.Width,
		Height: wc.Height,
		Title:  wc.Title,
	}
	if cmd.Flags().Changed("window-width") {
		geom.Width = f.width
	}
	if cmd.Flags().Changed("window-height") {
		geom.Height = f.height
	}

	return window.OpenFile(path, geom)
}

// surfaceFlags holds the client-requested frame settings.
type surfaceFlags struct {
	width   uint32
	height  uint32
	fill    string
	pattern string
}

func (f *surfaceFlags) register(cmd *cobra.Command, defaultPattern string) {
	cmd.Flags().Uint32Var(&f.width, "width", 0, "client frame width (default from config, else window width)")
	cmd.Flags().Uint32Var(&f.height, "height", 0, "client frame height (default from config, else window height)")
	cmd.Flags().StringVar(&f.fill, "fill", "", "base color as a packed 0xAARRGGBB value (default from config)")
	cmd.Flags().StringVar(&f.pattern, "pattern", defaultPattern, "pattern to draw: solid, gradient, checker, bars")
}

// size resolves the client frame size: flag, then config, then the window.
func (f *surfaceFlags) size(cmd *cobra.Command, geom window.Geometry) (uint32, uint32) {
	sc := config.Get().Surface

	width, height := sc.Width, sc.Height
	if cmd.Flags().Changed("width") {
		width = f.width
	} else if width == 0 {
		width = uint32(geom.Width)
	}
	if cmd.Flags().Changed("height") {
		height = f.height
	} else if height == 0 {
		height = uint32(geom.Height)
	}
	return width, height
}

func (f *surfaceFlags) color(cmd *cobra.Command) (uint32, error) {
	fill := config.Get().Surface.Fill
	if cmd.Flags().Changed("fill") {
		fill = f.fill
	}
	return config.ParseColor(fill)
}
