package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/softbuf/internal/pattern"
	"github.com/bnema/softbuf/internal/surface"
	"github.com/bnema/softbuf/internal/ui"
	"github.com/spf13/cobra"
)

var (
	presentWindow  windowFlags
	presentSurface surfaceFlags
	presentFrame   int
)

var presentCmd = &cobra.Command{
	Use:   "present",
	Short: "Draw one frame and present it",
	Long: `Draw one frame into a client buffer and present it into the window.

The client size (--width/--height) and the window size
(--window-width/--window-height) may differ; the overlapping top-left
rectangle is copied and the rest of the window buffer is left as it was.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		draw, err := pattern.Lookup(presentSurface.pattern)
		if err != nil {
			return err
		}
		fill, err := presentSurface.color(cmd)
		if err != nil {
			return fmt.Errorf("invalid fill: %w", err)
		}

		win, err := presentWindow.open(cmd)
		if err != nil {
			return err
		}
		defer win.Close()

		s, err := surface.New(win)
		if err != nil {
			return err
		}

		width, height := presentSurface.size(cmd, win.Geometry())
		if err := s.Resize(width, height); err != nil {
			return err
		}

		buf, err := s.Buffer()
		if err != nil {
			return err
		}
		draw(buf, presentFrame, fill)

		start := time.Now()
		if err := buf.Present(); err != nil {
			return err
		}
		elapsed := time.Since(start)

		geom := win.Geometry()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatHeader("present"))
		fmt.Fprintln(out, ui.FormatField("buffer", win.Name()))
		fmt.Fprintln(out, ui.FormatField("window", ui.FormatSize(geom.Width, geom.Height)))
		fmt.Fprintln(out, ui.FormatField("client", ui.FormatSize(int(width), int(height))))
		fmt.Fprintln(out, ui.FormatField("copied", ui.FormatSize(min(int(width), geom.Width), min(int(height), geom.Height))))
		fmt.Fprintln(out, ui.FormatField("took", elapsed.String()))
		fmt.Fprintln(out, ui.FormatResult(true, "frame presented"))
		return nil
	},
}

func init() {
	presentWindow.register(presentCmd)
	presentSurface.register(presentCmd, "solid")
	presentCmd.Flags().IntVar(&presentFrame, "frame", 0, "frame number for animated patterns")
}
