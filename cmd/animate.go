package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bnema/softbuf/internal/config"
	"github.com/bnema/softbuf/internal/logger"
	"github.com/bnema/softbuf/internal/pattern"
	"github.com/bnema/softbuf/internal/surface"
	"github.com/bnema/softbuf/internal/ui"
	"github.com/bnema/softbuf/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	animateWindow      windowFlags
	animateSurface     surfaceFlags
	animateFPS         int
	animateFrames      int
	animateResizeEvery int
)

var animateCmd = &cobra.Command{
	Use:   "animate",
	Short: "Present an animated pattern in a loop",
	Long: `Present frames of an animated pattern one after another.

With --resize-every N the window is resized from the server side every N
frames, alternating between its configured size and half of it, while the
client keeps drawing at its own size.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		draw, err := pattern.Lookup(animateSurface.pattern)
		if err != nil {
			return err
		}
		fill, err := animateSurface.color(cmd)
		if err != nil {
			return fmt.Errorf("invalid fill: %w", err)
		}

		win, err := animateWindow.open(cmd)
		if err != nil {
			return err
		}

		s, err := surface.New(win)
		if err != nil {
			win.Close()
			return err
		}

		width, height := animateSurface.size(cmd, win.Geometry())
		if err := s.Resize(width, height); err != nil {
			win.Close()
			return err
		}

		// Frames render on bubbletea's command goroutines; the lock keeps
		// the window open until an in-flight frame has finished.
		var mu sync.Mutex
		full := win.Geometry()
		render := func(n int) (ui.FrameInfo, error) {
			mu.Lock()
			defer mu.Unlock()
			return animateFrame(s, win, full, draw, fill, n)
		}

		fps := animateFPS
		if !cmd.Flags().Changed("fps") {
			fps = config.Get().Animate.FPS
		}
		frames := animateFrames
		if !cmd.Flags().Changed("frames") {
			frames = config.Get().Animate.Frames
		}

		model := ui.NewAnimateModel(render, fps, frames)
		_, runErr := tea.NewProgram(model).Run()

		mu.Lock()
		win.Close()
		mu.Unlock()

		if runErr != nil {
			return fmt.Errorf("animation UI failed: %w", runErr)
		}
		logger.Info("animation finished", "frames", model.Frames(), "avg_present", model.AveragePresent())
		return model.Err()
	},
}

func animateFrame(s *surface.Surface, win *window.File, full window.Geometry, draw pattern.Func, fill uint32, n int) (ui.FrameInfo, error) {
	if animateResizeEvery > 0 && n > 0 && n%animateResizeEvery == 0 {
		w, h := full.Width, full.Height
		if (n/animateResizeEvery)%2 == 1 {
			w, h = w/2, h/2
		}
		if err := win.Resize(w, h); err != nil {
			return ui.FrameInfo{}, err
		}
	}

	buf, err := s.Buffer()
	if err != nil {
		return ui.FrameInfo{}, err
	}
	draw(buf, n, fill)

	start := time.Now()
	if err := buf.Present(); err != nil {
		return ui.FrameInfo{}, err
	}

	geom := win.Geometry()
	return ui.FrameInfo{
		Client:  [2]int{buf.Width(), buf.Height()},
		Window:  [2]int{geom.Width, geom.Height},
		Elapsed: time.Since(start),
	}, nil
}

func init() {
	animateWindow.register(animateCmd)
	animateSurface.register(animateCmd, "gradient")
	animateCmd.Flags().IntVar(&animateFPS, "fps", 30, "frames per second (default from config)")
	animateCmd.Flags().IntVar(&animateFrames, "frames", 0, "stop after this many frames, 0 runs until quit (default from config)")
	animateCmd.Flags().IntVar(&animateResizeEvery, "resize-every", 0, "resize the window from the server side every N frames")
}
