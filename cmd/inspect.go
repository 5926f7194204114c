package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/softbuf/internal/surface"
	"github.com/bnema/softbuf/internal/ui"
	"github.com/spf13/cobra"
)

var (
	inspectWindow windowFlags
	inspectRows   int
	inspectCols   int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Read back the window framebuffer",
	Long:  `Map the window framebuffer at its current size and print the top-left corner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		win, err := inspectWindow.open(cmd)
		if err != nil {
			return err
		}
		defer win.Close()

		s, err := surface.New(win)
		if err != nil {
			return err
		}

		px, width, height, err := s.Fetch()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatHeader("inspect"))
		fmt.Fprintln(out, ui.FormatField("buffer", win.Name()))
		fmt.Fprintln(out, ui.FormatField("window", ui.FormatSize(width, height)))
		fmt.Fprintln(out)

		for y := 0; y < min(inspectRows, height); y++ {
			row := make([]string, 0, inspectCols)
			for x := 0; x < min(inspectCols, width); x++ {
				row = append(row, ui.FormatPixel(px[y*width+x]))
			}
			fmt.Fprintln(out, ui.SubtleStyle.Render(fmt.Sprintf("%4d", y))+" "+strings.Join(row, " "))
		}
		return nil
	},
}

func init() {
	inspectWindow.register(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectRows, "rows", 4, "rows to print")
	inspectCmd.Flags().IntVar(&inspectCols, "cols", 4, "pixels per row to print")
}
