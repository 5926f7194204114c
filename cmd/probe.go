package cmd

import (
	"fmt"

	"github.com/bnema/softbuf/internal/ui"
	"github.com/bnema/softbuf/internal/window"
	"github.com/spf13/cobra"
)

var probeWindow windowFlags

var probeCmd = &cobra.Command{
	Use:   "probe [descriptor]",
	Short: "Show the size a window descriptor reports",
	Long: `Parse a window descriptor (scheme:flags/x/y/width/height/title) and print
the size a present would use. Without an argument the configured window is
queried. Missing or malformed fields read as zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var desc string
		var width, height int

		if len(args) == 1 {
			desc = args[0]
			width, height = window.ParseSize(desc)
		} else {
			win, err := probeWindow.open(cmd)
			if err != nil {
				return err
			}
			defer win.Close()

			if desc, err = win.Path(); err != nil {
				return err
			}
			width, height = window.QuerySize(win)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatField("desc", desc))
		fmt.Fprintln(out, ui.FormatField("size", ui.FormatSize(width, height)))
		if width == 0 || height == 0 {
			fmt.Fprintln(out, ui.WarningStyle.Render(ui.IconWarning+" empty size, a present would copy nothing"))
		}
		return nil
	},
}

func init() {
	probeWindow.register(probeCmd)
}
