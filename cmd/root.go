package cmd

import (
	"github.com/bnema/softbuf/internal/config"
	"github.com/bnema/softbuf/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "softbuf",
		Short: "softbuf - software framebuffer presenter",
		Long: `softbuf presents a client-side pixel buffer into a window whose
framebuffer is exposed as a mappable file. Each present maps the window
buffer at the size the server reports, copies the overlapping rows, unmaps
and asks the compositor to redraw.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return err
			}
			// An explicit log level in the config wins over LOG_LEVEL
			if lvl := config.Get().Logging.LogLevel; lvl != "" && !logger.SetLevel(lvl) {
				logger.Warn("ignoring unknown log level", "level", lvl)
			}
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/softbuf/softbuf.toml)")

	rootCmd.AddCommand(presentCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(animateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
