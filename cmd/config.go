package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/softbuf/internal/config"
	"github.com/bnema/softbuf/internal/logger"
	"github.com/bnema/softbuf/internal/ui"
	"github.com/spf13/cobra"
)

var configInitDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage softbuf configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, ui.FormatHeader("configuration"))
		fmt.Fprintln(out, ui.FormatField("file", config.GetConfigPath()))

		fmt.Fprintln(out, ui.InfoStyle.Render("\n[window]"))
		fmt.Fprintln(out, ui.FormatField("buffer", cfg.Window.BufferPath))
		fmt.Fprintln(out, ui.FormatField("scheme", cfg.Window.Scheme))
		fmt.Fprintln(out, ui.FormatField("position", fmt.Sprintf("%d,%d", cfg.Window.X, cfg.Window.Y)))
		fmt.Fprintln(out, ui.FormatField("size", ui.FormatSize(cfg.Window.Width, cfg.Window.Height)))
		fmt.Fprintln(out, ui.FormatField("title", cfg.Window.Title))

		fmt.Fprintln(out, ui.InfoStyle.Render("\n[surface]"))
		fmt.Fprintln(out, ui.FormatField("size", ui.FormatSize(int(cfg.Surface.Width), int(cfg.Surface.Height))))
		fmt.Fprintln(out, ui.FormatField("fill", cfg.Surface.Fill))

		fmt.Fprintln(out, ui.InfoStyle.Render("\n[animate]"))
		fmt.Fprintln(out, ui.FormatField("fps", strconv.Itoa(cfg.Animate.FPS)))
		fmt.Fprintln(out, ui.FormatField("frames", strconv.Itoa(cfg.Animate.Frames)))

		level := cfg.Logging.LogLevel
		if level == "" {
			level = "(LOG_LEVEL)"
		}
		fmt.Fprintln(out, ui.InfoStyle.Render("\n[logging]"))
		fmt.Fprintln(out, ui.FormatField("level", level))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *config.Get()

		if !configInitDefaults {
			values := ui.FormValuesFrom(&cfg)
			if err := ui.NewConfigForm(values).Run(); err != nil {
				return fmt.Errorf("config form: %w", err)
			}
			if err := values.Apply(&cfg); err != nil {
				return err
			}
		}

		config.Set(&cfg)
		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", config.GetConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write the current values without prompting")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
