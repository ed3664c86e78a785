package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samsten/klar/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var globalOpts struct {
	verbose    bool
	configPath string
}

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "klar",
	Short: "On-screen display daemon for Wayland desktops",
	Long: `klar shows a transient overlay when display brightness, keyboard
backlight, audio volume or power state changes. It listens to sysfs,
PulseAudio and UPower and renders a GTK4 layer-shell surface on top of
whatever is on screen.

Running klar without a subcommand starts the daemon.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.configPath, "config", "c", "", "path to config file (default ~/.config/klar/config.toml)")

	rootCmd.AddCommand(checkConfigCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadConfig resolves the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	if globalOpts.configPath != "" {
		return config.LoadFile(globalOpts.configPath)
	}
	return config.Load()
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the configuration file and print the resolved values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cmd.Printf("icon_size    = %d\n", cfg.Appearance.IconSize)
		cmd.Printf("system_theme = %s\n", cfg.Appearance.SystemTheme)
		cmd.Printf("reveal       = %s\n", cfg.Appearance.Animation.Reveal.Duration.Duration())
		cmd.Printf("hide         = %s\n", cfg.Appearance.Animation.Hide.Duration.Duration())
		for _, m := range []struct {
			name string
			cfg  config.MonitorConfig
		}{
			{"display", cfg.Monitor.Display},
			{"keyboard", cfg.Monitor.Keyboard},
			{"pulseaudio", cfg.Monitor.Pulseaudio},
			{"power", cfg.Monitor.Power},
		} {
			cmd.Printf("monitor.%-10s enabled=%-5v levels=%d\n", m.name, m.cfg.Enabled, m.cfg.Levels)
		}
		cmd.Println("configuration OK")
		return nil
	},
}
