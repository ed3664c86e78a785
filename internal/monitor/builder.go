package monitor

import (
	"log/slog"

	"github.com/samsten/klar/internal/config"
)

// FromConfig constructs the monitors enabled in the configuration.
// Disabled kinds are never constructed, so no reading of that kind can
// ever reach the overlay.
func FromConfig(cfg config.Monitors, logger *slog.Logger) []Monitor {
	var monitors []Monitor

	if cfg.Display.Enabled {
		monitors = append(monitors, NewBacklight(KindDisplay, cfg.Display.Device, cfg.Display.Levels, logger))
	}
	if cfg.Keyboard.Enabled {
		monitors = append(monitors, NewBacklight(KindKeyboard, cfg.Keyboard.Device, cfg.Keyboard.Levels, logger))
	}
	if cfg.Pulseaudio.Enabled {
		monitors = append(monitors, NewAudio(cfg.Pulseaudio.Levels, logger))
	}
	if cfg.Power.Enabled {
		monitors = append(monitors, NewPower(cfg.Power.Levels, cfg.Power.LowBattery, logger))
	}

	return monitors
}
