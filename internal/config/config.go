// Package config loads the klar configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings. Supports formats like "20ms", "1s", or bare integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Bare integers are milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '20ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Theme mode values for appearance.system_theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the immutable configuration snapshot for a klar process.
// Loaded once at startup from ~/.config/klar/config.toml; never mutated.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Monitor    Monitors         `toml:"monitor"`
}

// AppearanceConfig contains rendering settings for the overlay window.
type AppearanceConfig struct {
	IconSize    int             `toml:"icon_size"`    // Icon pixel size
	SystemTheme string          `toml:"system_theme"` // "auto", "light" or "dark"
	Animation   AnimationConfig `toml:"animation"`
}

// AnimationConfig contains the reveal and hide transition settings.
type AnimationConfig struct {
	Reveal AnimationSpec `toml:"reveal"`
	Hide   AnimationSpec `toml:"hide"`
}

// AnimationSpec describes a single opacity transition.
type AnimationSpec struct {
	Duration Duration `toml:"duration"`
}

// Monitors holds one MonitorConfig per hardware class.
type Monitors struct {
	Display    MonitorConfig `toml:"display"`
	Keyboard   MonitorConfig `toml:"keyboard"`
	Pulseaudio MonitorConfig `toml:"pulseaudio"`
	Power      MonitorConfig `toml:"power"`
}

// MonitorConfig configures a single device monitor.
type MonitorConfig struct {
	Enabled bool   `toml:"enabled"`
	Levels  int    `toml:"levels"` // Number of discrete display segments (0 = icon only)
	Device  string `toml:"device"` // Explicit sysfs device directory override

	// LowBattery is the percentage below which the power monitor sets the
	// warning flag. Only meaningful for [monitor.power].
	LowBattery int `toml:"low_battery"`
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			IconSize:    80,
			SystemTheme: ThemeAuto,
			Animation: AnimationConfig{
				Reveal: AnimationSpec{Duration: Duration(20 * time.Millisecond)},
				Hide:   AnimationSpec{Duration: Duration(200 * time.Millisecond)},
			},
		},
		Monitor: Monitors{
			Display:    MonitorConfig{Enabled: true, Levels: 16},
			Keyboard:   MonitorConfig{Enabled: true, Levels: 16},
			Pulseaudio: MonitorConfig{Enabled: true, Levels: 16},
			// Power readings are icon-only; the battery ladder carries the level.
			Power: MonitorConfig{Enabled: true, Levels: 0, LowBattery: 15},
		},
	}
}

// Dir returns the klar configuration directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "klar"), nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration from the default location.
// A missing file yields the documented defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
// Malformed syntax or invalid values produce a *ParseError; startup must
// abort on it since there is no safe partial state.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Appearance.IconSize < 1 || c.Appearance.IconSize > 1024 {
		return fmt.Errorf("appearance.icon_size must be between 1 and 1024, got %d", c.Appearance.IconSize)
	}

	switch c.Appearance.SystemTheme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("appearance.system_theme must be %q, %q or %q, got %q",
			ThemeAuto, ThemeLight, ThemeDark, c.Appearance.SystemTheme)
	}

	if c.Appearance.Animation.Reveal.Duration < 0 {
		return fmt.Errorf("appearance.animation.reveal.duration must not be negative")
	}
	if c.Appearance.Animation.Hide.Duration < 0 {
		return fmt.Errorf("appearance.animation.hide.duration must not be negative")
	}

	for name, mc := range map[string]MonitorConfig{
		"monitor.display":    c.Monitor.Display,
		"monitor.keyboard":   c.Monitor.Keyboard,
		"monitor.pulseaudio": c.Monitor.Pulseaudio,
		"monitor.power":      c.Monitor.Power,
	} {
		if mc.Levels < 0 || mc.Levels > 64 {
			return fmt.Errorf("%s.levels must be between 0 and 64, got %d", name, mc.Levels)
		}
	}

	if lb := c.Monitor.Power.LowBattery; lb < 0 || lb > 100 {
		return fmt.Errorf("monitor.power.low_battery must be between 0 and 100, got %d", lb)
	}

	return nil
}

// ParseError reports a fatal configuration failure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "invalid configuration " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
