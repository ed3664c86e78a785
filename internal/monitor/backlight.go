package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Default sysfs class directories scanned for backlight devices.
const (
	DisplayClassDir  = "/sys/class/backlight"
	KeyboardClassDir = "/sys/class/leds"
)

// Device is a resolved backlight device directory.
type Device struct {
	Dir           string // Device directory containing brightness files
	MaxBrightness int64
}

// BrightnessPath returns the path of the current-brightness file.
func (d Device) BrightnessPath() string {
	return filepath.Join(d.Dir, "brightness")
}

// DetectDevice scans a sysfs class directory and picks the entry with the
// largest max_brightness. Entries without both a brightness and a
// max_brightness file are skipped (many LED devices carry neither).
func DetectDevice(classDir string) (Device, error) {
	entries, err := os.ReadDir(classDir)
	if err != nil {
		return Device{}, err
	}

	var best Device
	var bestMax int64 = -1
	for _, entry := range entries {
		dir := filepath.Join(classDir, entry.Name())
		max, err := readSysfsInt(filepath.Join(dir, "max_brightness"))
		if err != nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, "brightness")); err != nil {
			continue
		}
		if max > bestMax {
			best = Device{Dir: dir, MaxBrightness: max}
			bestMax = max
		}
	}

	if bestMax < 0 {
		return Device{}, os.ErrNotExist
	}
	return best, nil
}

// ResolveDevice loads an explicitly configured device directory.
func ResolveDevice(dir string) (Device, error) {
	max, err := readSysfsInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return Device{}, fmt.Errorf("failed to read max_brightness: %w", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "brightness")); err != nil {
		return Device{}, fmt.Errorf("failed to stat brightness: %w", err)
	}
	return Device{Dir: dir, MaxBrightness: max}, nil
}

func readSysfsInt(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
}

// Backlight watches a sysfs backlight (or LED) device and emits a normalized
// reading whenever the brightness file changes. Used for both the display
// and keyboard monitors; only the class directory and icon differ.
type Backlight struct {
	kind     Kind
	icon     string
	levels   int
	classDir string
	override string // explicit device directory from config
	logger   *slog.Logger

	device   Device
	watcher  *fsnotify.Watcher
	readings chan Reading
	done     chan struct{}
}

var _ Monitor = (*Backlight)(nil)

// NewBacklight creates a backlight monitor for the display or keyboard.
// An empty override enables autodetection from the kind's class directory.
func NewBacklight(kind Kind, override string, levels int, logger *slog.Logger) *Backlight {
	if logger == nil {
		logger = slog.Default()
	}

	classDir := DisplayClassDir
	icon := "display-brightness-symbolic"
	if kind == KindKeyboard {
		classDir = KeyboardClassDir
		icon = "keyboard-brightness-symbolic"
	}

	return &Backlight{
		kind:     kind,
		icon:     icon,
		levels:   levels,
		classDir: classDir,
		override: override,
		logger:   logger,
		readings: make(chan Reading, readingBuffer),
		done:     make(chan struct{}),
	}
}

// Kind returns the monitored hardware class.
func (b *Backlight) Kind() Kind { return b.kind }

// Readings returns the channel of emitted readings.
func (b *Backlight) Readings() <-chan Reading { return b.readings }

// Start resolves the device and begins watching its brightness file.
// Returns a *DeviceNotFoundError when no device can be located.
func (b *Backlight) Start(ctx context.Context) error {
	var err error
	if b.override != "" {
		b.device, err = ResolveDevice(b.override)
	} else {
		b.device, err = DetectDevice(b.classDir)
	}
	if err != nil {
		return &DeviceNotFoundError{Kind: b.kind, Dir: b.classDir}
	}

	b.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the device directory; sysfs attribute writes surface as write
	// events on the contained file.
	if err := b.watcher.Add(b.device.Dir); err != nil {
		_ = b.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", b.device.Dir, err)
	}

	go b.watch(ctx)

	b.logger.Debug("backlight monitor started",
		"kind", b.kind.String(),
		"device", b.device.Dir,
		"max_brightness", b.device.MaxBrightness,
	)
	return nil
}

// Stop stops watching the device.
func (b *Backlight) Stop() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
	if b.watcher != nil {
		_ = b.watcher.Close()
	}
}

// ReadOnce reads the current brightness and returns a normalized reading.
func (b *Backlight) ReadOnce() (Reading, error) {
	raw, err := readSysfsInt(b.device.BrightnessPath())
	if err != nil {
		return Reading{}, fmt.Errorf("failed to read brightness: %w", err)
	}
	return Reading{
		Kind:   b.kind,
		Level:  Normalize(raw, b.device.MaxBrightness, b.levels),
		Levels: b.levels,
		Icon:   b.icon,
		At:     time.Now(),
	}, nil
}

// watch is the fsnotify event loop.
func (b *Backlight) watch(ctx context.Context) {
	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != "brightness" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reading, err := b.ReadOnce()
			if err != nil {
				b.logger.Warn("failed to read brightness", "kind", b.kind.String(), "error", err)
				continue
			}
			emit(b.readings, reading)

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.logger.Warn("backlight watcher error", "kind", b.kind.String(), "error", err)

		case <-ctx.Done():
			return
		case <-b.done:
			return
		}
	}
}
