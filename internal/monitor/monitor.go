package monitor

import (
	"context"
	"math"
	"time"
)

// Kind identifies the hardware class a reading originates from.
type Kind int

const (
	// KindDisplay is the display backlight.
	KindDisplay Kind = iota
	// KindKeyboard is the keyboard backlight.
	KindKeyboard
	// KindAudio is the default PulseAudio sink.
	KindAudio
	// KindPower is the AC/battery power supply.
	KindPower
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindDisplay:
		return "display"
	case KindKeyboard:
		return "keyboard"
	case KindAudio:
		return "audio"
	case KindPower:
		return "power"
	default:
		return "unknown"
	}
}

// Reading is a normalized measurement emitted by a monitor.
// Immutable once created; the newest reading always replaces whatever the
// overlay currently shows.
type Reading struct {
	Kind    Kind      // Originating hardware class
	Level   int       // Normalized level in [0, Levels]
	Levels  int       // Number of discrete segments (0 = icon only)
	Warning bool      // Out-of-range measurement (over-amplified, low battery)
	Muted   bool      // Audio sink is muted
	Icon    string    // Themed icon name for the overlay
	At      time.Time // When the reading was taken
}

// Monitor is the capability set shared by all device monitors.
// Start connects to the change source and begins emitting readings; it
// returns an error (DeviceNotFoundError, ServiceUnavailableError) when the
// underlying device or service cannot be reached, in which case the monitor
// is disabled for the session. ReadOnce returns the current state without
// waiting for a change event.
type Monitor interface {
	Kind() Kind
	Start(ctx context.Context) error
	Stop()
	Readings() <-chan Reading
	ReadOnce() (Reading, error)
}

// Normalize scales a raw measurement to a discrete level count:
// round(raw/max*levels), clamped to [0, levels]. Monotonic in raw.
func Normalize(raw, max int64, levels int) int {
	if max <= 0 || levels <= 0 {
		return 0
	}
	level := int(math.Round(float64(raw) / float64(max) * float64(levels)))
	if level < 0 {
		return 0
	}
	if level > levels {
		return levels
	}
	return level
}

// NormalizePercent scales a percentage to a discrete level count. Values
// above 100% are clamped to the top level and flagged as a warning
// (over-amplification).
func NormalizePercent(percent float64, levels int) (level int, warning bool) {
	level = Normalize(int64(math.Round(percent)), 100, levels)
	return level, percent > 100
}

// readingBuffer is the per-monitor channel capacity. Sends never block; a
// full channel drops the reading since a newer one supersedes it anyway.
const readingBuffer = 16

// emit delivers a reading without blocking the monitor.
func emit(ch chan Reading, r Reading) {
	select {
	case ch <- r:
	default:
	}
}
