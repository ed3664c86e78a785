package monitor

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// defaultSink addresses whatever sink PulseAudio currently routes to.
const defaultSink = "@DEFAULT_SINK@"

// audioDebounce coalesces the burst of sink events PulseAudio emits for a
// single volume change before querying the server.
const audioDebounce = 20 * time.Millisecond

var volumeRegex = regexp.MustCompile(`(\d+)%`)

// Audio subscribes to PulseAudio sink change events via pactl and emits a
// normalized reading for the default sink's volume and mute state.
type Audio struct {
	levels   int
	logger   *slog.Logger
	readings chan Reading

	cmd  *exec.Cmd
	done chan struct{}

	mu       sync.Mutex // guards debounce
	debounce *time.Timer
}

var _ Monitor = (*Audio)(nil)

// NewAudio creates a PulseAudio volume monitor.
func NewAudio(levels int, logger *slog.Logger) *Audio {
	if logger == nil {
		logger = slog.Default()
	}
	return &Audio{
		levels:   levels,
		logger:   logger,
		readings: make(chan Reading, readingBuffer),
		done:     make(chan struct{}),
	}
}

// Kind returns KindAudio.
func (a *Audio) Kind() Kind { return KindAudio }

// Readings returns the channel of emitted readings.
func (a *Audio) Readings() <-chan Reading { return a.readings }

// Start spawns `pactl subscribe` and begins listening for sink events.
// Returns a *ServiceUnavailableError when pactl is missing or the audio
// server cannot be reached. If the subscription later dies (audio server
// restart), the monitor stays disabled for the rest of the session.
func (a *Audio) Start(ctx context.Context) error {
	if _, err := exec.LookPath("pactl"); err != nil {
		return &ServiceUnavailableError{Service: "pulseaudio", Cause: err}
	}

	a.cmd = exec.CommandContext(ctx, "pactl", "subscribe")
	stdout, err := a.cmd.StdoutPipe()
	if err != nil {
		return &ServiceUnavailableError{Service: "pulseaudio", Cause: err}
	}
	if err := a.cmd.Start(); err != nil {
		return &ServiceUnavailableError{Service: "pulseaudio", Cause: err}
	}

	go a.listen(bufio.NewScanner(stdout))

	a.logger.Debug("audio monitor started", "levels", a.levels)
	return nil
}

// Stop terminates the subscription and cancels any pending debounced query.
func (a *Audio) Stop() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}

	a.mu.Lock()
	if a.debounce != nil {
		a.debounce.Stop()
		a.debounce = nil
	}
	a.mu.Unlock()

	if a.cmd != nil && a.cmd.Process != nil {
		_ = a.cmd.Process.Kill()
	}
}

// listen scans subscription events and debounces sink changes.
func (a *Audio) listen(scanner *bufio.Scanner) {
	for scanner.Scan() {
		select {
		case <-a.done:
			return
		default:
		}

		if !isSinkEvent(scanner.Text()) {
			continue
		}
		a.mu.Lock()
		if a.debounce != nil {
			a.debounce.Stop()
		}
		a.debounce = time.AfterFunc(audioDebounce, a.query)
		a.mu.Unlock()
	}

	if err := scanner.Err(); err != nil {
		a.logger.Warn("audio subscription closed", "error", err)
	} else {
		a.logger.Warn("audio subscription ended; volume changes will no longer be shown")
	}
	_ = a.cmd.Wait()
}

// query reads the default sink's state and emits a reading.
func (a *Audio) query() {
	r, err := a.ReadOnce()
	if err != nil {
		a.logger.Debug("failed to query sink", "error", err)
		return
	}
	emit(a.readings, r)
}

// ReadOnce queries the default sink's volume and mute state and returns the
// current reading.
func (a *Audio) ReadOnce() (Reading, error) {
	percent, err := queryVolume()
	if err != nil {
		return Reading{}, err
	}
	muted, err := queryMute()
	if err != nil {
		return Reading{}, err
	}

	level, warning := NormalizePercent(float64(percent), a.levels)
	if muted {
		level = 0
	}

	return Reading{
		Kind:    KindAudio,
		Level:   level,
		Levels:  a.levels,
		Warning: warning,
		Muted:   muted,
		Icon:    VolumeIcon(percent, muted),
		At:      time.Now(),
	}, nil
}

func queryVolume() (int, error) {
	out, err := exec.Command("pactl", "get-sink-volume", defaultSink).Output()
	if err != nil {
		return 0, fmt.Errorf("pactl get-sink-volume: %w", err)
	}
	return ParseVolume(string(out))
}

func queryMute() (bool, error) {
	out, err := exec.Command("pactl", "get-sink-mute", defaultSink).Output()
	if err != nil {
		return false, fmt.Errorf("pactl get-sink-mute: %w", err)
	}
	return ParseMute(string(out))
}

// isSinkEvent reports whether a pactl subscribe line is a sink change.
func isSinkEvent(line string) bool {
	return strings.Contains(line, "'change'") && strings.Contains(line, "on sink #")
}

// ParseVolume extracts the first channel's volume percentage from
// `pactl get-sink-volume` output, e.g.
//
//	Volume: front-left: 39321 /  60% / -13.31 dB,   front-right: ...
func ParseVolume(out string) (int, error) {
	match := volumeRegex.FindStringSubmatch(out)
	if match == nil {
		return 0, fmt.Errorf("no volume percentage in %q", strings.TrimSpace(out))
	}
	return strconv.Atoi(match[1])
}

// ParseMute extracts the mute flag from `pactl get-sink-mute` output.
func ParseMute(out string) (bool, error) {
	switch {
	case strings.Contains(out, "Mute: yes"):
		return true, nil
	case strings.Contains(out, "Mute: no"):
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized mute state %q", strings.TrimSpace(out))
	}
}

// VolumeIcon maps a volume percentage to a themed icon name.
func VolumeIcon(percent int, muted bool) string {
	switch {
	case muted, percent <= 0:
		return "audio-volume-muted-symbolic"
	case percent > 100:
		return "audio-volume-overamplified-symbolic"
	case percent > 66:
		return "audio-volume-high-symbolic"
	case percent > 33:
		return "audio-volume-medium-symbolic"
	default:
		return "audio-volume-low-symbolic"
	}
}
