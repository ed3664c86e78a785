package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	upowerBus  = "org.freedesktop.UPower"
	upowerPath = "/org/freedesktop/UPower"

	upowerDeviceIface = "org.freedesktop.UPower.Device"

	// UPower device type values
	upowerTypeLinePower uint32 = 1
	upowerTypeBattery   uint32 = 2
)

// Power subscribes to UPower power-supply change notifications on the system
// bus. It emits a reading when the charger is plugged or unplugged and when
// the battery percentage crosses the configured low-battery threshold.
type Power struct {
	levels     int
	lowBattery int
	logger     *slog.Logger
	readings   chan Reading

	conn    *dbus.Conn
	acPath  dbus.ObjectPath
	batPath dbus.ObjectPath
	signals chan *dbus.Signal
	done    chan struct{}

	mu         sync.Mutex // guards online and percentage
	online     bool
	percentage float64
}

var _ Monitor = (*Power)(nil)

// NewPower creates a power-supply monitor. lowBattery is the percentage
// below which readings carry the warning flag while discharging.
func NewPower(levels, lowBattery int, logger *slog.Logger) *Power {
	if logger == nil {
		logger = slog.Default()
	}
	return &Power{
		levels:     levels,
		lowBattery: lowBattery,
		logger:     logger,
		readings:   make(chan Reading, readingBuffer),
		done:       make(chan struct{}),
	}
}

// Kind returns KindPower.
func (p *Power) Kind() Kind { return KindPower }

// Readings returns the channel of emitted readings.
func (p *Power) Readings() <-chan Reading { return p.readings }

// Start connects to UPower and subscribes to property changes on the first
// line-power and battery devices. Returns a *ServiceUnavailableError when the
// system bus or UPower is unreachable and a *DeviceNotFoundError when no
// line-power device exists (e.g. desktop machines without a battery).
func (p *Power) Start(ctx context.Context) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return &ServiceUnavailableError{Service: upowerBus, Cause: err}
	}
	p.conn = conn

	var paths []dbus.ObjectPath
	err = conn.Object(upowerBus, upowerPath).
		CallWithContext(ctx, upowerBus+".EnumerateDevices", 0).
		Store(&paths)
	if err != nil {
		return &ServiceUnavailableError{Service: upowerBus, Cause: err}
	}

	for _, path := range paths {
		if p.acPath != "" && p.batPath != "" {
			break
		}
		variant, err := conn.Object(upowerBus, path).GetProperty(upowerDeviceIface + ".Type")
		if err != nil {
			continue
		}
		typ, ok := variant.Value().(uint32)
		if !ok {
			continue
		}
		switch typ {
		case upowerTypeLinePower:
			if p.acPath == "" {
				p.acPath = path
			}
		case upowerTypeBattery:
			if p.batPath == "" {
				p.batPath = path
			}
		}
	}

	if p.acPath == "" {
		return &DeviceNotFoundError{Kind: KindPower}
	}

	// Seed current state so the first event renders the right icon.
	if v, err := conn.Object(upowerBus, p.acPath).GetProperty(upowerDeviceIface + ".Online"); err == nil {
		if online, ok := v.Value().(bool); ok {
			p.online = online
		}
	}
	if p.batPath != "" {
		if v, err := conn.Object(upowerBus, p.batPath).GetProperty(upowerDeviceIface + ".Percentage"); err == nil {
			if pct, ok := v.Value().(float64); ok {
				p.percentage = pct
			}
		}
	}

	for _, path := range []dbus.ObjectPath{p.acPath, p.batPath} {
		if path == "" {
			continue
		}
		err = conn.AddMatchSignal(
			dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
			dbus.WithMatchMember("PropertiesChanged"),
			dbus.WithMatchObjectPath(path),
		)
		if err != nil {
			return &ServiceUnavailableError{Service: upowerBus, Cause: err}
		}
	}

	p.signals = make(chan *dbus.Signal, readingBuffer)
	conn.Signal(p.signals)
	go p.listen(ctx)

	p.logger.Debug("power monitor started",
		"ac", string(p.acPath),
		"battery", string(p.batPath),
		"online", p.online,
		"percentage", p.percentage,
	)
	return nil
}

// Stop unsubscribes from the bus.
func (p *Power) Stop() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	if p.conn != nil && p.signals != nil {
		p.conn.RemoveSignal(p.signals)
	}
}

// listen drains PropertiesChanged signals.
func (p *Power) listen(ctx context.Context) {
	for {
		select {
		case sig, ok := <-p.signals:
			if !ok {
				return
			}
			p.handleSignal(sig)
		case <-ctx.Done():
			return
		case <-p.done:
			return
		}
	}
}

// handleSignal processes a single PropertiesChanged signal.
// Body: interface name, changed properties, invalidated properties.
func (p *Power) handleSignal(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != upowerDeviceIface {
		return
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	p.mu.Lock()
	prevOnline := p.online
	prevPercentage := p.percentage

	if v, ok := changed["Online"]; ok && sig.Path == p.acPath {
		if online, ok := v.Value().(bool); ok {
			p.online = online
		}
	}
	if v, ok := changed["Percentage"]; ok && sig.Path == p.batPath {
		if pct, ok := v.Value().(float64); ok {
			p.percentage = pct
		}
	}
	notable := p.online != prevOnline || CrossedThreshold(prevPercentage, p.percentage, p.lowBattery)
	p.mu.Unlock()

	if notable {
		emit(p.readings, p.reading())
	}
}

// ReadOnce returns a reading from the most recently observed power state.
func (p *Power) ReadOnce() (Reading, error) {
	return p.reading(), nil
}

// reading builds a Reading from the current power state.
func (p *Power) reading() Reading {
	p.mu.Lock()
	online, percentage := p.online, p.percentage
	p.mu.Unlock()

	return Reading{
		Kind:    KindPower,
		Level:   Normalize(int64(percentage), 100, p.levels),
		Levels:  p.levels,
		Warning: !online && percentage <= float64(p.lowBattery),
		Icon:    BatteryIcon(percentage, online),
		At:      time.Now(),
	}
}

// CrossedThreshold reports whether the battery percentage moved across the
// low-battery threshold between two samples, in either direction.
func CrossedThreshold(prev, cur float64, threshold int) bool {
	t := float64(threshold)
	return (prev > t && cur <= t) || (prev <= t && cur > t)
}

// BatteryIcon maps a battery percentage and charging state to the themed
// battery-level icon ladder.
func BatteryIcon(percentage float64, charging bool) string {
	var level string
	switch {
	case percentage >= 95:
		level = "100"
	case percentage >= 75:
		level = "80"
	case percentage >= 55:
		level = "60"
	case percentage >= 35:
		level = "40"
	case percentage >= 15:
		level = "20"
	default:
		level = "10"
	}
	if charging {
		return "battery-level-" + level + "-charging-symbolic"
	}
	return "battery-level-" + level + "-symbolic"
}
