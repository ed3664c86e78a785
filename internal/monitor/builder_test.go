package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samsten/klar/internal/config"
)

func TestFromConfig(t *testing.T) {
	enabled := func(levels int) config.MonitorConfig {
		return config.MonitorConfig{Enabled: true, Levels: levels}
	}

	tests := []struct {
		name     string
		cfg      config.Monitors
		expected []Kind
	}{
		{
			name: "all enabled",
			cfg: config.Monitors{
				Display:    enabled(16),
				Keyboard:   enabled(16),
				Pulseaudio: enabled(16),
				Power:      enabled(0),
			},
			expected: []Kind{KindDisplay, KindKeyboard, KindAudio, KindPower},
		},
		{
			name: "display and audio disabled",
			cfg: config.Monitors{
				Keyboard: enabled(16),
				Power:    enabled(0),
			},
			expected: []Kind{KindKeyboard, KindPower},
		},
		{
			name: "only power",
			cfg: config.Monitors{
				Power: enabled(0),
			},
			expected: []Kind{KindPower},
		},
		{
			name:     "none enabled",
			cfg:      config.Monitors{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitors := FromConfig(tt.cfg, nil)

			var kinds []Kind
			for _, m := range monitors {
				kinds = append(kinds, m.Kind())
			}
			// A disabled kind is never constructed, so nothing can emit
			// readings for it.
			assert.Equal(t, tt.expected, kinds)
		})
	}
}
