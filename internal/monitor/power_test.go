package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossedThreshold(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur float64
		threshold int
		expected  bool
	}{
		{"drops below", 16, 14, 15, true},
		{"exactly at threshold", 16, 15, 15, true},
		{"recovers above", 15, 16, 15, true},
		{"stays above", 80, 79, 15, false},
		{"stays below", 10, 9, 15, false},
		{"unchanged", 50, 50, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CrossedThreshold(tt.prev, tt.cur, tt.threshold))
		})
	}
}

func TestBatteryIcon(t *testing.T) {
	tests := []struct {
		percentage float64
		charging   bool
		expected   string
	}{
		{100, false, "battery-level-100-symbolic"},
		{95, true, "battery-level-100-charging-symbolic"},
		{80, false, "battery-level-80-symbolic"},
		{60, true, "battery-level-60-charging-symbolic"},
		{40, false, "battery-level-40-symbolic"},
		{20, false, "battery-level-20-symbolic"},
		{14, false, "battery-level-10-symbolic"},
		{5, true, "battery-level-10-charging-symbolic"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BatteryIcon(tt.percentage, tt.charging),
			"percentage=%v charging=%v", tt.percentage, tt.charging)
	}
}

func TestPower_Reading(t *testing.T) {
	p := NewPower(0, 15, nil)
	p.online = false
	p.percentage = 10

	r := p.reading()
	assert.Equal(t, KindPower, r.Kind)
	assert.Equal(t, 0, r.Levels)
	assert.True(t, r.Warning)
	assert.Equal(t, "battery-level-10-symbolic", r.Icon)

	p.online = true
	r = p.reading()
	assert.False(t, r.Warning)
	assert.Equal(t, "battery-level-10-charging-symbolic", r.Icon)
}

func TestPower_ReadingWithLevels(t *testing.T) {
	p := NewPower(16, 15, nil)
	p.online = true
	p.percentage = 50

	r := p.reading()
	assert.Equal(t, 8, r.Level)
	assert.Equal(t, 16, r.Levels)
}

func TestPower_ReadOnce(t *testing.T) {
	p := NewPower(16, 15, nil)
	p.online = true
	p.percentage = 50

	r, err := p.ReadOnce()
	require.NoError(t, err)
	assert.Equal(t, KindPower, r.Kind)
	assert.Equal(t, 8, r.Level)
	assert.Equal(t, "battery-level-40-charging-symbolic", r.Icon)
}
