package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "display", KindDisplay.String())
	assert.Equal(t, "keyboard", KindKeyboard.String())
	assert.Equal(t, "audio", KindAudio.String())
	assert.Equal(t, "power", KindPower.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw, max int64
		levels   int
		expected int
	}{
		{"half of range", 512, 1024, 16, 8},
		{"zero", 0, 1024, 16, 0},
		{"full", 1024, 1024, 16, 16},
		{"rounds up", 100, 1024, 16, 2}, // 1.5625 -> 2
		{"above max clamps", 2048, 1024, 16, 16},
		{"negative clamps", -10, 1024, 16, 0},
		{"zero max", 512, 0, 16, 0},
		{"zero levels", 512, 1024, 0, 0},
		{"single level", 600, 1024, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw, tt.max, tt.levels))
		})
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	const max, levels = 1024, 16
	prev := 0
	for raw := int64(0); raw <= max; raw++ {
		level := Normalize(raw, max, levels)
		assert.GreaterOrEqual(t, level, prev, "raw=%d", raw)
		assert.LessOrEqual(t, level, levels)
		prev = level
	}
}

func TestNormalizePercent(t *testing.T) {
	level, warning := NormalizePercent(50, 16)
	assert.Equal(t, 8, level)
	assert.False(t, warning)

	// Over-amplified volume clamps to the top level and flags a warning
	level, warning = NormalizePercent(120, 16)
	assert.Equal(t, 16, level)
	assert.True(t, warning)

	level, warning = NormalizePercent(0, 16)
	assert.Equal(t, 0, level)
	assert.False(t, warning)

	level, warning = NormalizePercent(100, 16)
	assert.Equal(t, 16, level)
	assert.False(t, warning)
}

func TestEmit_NeverBlocks(t *testing.T) {
	ch := make(chan Reading, 2)
	for i := 0; i < 10; i++ {
		emit(ch, Reading{Kind: KindAudio, Level: i})
	}
	assert.Len(t, ch, 2)
}
