package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDevice creates a fake sysfs backlight device directory.
func writeDevice(t *testing.T, classDir, name string, brightness, max string) string {
	t.Helper()
	dir := filepath.Join(classDir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if brightness != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(brightness), 0644))
	}
	if max != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(max), 0644))
	}
	return dir
}

func TestDetectDevice_PicksLargestRange(t *testing.T) {
	classDir := t.TempDir()
	writeDevice(t, classDir, "dell::kbd_backlight", "1", "3")
	best := writeDevice(t, classDir, "intel_backlight", "512", "1024")
	writeDevice(t, classDir, "acpi_video0", "50", "100")

	device, err := DetectDevice(classDir)
	require.NoError(t, err)
	assert.Equal(t, best, device.Dir)
	assert.Equal(t, int64(1024), device.MaxBrightness)
}

func TestDetectDevice_SkipsIncompleteEntries(t *testing.T) {
	classDir := t.TempDir()
	// LED devices without brightness control files must be skipped
	writeDevice(t, classDir, "input3::capslock", "", "")
	writeDevice(t, classDir, "phy0-led", "0", "")
	found := writeDevice(t, classDir, "tpacpi::kbd_backlight", "1", "2")

	device, err := DetectDevice(classDir)
	require.NoError(t, err)
	assert.Equal(t, found, device.Dir)
}

func TestDetectDevice_NoDevices(t *testing.T) {
	_, err := DetectDevice(t.TempDir())
	assert.Error(t, err)

	_, err = DetectDevice("/nonexistent/class/dir")
	assert.Error(t, err)
}

func TestResolveDevice(t *testing.T) {
	classDir := t.TempDir()
	dir := writeDevice(t, classDir, "intel_backlight", "300\n", "1024\n")

	device, err := ResolveDevice(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), device.MaxBrightness)
	assert.Equal(t, filepath.Join(dir, "brightness"), device.BrightnessPath())

	_, err = ResolveDevice(filepath.Join(classDir, "missing"))
	assert.Error(t, err)
}

func TestBacklight_StartNoDevice(t *testing.T) {
	b := NewBacklight(KindDisplay, "", 16, nil)
	b.classDir = t.TempDir() // empty class dir

	err := b.Start(t.Context())
	require.Error(t, err)

	var notFound *DeviceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, KindDisplay, notFound.Kind)
}

func TestBacklight_ReadOnce(t *testing.T) {
	classDir := t.TempDir()
	dir := writeDevice(t, classDir, "intel_backlight", "512\n", "1024\n")

	b := NewBacklight(KindDisplay, dir, 16, nil)
	require.NoError(t, b.Start(t.Context()))
	defer b.Stop()

	reading, err := b.ReadOnce()
	require.NoError(t, err)
	assert.Equal(t, KindDisplay, reading.Kind)
	assert.Equal(t, 8, reading.Level)
	assert.Equal(t, 16, reading.Levels)
	assert.Equal(t, "display-brightness-symbolic", reading.Icon)
	assert.False(t, reading.Warning)
}

func TestBacklight_EmitsOnChange(t *testing.T) {
	classDir := t.TempDir()
	dir := writeDevice(t, classDir, "intel_backlight", "0\n", "1024\n")

	b := NewBacklight(KindDisplay, dir, 16, nil)
	require.NoError(t, b.Start(t.Context()))
	defer b.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte("1024\n"), 0644))

	select {
	case reading := <-b.Readings():
		assert.Equal(t, 16, reading.Level)
	case <-time.After(2 * time.Second):
		t.Fatal("no reading emitted after brightness change")
	}
}

func TestNewBacklight_KeyboardVariant(t *testing.T) {
	b := NewBacklight(KindKeyboard, "", 16, nil)
	assert.Equal(t, KindKeyboard, b.Kind())
	assert.Equal(t, KeyboardClassDir, b.classDir)
	assert.Equal(t, "keyboard-brightness-symbolic", b.icon)
}
