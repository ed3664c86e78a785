package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfig_DeterministicOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance]\nicon_size = 64\n"), 0o644))

	globalOpts.configPath = path
	t.Cleanup(func() { globalOpts.configPath = "" })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	require.NoError(t, checkConfigCmd.RunE(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "icon_size    = 64")
	assert.Contains(t, out, "configuration OK")

	// The per-monitor lines print in a fixed order.
	order := []string{"monitor.display", "monitor.keyboard", "monitor.pulseaudio", "monitor.power"}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		require.GreaterOrEqual(t, idx, 0, "missing %s", name)
		assert.Greater(t, idx, last, "%s out of order", name)
		last = idx
	}
}

func TestCheckConfig_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance\n"), 0o644))

	globalOpts.configPath = path
	t.Cleanup(func() { globalOpts.configPath = "" })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	assert.Error(t, checkConfigCmd.RunE(cmd, nil))
}
