package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemCSS_ContainsStyleHooks(t *testing.T) {
	css := SystemCSS()

	for _, hook := range []string{
		"#klar",
		"#main-view",
		".icon",
		"#status-bar",
		"#status-segment",
		".active",
		".warning",
	} {
		assert.Contains(t, css, hook)
	}
}

func TestSystemCSS_DefinesPalette(t *testing.T) {
	for _, color := range []string{
		"@define-color background",
		"@define-color foreground",
		"@define-color inactive-indicator",
		"@define-color active-indicator",
	} {
		assert.Contains(t, SystemCSS(), color)
		assert.Contains(t, SystemDarkCSS(), color)
	}
}

func TestSystemDarkCSS_PaletteOnly(t *testing.T) {
	// The dark variant recolors; it must not redeclare layout rules that
	// would shadow user base overrides.
	assert.NotContains(t, SystemDarkCSS(), "#main-view")
	assert.NotContains(t, SystemDarkCSS(), "border-radius")
}

func TestUserCSSPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	base, err := UserCSSPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/klar/style.css", base)

	dark, err := UserDarkCSSPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/klar/style-dark.css", dark)
	assert.True(t, strings.HasSuffix(dark, "style-dark.css"))
}
