// Package theme applies the overlay's CSS: embedded base and dark
// stylesheets plus optional user overrides from the config directory, with
// the dark layer toggled to follow the desktop color scheme.
package theme

import (
	"embed"
	"path/filepath"

	"github.com/samsten/klar/internal/config"
)

//go:embed themes/*.css
var embeddedThemes embed.FS

const (
	baseName = "style.css"
	darkName = "style-dark.css"
)

// SystemCSS returns the embedded base stylesheet.
func SystemCSS() string {
	return mustEmbedded(baseName)
}

// SystemDarkCSS returns the embedded dark-variant stylesheet.
func SystemDarkCSS() string {
	return mustEmbedded(darkName)
}

func mustEmbedded(name string) string {
	data, err := embeddedThemes.ReadFile("themes/" + name)
	if err != nil {
		// The files are compiled in; a miss is a build defect.
		panic("theme: missing embedded stylesheet " + name)
	}
	return string(data)
}

// UserCSSPath returns the path of the user's base stylesheet override.
func UserCSSPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName), nil
}

// UserDarkCSSPath returns the path of the user's dark-variant override.
func UserDarkCSSPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, darkName), nil
}
