package theme

import (
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/samsten/klar/internal/config"
)

// Provider priorities. User overrides sit above the matching system layer,
// and the dark layers sit above both base layers so switching schemes only
// needs the dark providers added or removed.
const (
	prioritySystem     = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION
	priorityUser       = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION + 1
	prioritySystemDark = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION + 2
	priorityUserDark   = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION + 3
)

// Manager layers the overlay stylesheets onto a display and keeps the dark
// variant in sync with the configured theme mode.
type Manager struct {
	logger *slog.Logger
	mode   string

	display      *gdk.Display
	systemDark   *gtk.CSSProvider
	userDark     *gtk.CSSProvider
	darkApplied  bool
	styleManager *adw.StyleManager
}

// NewManager creates a theme manager for the given mode (auto, light, dark).
func NewManager(mode string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if mode == "" {
		mode = config.ThemeAuto
	}
	return &Manager{logger: logger, mode: mode}
}

// Apply installs the base stylesheets on the display and resolves the dark
// layer per the configured mode. Must be called on the GTK main loop after
// the application activates.
func (m *Manager) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		m.logger.Warn("no display available, cannot apply theme")
		return
	}
	m.display = display

	addCSS(display, SystemCSS(), prioritySystem)
	if css, ok := readUserCSS(UserCSSPath, m.logger); ok {
		addCSS(display, css, priorityUser)
	}

	m.systemDark = newProvider(SystemDarkCSS())
	if css, ok := readUserCSS(UserDarkCSSPath, m.logger); ok {
		m.userDark = newProvider(css)
	}

	switch m.mode {
	case config.ThemeLight:
		m.setDark(false)
	case config.ThemeDark:
		m.setDark(true)
	default:
		m.followSystem()
	}
}

// followSystem tracks the desktop color scheme through libadwaita.
func (m *Manager) followSystem() {
	m.styleManager = adw.StyleManagerGetDefault()
	m.setDark(m.styleManager.Dark())
	m.styleManager.NotifyProperty("dark", func() {
		m.setDark(m.styleManager.Dark())
	})
}

// setDark adds or removes the dark provider layers.
func (m *Manager) setDark(dark bool) {
	if dark == m.darkApplied || m.display == nil {
		return
	}
	m.darkApplied = dark

	if dark {
		gtk.StyleContextAddProviderForDisplay(m.display, m.systemDark, prioritySystemDark)
		if m.userDark != nil {
			gtk.StyleContextAddProviderForDisplay(m.display, m.userDark, priorityUserDark)
		}
	} else {
		gtk.StyleContextRemoveProviderForDisplay(m.display, m.systemDark)
		if m.userDark != nil {
			gtk.StyleContextRemoveProviderForDisplay(m.display, m.userDark)
		}
	}
	m.logger.Debug("theme variant switched", "dark", dark)
}

func newProvider(css string) *gtk.CSSProvider {
	p := gtk.NewCSSProvider()
	p.LoadFromString(css)
	return p
}

func addCSS(display *gdk.Display, css string, priority uint) {
	gtk.StyleContextAddProviderForDisplay(display, newProvider(css), priority)
}

// readUserCSS loads a user override stylesheet. A missing file is normal;
// anything else gets a warning.
func readUserCSS(path func() (string, error), logger *slog.Logger) (string, bool) {
	p, err := path()
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read user stylesheet", "path", p, "error", err)
		}
		return "", false
	}
	logger.Info("loaded user stylesheet", "path", p)
	return string(data), true
}
