package display

import (
	"log/slog"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/samsten/klar/internal/monitor"
)

// bottomMargin keeps the overlay clear of docks and panels.
const bottomMargin = 120

// Options configures the overlay window.
type Options struct {
	IconSize int
	Reveal   time.Duration
	Hide     time.Duration
	Logger   *slog.Logger
}

// Window is the overlay surface. It holds one Indicator per monitor kind in
// a stack and fades the whole window in and out. It satisfies the
// presentation controller's view interface.
type Window struct {
	window     *gtk.Window
	stack      *gtk.Stack
	indicators map[monitor.Kind]*Indicator

	reveal time.Duration
	hide   time.Duration
	logger *slog.Logger

	// anim is the running opacity fade; starting a new fade cancels it.
	anim *fade
}

// NewWindow builds the layer-shell overlay for the given monitor kinds.
// Indicators exist only for the kinds passed in, so readings from anything
// else are dropped with a warning.
func NewWindow(app *gtk.Application, kinds []monitor.Kind, opts Options) *Window {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		window:     gtk.NewWindow(),
		stack:      gtk.NewStack(),
		indicators: make(map[monitor.Kind]*Indicator, len(kinds)),
		reveal:     opts.Reveal,
		hide:       opts.Hide,
		logger:     logger,
	}

	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetName("klar")

	box := gtk.NewBox(gtk.OrientationVertical, 8)
	box.SetName("main-view")
	box.Append(w.stack)
	w.window.SetChild(box)

	for _, kind := range kinds {
		ind := NewIndicator(opts.IconSize)
		w.indicators[kind] = ind
		w.stack.AddNamed(ind.Root(), kind.String())
	}

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w.window, 0)
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "klar")
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeBottom, true)
	layershell.SetMargin(w.window, layershell.LayerShellEdgeBottom, bottomMargin)

	w.window.SetOpacity(hiddenOpacity)

	return w
}

// ShowReading switches the stack to the reading's kind and updates its
// indicator.
func (w *Window) ShowReading(r monitor.Reading) {
	ind, ok := w.indicators[r.Kind]
	if !ok {
		w.logger.Warn("reading for kind without indicator", "kind", r.Kind.String())
		return
	}
	ind.Update(r)
	w.stack.SetVisibleChildName(r.Kind.String())
}

// Reveal maps the window and fades it to full opacity, then calls done.
func (w *Window) Reveal(done func()) {
	w.window.SetVisible(true)
	w.animate(1.0, w.reveal, done)
}

// Hide fades the window out, unmaps it, then calls done.
func (w *Window) Hide(done func()) {
	w.animate(hiddenOpacity, w.hide, func() {
		w.window.SetVisible(false)
		done()
	})
}

// Close destroys the window.
func (w *Window) Close() {
	if w.anim != nil {
		w.anim.cancelled = true
		w.anim = nil
	}
	w.window.Destroy()
}

// fade tracks a running opacity animation so a newer one can cancel it.
type fade struct {
	cancelled bool
}

// animate fades the window opacity to target over d, invoking done on
// completion. A fade superseded before it completes never calls its done.
func (w *Window) animate(target float64, d time.Duration, done func()) {
	if w.anim != nil {
		w.anim.cancelled = true
	}
	a := &fade{}
	w.anim = a

	from := w.window.Opacity()
	if d <= 0 || from == target {
		w.window.SetOpacity(target)
		done()
		return
	}

	start := time.Now()
	glib.TimeoutAdd(frameIntervalMS, func() bool {
		if a.cancelled {
			return false
		}
		t := float64(time.Since(start)) / float64(d)
		if t >= 1 {
			w.window.SetOpacity(target)
			done()
			return false
		}
		w.window.SetOpacity(Tween(from, target, EaseOutCubic(t)))
		return true
	})
}
