package display

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/samsten/klar/internal/monitor"
)

// Indicator is one overlay page: a symbolic icon above a segmented level
// bar. Monitors configured with zero levels (the power monitor by default)
// render icon-only.
type Indicator struct {
	root     *gtk.Box
	icon     *gtk.Image
	bar      *gtk.Box
	segments []*gtk.Box
}

// NewIndicator builds an indicator page with the given icon size in pixels.
func NewIndicator(iconSize int) *Indicator {
	ind := &Indicator{
		root: gtk.NewBox(gtk.OrientationVertical, 12),
		icon: gtk.NewImage(),
	}
	ind.icon.AddCSSClass("icon")
	ind.icon.SetPixelSize(iconSize)
	ind.root.Append(ind.icon)

	ind.bar = gtk.NewBox(gtk.OrientationHorizontal, 4)
	ind.bar.SetName("status-bar")
	ind.bar.SetVisible(false)
	ind.root.Append(ind.bar)

	return ind
}

// Root returns the widget to place in the window stack.
func (ind *Indicator) Root() gtk.Widgetter { return ind.root }

// Update applies a reading: icon, segment count, and active/warning state.
func (ind *Indicator) Update(r monitor.Reading) {
	if r.Icon != "" {
		ind.icon.SetFromIconName(r.Icon)
	}

	ind.ensureSegments(r.Levels)
	ind.bar.SetVisible(r.Levels > 0)

	for i, seg := range ind.segments {
		active := i < r.Level
		setCSSClass(seg, "active", active)
		setCSSClass(seg, "warning", active && r.Warning)
	}
}

// ensureSegments grows or shrinks the bar to n segments.
func (ind *Indicator) ensureSegments(n int) {
	for len(ind.segments) < n {
		seg := gtk.NewBox(gtk.OrientationHorizontal, 0)
		seg.SetName("status-segment")
		seg.SetHExpand(true)
		ind.bar.Append(seg)
		ind.segments = append(ind.segments, seg)
	}
	for len(ind.segments) > n {
		last := ind.segments[len(ind.segments)-1]
		ind.bar.Remove(last)
		ind.segments = ind.segments[:len(ind.segments)-1]
	}
}

func setCSSClass(w *gtk.Box, class string, on bool) {
	if on {
		w.AddCSSClass(class)
	} else {
		w.RemoveCSSClass(class)
	}
}
