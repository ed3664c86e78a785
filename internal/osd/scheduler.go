package osd

import (
	"sync/atomic"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// Handle is a cancellable scheduled callback.
type Handle interface {
	Stop()
}

// Scheduler schedules a callback after a delay. The production
// implementation runs callbacks on the GTK main loop; tests substitute a
// fake to drive time by hand.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// GLibScheduler schedules callbacks on the GLib main loop via timeout
// sources. It is the Scheduler used by the running daemon.
type GLibScheduler struct{}

// After schedules fn on the main loop after d.
func (GLibScheduler) After(d time.Duration, fn func()) Handle {
	h := &glibHandle{}
	h.src = glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		// Mark fired so Stop does not remove a dead source.
		if h.fired.CompareAndSwap(false, true) {
			fn()
		}
		return false
	})
	return h
}

type glibHandle struct {
	src   glib.SourceHandle
	fired atomic.Bool
}

func (h *glibHandle) Stop() {
	if h.fired.CompareAndSwap(false, true) {
		glib.SourceRemove(h.src)
	}
}
