package osd

import (
	"log/slog"
	"time"

	"github.com/samsten/klar/internal/monitor"
)

// Phase is the visibility state of the overlay.
type Phase int

const (
	// PhaseHidden means the overlay is not visible.
	PhaseHidden Phase = iota
	// PhaseRevealing means the reveal animation is running.
	PhaseRevealing
	// PhaseShown means the overlay is fully visible and the hold timer runs.
	PhaseShown
	// PhaseHiding means the hide animation is running.
	PhaseHiding
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseRevealing:
		return "revealing"
	case PhaseShown:
		return "shown"
	case PhaseHiding:
		return "hiding"
	default:
		return "unknown"
	}
}

// View is the rendering collaborator driven by the controller. Reveal and
// Hide start the corresponding animation and invoke done when it completes;
// a superseded animation's done callback is ignored by the controller.
type View interface {
	ShowReading(r monitor.Reading)
	Reveal(done func())
	Hide(done func())
}

// DefaultHold is how long the overlay stays fully visible after the last
// reading before it starts hiding.
const DefaultHold = time.Second

// Controller owns the display state. It must only be driven from a single
// goroutine (the GTK main loop); readings arriving on other goroutines are
// marshalled there by the caller.
type Controller struct {
	view   View
	sched  Scheduler
	hold   time.Duration
	logger *slog.Logger

	phase     Phase
	active    monitor.Reading
	hasActive bool
	holdTimer Handle

	// animSeq invalidates completion callbacks of superseded animations.
	animSeq int
}

// NewController creates a presentation controller. A zero hold duration
// falls back to DefaultHold.
func NewController(view View, sched Scheduler, hold time.Duration, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Controller{
		view:   view,
		sched:  sched,
		hold:   hold,
		logger: logger,
	}
}

// Phase returns the current visibility phase.
func (c *Controller) Phase() Phase { return c.phase }

// Active returns the reading currently being displayed and whether one exists.
func (c *Controller) Active() (monitor.Reading, bool) { return c.active, c.hasActive }

// HandleReading applies a new reading to the state machine. The newest
// reading always wins: it fully replaces the displayed content and resets
// the hold timer, regardless of which monitor produced it.
func (c *Controller) HandleReading(r monitor.Reading) {
	c.active = r
	c.hasActive = true
	c.view.ShowReading(r)

	switch c.phase {
	case PhaseHidden:
		c.phase = PhaseRevealing
		c.startReveal()

	case PhaseRevealing:
		// Reveal already in flight with the new content.

	case PhaseShown:
		c.startHold()

	case PhaseHiding:
		// Cancel the hide and re-reveal directly; going through Hidden
		// first would flicker.
		c.animSeq++
		c.phase = PhaseRevealing
		c.startReveal()
	}

	c.logger.Debug("reading displayed",
		"kind", r.Kind.String(),
		"level", r.Level,
		"warning", r.Warning,
		"phase", c.phase.String(),
	)
}

// startReveal begins the reveal animation.
func (c *Controller) startReveal() {
	c.stopHold()
	seq := c.nextSeq()
	c.view.Reveal(func() { c.revealDone(seq) })
}

// revealDone completes a reveal animation.
func (c *Controller) revealDone(seq int) {
	if seq != c.animSeq || c.phase != PhaseRevealing {
		return
	}
	c.phase = PhaseShown
	c.startHold()
}

// startHold arms the hold timer, replacing any running one.
func (c *Controller) startHold() {
	c.stopHold()
	c.holdTimer = c.sched.After(c.hold, c.holdExpired)
}

func (c *Controller) stopHold() {
	if c.holdTimer != nil {
		c.holdTimer.Stop()
		c.holdTimer = nil
	}
}

// holdExpired fires when the overlay has been idle for the hold duration.
func (c *Controller) holdExpired() {
	if c.phase != PhaseShown {
		return
	}
	c.holdTimer = nil
	c.phase = PhaseHiding
	c.startHide()
}

// startHide begins the hide animation.
func (c *Controller) startHide() {
	seq := c.nextSeq()
	c.view.Hide(func() { c.hideDone(seq) })
}

// hideDone completes a hide animation.
func (c *Controller) hideDone(seq int) {
	if seq != c.animSeq || c.phase != PhaseHiding {
		return
	}
	c.phase = PhaseHidden
}

func (c *Controller) nextSeq() int {
	c.animSeq++
	return c.animSeq
}
