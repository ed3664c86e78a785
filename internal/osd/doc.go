// Package osd implements the presentation controller: a small
// reveal/hold/hide state machine that maps incoming monitor readings to
// overlay visibility. All state mutation happens on the GTK main loop;
// monitors never touch the display state directly, they only emit readings.
package osd
