// Package display renders the overlay window: a GTK4 layer-shell surface
// holding one indicator page per monitor kind, with opacity fades for
// reveal and hide. It implements the view interface the presentation
// controller drives and must only be touched from the GTK main loop.
package display
