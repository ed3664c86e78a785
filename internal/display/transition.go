package display

// frameIntervalMS is the opacity animation tick, roughly 60fps.
const frameIntervalMS = 16

// hiddenOpacity is the opacity the overlay fades down to before the window
// is unmapped. Fully transparent surfaces get culled by some compositors
// mid-animation, so we stop just above zero.
const hiddenOpacity = 0.01

// EaseOutCubic maps linear progress t in [0,1] to an ease-out curve that
// starts fast and decelerates.
func EaseOutCubic(t float64) float64 {
	u := 1 - Clamp01(t)
	return 1 - u*u*u
}

// Tween interpolates between from and to at the given progress.
func Tween(from, to, progress float64) float64 {
	return from + (to-from)*Clamp01(progress)
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
