package animator

import "math"

// EaseInOutCubic maps linear progress t in [0,1] onto a cubic S-curve.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// ScatterEnvelope is zero at both ends of a transition and peaks at 1
// halfway through.
func ScatterEnvelope(progress float32) float32 {
	if progress <= 0 || progress >= 1 {
		return 0
	}
	return float32(math.Sin(float64(progress) * math.Pi))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
