package counter

import "math"

// EaseOutExpo moves fast at first and settles sharply near p = 1.
func EaseOutExpo(p float64) float64 {
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*p)
}
