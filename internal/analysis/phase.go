// Package analysis provides phase and frequency estimation for
// oscillator outputs: instantaneous phase from the (x, y) plane and a
// power-spectrum dominant-frequency estimate from a sampled signal.
package analysis

import "math"

// Phase returns the instantaneous phase angle of an oscillator state,
// normalized into [0, 2π).
func Phase(x, y float64) float64 {
	return Wrap(math.Atan2(y, x))
}

// Wrap reduces an angle into [0, 2π).
func Wrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// CircDist returns the absolute circular distance between two angles,
// in [0, π].
func CircDist(a, b float64) float64 {
	d := Wrap(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// RelativePhase returns how far oscillator a leads oscillator b, in
// [0, 2π).
func RelativePhase(ax, ay, bx, by float64) float64 {
	return Wrap(Phase(ax, ay) - Phase(bx, by))
}
