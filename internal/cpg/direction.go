package cpg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DirectionPhase values. Shifting every pairwise phase target by π
// inverts which oscillator leads, reversing the locomotion wave
// without touching coupling magnitudes.
const (
	Forward  = 0.0
	Backward = math.Pi
)

// shiftBiases adds phase to every off-diagonal phase-bias entry,
// reduced modulo 2π. The diagonal stays zero.
func shiftBiases(biases *mat.Dense, phase float64) {
	n, _ := biases.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			biases.Set(i, j, wrapAngle(biases.At(i, j)+phase))
		}
	}
}

// wrapAngle reduces an angle into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
