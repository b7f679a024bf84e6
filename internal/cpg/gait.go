package cpg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hexcpg/internal/dynamo"
)

// Gait identifies a coupling pattern between the leg oscillators.
type Gait int

const (
	// Tripod splits the legs into two alternating groups by index
	// parity: {0,2,4} swing while {1,3,5} support. Fast.
	Tripod Gait = iota

	// Wave lifts legs sequentially with a phase lag of 2π/n between
	// neighbors. Slower but more statically stable.
	Wave
)

func (g Gait) String() string {
	switch g {
	case Tripod:
		return "tripod"
	case Wave:
		return "wave"
	default:
		return fmt.Sprintf("gait(%d)", int(g))
	}
}

func ParseGait(s string) (Gait, error) {
	switch s {
	case "tripod":
		return Tripod, nil
	case "wave":
		return Wave, nil
	default:
		return 0, fmt.Errorf("cpg: unknown gait %q: %w", s, dynamo.ErrInvalidConfig)
	}
}

// Gaits lists the available gaits in a stable order.
func Gaits() []Gait { return []Gait{Tripod, Wave} }

// buildGait returns the coupling-weight and phase-bias matrices for
// gait g. Off-diagonal weights are uniformly strength; diagonals stay
// zero (an oscillator never couples to itself).
func buildGait(g Gait, n int, strength float64) (weights, biases *mat.Dense) {
	weights = mat.NewDense(n, n, nil)
	biases = mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			weights.Set(i, j, strength)
			biases.Set(i, j, gaitBias(g, n, i, j))
		}
	}
	return weights, biases
}

func gaitBias(g Gait, n, i, j int) float64 {
	switch g {
	case Wave:
		// Traveling wave: phase lag grows with ring distance.
		return (2 * math.Pi / float64(n)) * float64(((j-i)%n+n)%n)
	default:
		// Tripod: in phase within a parity group, anti-phase across.
		if i%2 == j%2 {
			return 0
		}
		return math.Pi
	}
}
