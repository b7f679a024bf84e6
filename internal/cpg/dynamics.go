package cpg

import (
	"math"

	"github.com/san-kum/hexcpg/internal/dynamo"
)

// hopfField is the coupled-network vector field for one profile. The
// state layout is [x0, y0, x1, y1, ..., x(n-1), y(n-1)].
type hopfField struct {
	n    int
	mu   float64
	prof *profile
}

func (f *hopfField) StateDim() int { return 2 * f.n }

func (f *hopfField) Derive(s dynamo.State, _ float64) dynamo.State {
	d := make(dynamo.State, len(s))

	for i := 0; i < f.n; i++ {
		xi, yi := s[2*i], s[2*i+1]
		amp := f.prof.amplitudes[i]
		omega := 2 * math.Pi * f.prof.frequencies[i]

		// Hopf normal form: attracts to a circle of radius √amp.
		r2 := xi*xi + yi*yi
		dx := f.mu*(amp-r2)*xi - omega*yi
		dy := f.mu*(amp-r2)*yi + omega*xi

		// Diffusive coupling toward a phase-rotated copy of each
		// neighbor, pulling i into the prescribed phase offset from j
		// rather than literal synchrony.
		for j := 0; j < f.n; j++ {
			if j == i {
				continue
			}
			w := f.prof.weights.At(i, j)
			if w == 0 {
				continue
			}
			sin, cos := math.Sincos(f.prof.biases.At(i, j))
			xj, yj := s[2*j], s[2*j+1]
			dx += w * (xj*cos - yj*sin - xi)
			dy += w * (xj*sin + yj*cos - yi)
		}

		d[2*i] = dx
		d[2*i+1] = dy
	}
	return d
}
