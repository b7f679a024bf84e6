// Package metrics provides observability metrics for the oscillator
// network, implementing the dynamo.Metric shape.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hexcpg/internal/analysis"
	"github.com/san-kum/hexcpg/internal/dynamo"
)

// PhaseLock measures how far the network's pairwise phase differences
// are from the active gait's phase-bias targets. Zero means perfectly
// locked.
type PhaseLock struct {
	name    string
	targets *mat.Dense
	n       int
	sum     float64
	samples int
}

// NewPhaseLock builds the metric against a phase-bias matrix (the
// network's PhaseBias accessor returns a suitable copy).
func NewPhaseLock(targets *mat.Dense) *PhaseLock {
	n, _ := targets.Dims()
	return &PhaseLock{
		name:    "phase_lock",
		targets: targets,
		n:       n,
	}
}

func (p *PhaseLock) Name() string { return p.name }

func (p *PhaseLock) Observe(x dynamo.State, t float64) {
	if len(x) < 2*p.n {
		return
	}

	total := 0.0
	pairs := 0
	for i := 0; i < p.n; i++ {
		for j := 0; j < p.n; j++ {
			if i == j {
				continue
			}
			// Locked means phase(i) - phase(j) equals the bias target.
			got := analysis.RelativePhase(x[2*i], x[2*i+1], x[2*j], x[2*j+1])
			total += analysis.CircDist(got, p.targets.At(i, j))
			pairs++
		}
	}
	if pairs == 0 {
		return
	}

	p.sum += total / float64(pairs)
	p.samples++
}

// Value returns the mean pairwise phase error in radians since the
// last Reset.
func (p *PhaseLock) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PhaseLock) Reset() {
	p.sum = 0
	p.samples = 0
}
