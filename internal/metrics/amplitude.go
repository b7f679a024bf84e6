package metrics

import (
	"math"

	"github.com/san-kum/hexcpg/internal/dynamo"
)

// AmplitudeError tracks how far each oscillator's squared radius is
// from its amplitude target. On the limit cycle r² equals the target
// and the error is zero.
type AmplitudeError struct {
	name    string
	targets []float64
	sum     float64
	samples int
}

func NewAmplitudeError(targets []float64) *AmplitudeError {
	return &AmplitudeError{
		name:    "amplitude_error",
		targets: targets,
	}
}

func (a *AmplitudeError) Name() string { return a.name }

func (a *AmplitudeError) Observe(x dynamo.State, t float64) {
	n := len(a.targets)
	if len(x) < 2*n || n == 0 {
		return
	}

	total := 0.0
	for i := 0; i < n; i++ {
		r2 := x[2*i]*x[2*i] + x[2*i+1]*x[2*i+1]
		total += math.Abs(r2 - a.targets[i])
	}
	a.sum += total / float64(n)
	a.samples++
}

func (a *AmplitudeError) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *AmplitudeError) Reset() {
	a.sum = 0
	a.samples = 0
}
