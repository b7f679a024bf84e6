package integrators

import (
	"math"

	"github.com/san-kum/hexcpg/internal/dynamo"
)

// DefaultMaxSubstep caps the internal RK4 sub-step. Wall-clock-derived
// dt can be arbitrarily large (a stalled control loop), so a single
// step is subdivided until each piece is at most this long.
const DefaultMaxSubstep = 0.01

type RK4 struct {
	maxSubstep     float64
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{maxSubstep: DefaultMaxSubstep}
}

// NewRK4WithSubstep uses a custom sub-step cap. maxSubstep <= 0
// disables subdivision.
func NewRK4WithSubstep(maxSubstep float64) *RK4 {
	return &RK4{maxSubstep: maxSubstep}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	if dt == 0 {
		return x.Clone()
	}

	steps := 1
	if r.maxSubstep > 0 && math.Abs(dt) > r.maxSubstep {
		steps = int(math.Ceil(math.Abs(dt) / r.maxSubstep))
	}
	h := dt / float64(steps)

	out := x.Clone()
	for s := 0; s < steps; s++ {
		out = r.step(dyn, out, t+float64(s)*h, h)
	}
	return out
}

func (r *RK4) step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := dyn.Derive(x, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, t+dt)
	copy(r.k4, k4)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
