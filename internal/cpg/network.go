package cpg

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hexcpg/internal/dynamo"
	"github.com/san-kum/hexcpg/internal/integrators"
)

const (
	// DefaultCouplingStrength is the off-diagonal coupling weight a
	// gait applies unless told otherwise.
	DefaultCouplingStrength = 1.0

	// seedX breaks the symmetry of the unstable fixed point at the
	// origin; without it the network would sit at zero forever.
	seedX = 0.1

	// seedSkew staggers the seeds across oscillators. Identical seeds
	// lie on the synchronized manifold, which every gait's coupling
	// damps straight back to the origin; the stagger gives the
	// anti-phase modes a component to grow from.
	seedSkew = 1e-3
)

// Network is a CPG of n coupled Hopf oscillators. It owns the state
// vector and the active coupling profile and advances one integration
// step per tick.
type Network struct {
	n         int
	amplitude float64
	frequency float64
	mu        float64

	state   dynamo.State
	prof    *profile
	outputs []float64

	integ    dynamo.Integrator
	clock    dynamo.Clock
	lastTick time.Time

	strictFactors bool
}

type Option func(*Network)

// WithIntegrator swaps the solver. Anything meeting the accuracy
// contract (amplitude drift < 0.1% over 1 s at dt ≤ 0.05) will do.
func WithIntegrator(integ dynamo.Integrator) Option {
	return func(nw *Network) { nw.integ = integ }
}

// WithClock injects the time source used by TickNow.
func WithClock(c dynamo.Clock) Option {
	return func(nw *Network) { nw.clock = c }
}

// WithStrictFactors makes Turn reject factors outside [0,1] instead of
// clamping them.
func WithStrictFactors() Option {
	return func(nw *Network) { nw.strictFactors = true }
}

// New builds a network of n oscillators with the given base amplitude,
// base frequency (Hz) and convergence rate μ, seeded off the origin
// and locked to the tripod gait.
func New(n int, amplitude, frequency, mu float64, opts ...Option) (*Network, error) {
	if n < 1 {
		return nil, fmt.Errorf("cpg: need at least one oscillator, got %d: %w", n, dynamo.ErrInvalidConfig)
	}
	if amplitude <= 0 || math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("cpg: amplitude %.4f must be positive: %w", amplitude, dynamo.ErrInvalidConfig)
	}
	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("cpg: frequency %.4f must be positive: %w", frequency, dynamo.ErrInvalidConfig)
	}
	if mu <= 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, fmt.Errorf("cpg: convergence rate %.4f must be positive: %w", mu, dynamo.ErrInvalidConfig)
	}

	nw := &Network{
		n:         n,
		amplitude: amplitude,
		frequency: frequency,
		mu:        mu,
		integ:     integrators.NewRK4(),
		clock:     dynamo.SystemClock(),
	}
	for _, opt := range opts {
		opt(nw)
	}

	prof, err := newProfile(Tripod, n, DefaultCouplingStrength, Forward, TurnState{}, amplitude, frequency)
	if err != nil {
		return nil, err
	}
	nw.prof = prof
	nw.seed()
	return nw, nil
}

func (nw *Network) seed() {
	nw.state = make(dynamo.State, 2*nw.n)
	nw.outputs = make([]float64, nw.n)
	for i := 0; i < nw.n; i++ {
		nw.state[2*i] = seedX + seedSkew*float64(i)
		nw.outputs[i] = nw.state[2*i]
	}
	nw.lastTick = nw.clock.Now()
}

// Tick advances the network by dt seconds and returns the x-component
// of every oscillator in index order. dt of zero returns the previous
// outputs without advancing; negative dt is rejected.
func (nw *Network) Tick(dt float64) ([]float64, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("cpg: dt %.6f must be non-negative and finite: %w", dt, dynamo.ErrInvalidConfig)
	}
	if dt == 0 {
		return nw.Outputs(), nil
	}

	field := &hopfField{n: nw.n, mu: nw.mu, prof: nw.prof}
	next := nw.integ.Step(field, nw.state, 0, dt)
	if !next.IsValid() {
		// A non-finite state means an integrator or parameter bug,
		// not a transient fault; surface it, never patch it.
		return nil, fmt.Errorf("cpg: tick(dt=%.6f) produced non-finite state: %w", dt, dynamo.ErrInvalidState)
	}

	nw.state = next
	for i := 0; i < nw.n; i++ {
		nw.outputs[i] = next[2*i]
	}
	return nw.Outputs(), nil
}

// TickNow derives dt from the injected clock: the elapsed time since
// the previous tick, or since construction for the first one.
func (nw *Network) TickNow() ([]float64, error) {
	now := nw.clock.Now()
	dt := now.Sub(nw.lastTick).Seconds()
	if dt < 0 {
		return nil, fmt.Errorf("cpg: elapsed time %.6fs: %w", dt, dynamo.ErrClockRollback)
	}
	nw.lastTick = now
	return nw.Tick(dt)
}

// SetGait rebuilds the coupling and phase-bias matrices for mode. The
// state vector is untouched, so amplitudes carry across and the legs
// glide into the new pattern instead of restarting. With
// preserveDirection the current direction phase is reapplied on top of
// the fresh matrices; otherwise direction resets to forward. Turning
// state survives either way.
func (nw *Network) SetGait(mode Gait, strength float64, preserveDirection bool) error {
	if mode != Tripod && mode != Wave {
		return fmt.Errorf("cpg: unknown gait %d: %w", int(mode), dynamo.ErrInvalidConfig)
	}
	if strength < 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return fmt.Errorf("cpg: coupling strength %.4f must be non-negative: %w", strength, dynamo.ErrInvalidConfig)
	}

	direction := nw.prof.direction
	if !preserveDirection {
		direction = Forward
	}

	prof, err := newProfile(mode, nw.n, strength, direction, nw.prof.turn, nw.amplitude, nw.frequency)
	if err != nil {
		return err
	}
	nw.prof = prof
	return nil
}

// SetDirection re-derives the active gait's matrices and, when
// backward, shifts every pairwise phase target by π so the locomotion
// wave travels the other way.
func (nw *Network) SetDirection(backward bool) error {
	direction := Forward
	if backward {
		direction = Backward
	}

	prof, err := newProfile(nw.prof.gait, nw.n, nw.prof.strength, direction, nw.prof.turn, nw.amplitude, nw.frequency)
	if err != nil {
		return err
	}
	nw.prof = prof
	return nil
}

// Turn biases stride and cadence toward one side. Factor is clamped
// into [0,1] unless the network was built with WithStrictFactors, in
// which case out-of-range factors are rejected without touching
// anything. Turning is orthogonal to gait and direction: none of them
// clears the others.
func (nw *Network) Turn(direction TurnDirection, factor float64) error {
	if direction != TurnLeft && direction != TurnRight {
		return fmt.Errorf("cpg: turn direction must be left or right: %w", dynamo.ErrInvalidConfig)
	}
	if math.IsNaN(factor) {
		return fmt.Errorf("cpg: turning factor is NaN: %w", dynamo.ErrInvalidConfig)
	}
	if factor < 0 || factor > 1 {
		if nw.strictFactors {
			return fmt.Errorf("cpg: turning factor %.4f outside [0,1]: %w", factor, dynamo.ErrInvalidConfig)
		}
		factor = math.Max(0, math.Min(1, factor))
	}

	nw.prof = nw.prof.withTurn(TurnState{Direction: direction, Factor: factor}, nw.amplitude, nw.frequency)
	return nil
}

// StopTurning restores every oscillator's amplitude and frequency to
// the base values.
func (nw *Network) StopTurning() {
	nw.prof = nw.prof.withTurn(TurnState{}, nw.amplitude, nw.frequency)
}

// Reset reseeds the state vector and clears turning, keeping the
// selected gait and direction. The real-time clock re-arms so the
// next TickNow measures from now.
func (nw *Network) Reset() {
	nw.prof = nw.prof.withTurn(TurnState{}, nw.amplitude, nw.frequency)
	nw.seed()
}

func (nw *Network) N() int { return nw.n }

// Gait reports the active gait.
func (nw *Network) Gait() Gait { return nw.prof.gait }

// Backward reports whether the direction phase is π.
func (nw *Network) Backward() bool { return nw.prof.direction != Forward }

// Turning reports the active turn command; the zero value means none.
func (nw *Network) Turning() TurnState { return nw.prof.turn }

// Outputs returns the x-components from the most recent tick (the
// seed column before the first one).
func (nw *Network) Outputs() []float64 {
	out := make([]float64, nw.n)
	copy(out, nw.outputs)
	return out
}

// State returns a copy of the flat state vector [x0 y0 x1 y1 ...].
func (nw *Network) State() dynamo.State { return nw.state.Clone() }

// Coupling returns a copy of the active coupling-weight matrix.
func (nw *Network) Coupling() *mat.Dense { return mat.DenseCopyOf(nw.prof.weights) }

// PhaseBias returns a copy of the active phase-bias matrix.
func (nw *Network) PhaseBias() *mat.Dense { return mat.DenseCopyOf(nw.prof.biases) }

// Amplitudes returns a copy of the per-oscillator amplitude targets.
func (nw *Network) Amplitudes() []float64 {
	out := make([]float64, nw.n)
	copy(out, nw.prof.amplitudes)
	return out
}

// Frequencies returns a copy of the per-oscillator frequencies in Hz.
func (nw *Network) Frequencies() []float64 {
	out := make([]float64, nw.n)
	copy(out, nw.prof.frequencies)
	return out
}
