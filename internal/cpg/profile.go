package cpg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hexcpg/internal/dynamo"
)

// profile is the complete coupling configuration of the network:
// everything the vector field reads besides the state itself. A
// profile is immutable once installed; transitions build a validated
// replacement and swap it in whole, so a rejected change can never
// leave the matrices half-updated.
type profile struct {
	gait      Gait
	strength  float64
	direction float64 // 0 forward, π backward
	turn      TurnState

	weights     *mat.Dense // n×n coupling weights, zero diagonal
	biases      *mat.Dense // n×n phase biases in [0, 2π), zero diagonal
	amplitudes  []float64  // per-oscillator Aᵢ (base unless turning)
	frequencies []float64  // per-oscillator fᵢ in Hz
}

// newProfile derives the full profile for a gait, direction and turn
// state from the network's base parameters.
func newProfile(g Gait, n int, strength, direction float64, turn TurnState, baseAmp, baseFreq float64) (*profile, error) {
	weights, biases := buildGait(g, n, strength)
	if direction != 0 {
		shiftBiases(biases, direction)
	}

	amps, freqs := turnArrays(n, baseAmp, baseFreq, turn)

	p := &profile{
		gait:        g,
		strength:    strength,
		direction:   direction,
		turn:        turn,
		weights:     weights,
		biases:      biases,
		amplitudes:  amps,
		frequencies: freqs,
	}
	if err := p.validate(n); err != nil {
		return nil, err
	}
	return p, nil
}

// withTurn returns a copy of p with only the turn state and the
// amplitude/frequency arrays replaced. The matrices are shared: they
// are never mutated after construction.
func (p *profile) withTurn(turn TurnState, baseAmp, baseFreq float64) *profile {
	amps, freqs := turnArrays(len(p.amplitudes), baseAmp, baseFreq, turn)
	c := *p
	c.turn = turn
	c.amplitudes = amps
	c.frequencies = freqs
	return &c
}

func (p *profile) validate(n int) error {
	if err := validateMatrix(p.weights, n, "coupling"); err != nil {
		return err
	}
	if err := validateMatrix(p.biases, n, "phase bias"); err != nil {
		return err
	}

	r, c := p.weights.Dims()
	_ = c
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if w := p.weights.At(i, j); w < 0 {
				return fmt.Errorf("cpg: negative coupling weight %.4f at (%d,%d): %w", w, i, j, dynamo.ErrInvalidConfig)
			}
			if b := p.biases.At(i, j); b < 0 || b >= 2*math.Pi {
				return fmt.Errorf("cpg: phase bias %.4f at (%d,%d) outside [0, 2π): %w", b, i, j, dynamo.ErrInvalidConfig)
			}
		}
	}

	if len(p.amplitudes) != n || len(p.frequencies) != n {
		return fmt.Errorf("cpg: amplitude/frequency arrays sized %d/%d, want %d: %w",
			len(p.amplitudes), len(p.frequencies), n, dynamo.ErrInvalidConfig)
	}
	for i := 0; i < n; i++ {
		if a := p.amplitudes[i]; a <= 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("cpg: oscillator %d amplitude %.4f: %w", i, a, dynamo.ErrInvalidConfig)
		}
		if f := p.frequencies[i]; f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cpg: oscillator %d frequency %.4f: %w", i, f, dynamo.ErrInvalidConfig)
		}
	}
	return nil
}

func validateMatrix(m *mat.Dense, n int, what string) error {
	r, c := m.Dims()
	if r != c || r != n {
		return fmt.Errorf("cpg: %s matrix is %dx%d, want %dx%d: %w", what, r, c, n, n, dynamo.ErrInvalidConfig)
	}
	for i := 0; i < n; i++ {
		if d := m.At(i, i); d != 0 {
			return fmt.Errorf("cpg: %s matrix has nonzero diagonal %.4f at (%d,%d): %w", what, d, i, i, dynamo.ErrInvalidConfig)
		}
	}
	return nil
}
