// Package cpg implements a central pattern generator for hexapod
// locomotion: a network of diffusively coupled Hopf oscillators whose
// x-components drive the legs.
//
// Each oscillator i follows the Hopf normal form
//
//	dx/dt = μ(Aᵢ - r²)x - ωᵢy
//	dy/dt = μ(Aᵢ - r²)y + ωᵢx      r² = x² + y², ωᵢ = 2πfᵢ
//
// which settles onto a circular limit cycle of radius √Aᵢ. Coupling
// pulls oscillator i toward a phase-rotated copy of each neighbor j,
// so the network locks into the relative phases prescribed by the
// active gait's phase-bias matrix without constraining amplitudes.
//
// The [Network] facade owns the flat state vector and an immutable
// coupling profile. Gait, direction and turning transitions each build
// and validate a complete replacement profile before swapping it in;
// a rejected transition leaves the network untouched.
//
// # Thread Safety
//
// A Network is meant to be owned by a single control loop. Callers
// that must reconfigure concurrently with ticking need an external
// mutex around the whole (mutate, tick) sequence.
package cpg
