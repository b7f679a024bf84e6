// Package dynamo provides the simulation primitives shared by the
// oscillator network and its integrators:
//
//   - [State]: flat vector of system variables
//   - [System]: autonomous ODE interface (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Clock]: injectable monotonic time source for real-time ticking
//
// The package is deliberately free of robot semantics; it knows nothing
// about oscillators, gaits or legs.
package dynamo
