package cpg

import (
	"math"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/hexcpg/internal/analysis"
	"github.com/san-kum/hexcpg/internal/dynamo"
)

func mustNetwork(t *testing.T, n int, opts ...Option) *Network {
	t.Helper()
	nw, err := New(n, 1.0, 1.0, 1.0, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return nw
}

func settle(t *testing.T, nw *Network, seconds float64) {
	t.Helper()
	dt := 0.01
	for i := 0; i < int(seconds/dt); i++ {
		if _, err := nw.Tick(dt); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func phases(nw *Network) []float64 {
	s := nw.State()
	out := make([]float64, nw.N())
	for i := range out {
		out[i] = analysis.Phase(s[2*i], s[2*i+1])
	}
	return out
}

func TestNew_Rejections(t *testing.T) {
	g := NewWithT(t)

	_, err := New(0, 1, 1, 1)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

	_, err = New(6, 0, 1, 1)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

	_, err = New(6, 1, -1, 1)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

	_, err = New(6, 1, 1, 0)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
}

func TestNew_Defaults(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	g.Expect(nw.Gait()).To(Equal(Tripod))
	g.Expect(nw.Backward()).To(BeFalse())
	g.Expect(nw.Turning().Active()).To(BeFalse())

	// Symmetry-breaking seed: x near 0.1, y = 0, and no two
	// oscillators starting identical.
	s := nw.State()
	g.Expect(s).To(HaveLen(12))
	for i := 0; i < 6; i++ {
		g.Expect(s[2*i]).To(BeNumerically("~", 0.1, 0.01))
		g.Expect(s[2*i+1]).To(BeZero())
		for j := 0; j < i; j++ {
			g.Expect(s[2*i]).NotTo(Equal(s[2*j]))
		}
	}
	g.Expect(nw.Outputs()).To(Equal([]float64{s[0], s[2], s[4], s[6], s[8], s[10]}))
}

// An isolated oscillator must converge onto a circle of radius
// √amplitude and stay there.
func TestSingleOscillatorLimitCycle(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 1)

	settle(t, nw, 20)

	s := nw.State()
	r2 := s[0]*s[0] + s[1]*s[1]
	g.Expect(math.Abs(r2 - 1.0)).To(BeNumerically("<", 1e-3))

	// Bounded thereafter.
	settle(t, nw, 5)
	s = nw.State()
	r2 = s[0]*s[0] + s[1]*s[1]
	g.Expect(math.Abs(r2 - 1.0)).To(BeNumerically("<", 1e-3))
}

// With identical seeds the oscillators would stay bitwise equal and
// the gait coupling would damp the synchronized mode to the origin.
// The staggered seed must let every oscillator escape onto its limit
// cycle instead.
func TestTripodAvoidsSynchronizedCollapse(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	settle(t, nw, 60)

	s := nw.State()
	for i := 0; i < 6; i++ {
		r2 := s[2*i]*s[2*i] + s[2*i+1]*s[2*i+1]
		g.Expect(r2).To(BeNumerically("~", 1.0, 0.05),
			"oscillator %d collapsed (r² = %.6f)", i, r2)
	}
	g.Expect(s[0:2]).NotTo(Equal(s[2:4]))
}

// Tripod gait: {0,2,4} and {1,3,5} lock in phase within each group and
// in anti-phase across groups.
func TestTripodPhaseLock(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	settle(t, nw, 30)

	ph := phases(nw)
	for _, pair := range [][2]int{{0, 2}, {0, 4}, {1, 3}, {1, 5}} {
		g.Expect(analysis.CircDist(ph[pair[0]], ph[pair[1]])).To(BeNumerically("<", 0.1),
			"oscillators %d and %d should be in phase", pair[0], pair[1])
	}
	for _, pair := range [][2]int{{0, 1}, {2, 3}, {4, 5}} {
		g.Expect(analysis.CircDist(ph[pair[0]], ph[pair[1]])).To(BeNumerically("~", math.Pi, 0.1),
			"oscillators %d and %d should be anti-phase", pair[0], pair[1])
	}
}

// Wave gait: oscillator i lags oscillator 0 by (2π/6)·i.
func TestWavePhaseLag(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)
	g.Expect(nw.SetGait(Wave, 1.0, false)).To(Succeed())

	settle(t, nw, 30)

	ph := phases(nw)
	for i := 1; i < 6; i++ {
		want := analysis.Wrap(2 * math.Pi * float64(i) / 6)
		got := analysis.Wrap(ph[0] - ph[i])
		g.Expect(analysis.CircDist(got, want)).To(BeNumerically("<", 0.15),
			"oscillator %d should lag leg 0 by %.3f, got %.3f", i, want, got)
	}
}

// Reversing and restoring direction must reproduce the gait's phase
// matrix exactly.
func TestDirectionRoundTrip(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)
	g.Expect(nw.SetGait(Wave, 1.0, false)).To(Succeed())

	forward := nw.PhaseBias()

	g.Expect(nw.SetDirection(true)).To(Succeed())
	g.Expect(nw.Backward()).To(BeTrue())
	g.Expect(mat.Equal(forward, nw.PhaseBias())).To(BeFalse())

	g.Expect(nw.SetDirection(false)).To(Succeed())
	g.Expect(nw.Backward()).To(BeFalse())
	g.Expect(mat.Equal(forward, nw.PhaseBias())).To(BeTrue())
}

// Direction must survive a gait switch when asked to.
func TestDirectionSurvivesGaitSwitch(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	g.Expect(nw.SetDirection(true)).To(Succeed())
	g.Expect(nw.SetGait(Wave, 1.0, true)).To(Succeed())
	g.Expect(nw.Backward()).To(BeTrue())

	// The installed matrix must equal wave-then-backward built fresh.
	fresh := mustNetwork(t, 6)
	g.Expect(fresh.SetGait(Wave, 1.0, false)).To(Succeed())
	g.Expect(fresh.SetDirection(true)).To(Succeed())
	g.Expect(mat.Equal(nw.PhaseBias(), fresh.PhaseBias())).To(BeTrue())

	// Without preservation the direction resets to forward.
	g.Expect(nw.SetGait(Tripod, 1.0, false)).To(Succeed())
	g.Expect(nw.Backward()).To(BeFalse())
}

// Turning and stopping must restore base amplitudes and frequencies
// exactly, and turning must be orthogonal to gait and direction.
func TestTurnRoundTrip(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	g.Expect(nw.Turn(TurnRight, 0.5)).To(Succeed())
	g.Expect(nw.Turning()).To(Equal(TurnState{Direction: TurnRight, Factor: 0.5}))

	amps := nw.Amplitudes()
	freqs := nw.Frequencies()
	g.Expect(amps[0]).To(Equal(0.75))
	g.Expect(freqs[0]).To(Equal(0.85))
	g.Expect(amps[1]).To(Equal(1.25))
	g.Expect(freqs[1]).To(Equal(1.15))

	// Gait and direction changes must not clear the turn.
	g.Expect(nw.SetGait(Wave, 1.0, false)).To(Succeed())
	g.Expect(nw.SetDirection(true)).To(Succeed())
	g.Expect(nw.Turning().Active()).To(BeTrue())
	g.Expect(nw.Amplitudes()[0]).To(Equal(0.75))

	nw.StopTurning()
	g.Expect(nw.Turning().Active()).To(BeFalse())
	for i := 0; i < 6; i++ {
		g.Expect(nw.Amplitudes()[i]).To(Equal(1.0))
		g.Expect(nw.Frequencies()[i]).To(Equal(1.0))
	}

	// Gait and direction survived the whole dance.
	g.Expect(nw.Gait()).To(Equal(Wave))
	g.Expect(nw.Backward()).To(BeTrue())
}

func TestTurn_ClampsFactor(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	g.Expect(nw.Turn(TurnLeft, 2.5)).To(Succeed())
	g.Expect(nw.Turning().Factor).To(Equal(1.0))

	g.Expect(nw.Turn(TurnLeft, -0.5)).To(Succeed())
	g.Expect(nw.Turning().Factor).To(Equal(0.0))
}

func TestTurn_StrictFactors(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6, WithStrictFactors())

	err := nw.Turn(TurnRight, 1.5)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))

	// Rejected without mutating anything.
	g.Expect(nw.Turning().Active()).To(BeFalse())
	g.Expect(nw.Amplitudes()[0]).To(Equal(1.0))

	g.Expect(nw.Turn(TurnRight, 0.9)).To(Succeed())
}

// Switching gait mid-walk must not touch the state vector.
func TestGaitSwitchContinuity(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	settle(t, nw, 5)
	before := nw.State()

	g.Expect(nw.SetGait(Wave, 1.0, false)).To(Succeed())
	g.Expect(nw.State()).To(Equal(before))

	// And the next tick still produces finite output.
	out, err := nw.Tick(0.01)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dynamo.State(out).IsValid()).To(BeTrue())
}

func TestTick_ZeroIsNoOp(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	first, err := nw.Tick(0.02)
	g.Expect(err).NotTo(HaveOccurred())
	before := nw.State()

	again, err := nw.Tick(0)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(again).To(Equal(first))
	g.Expect(nw.State()).To(Equal(before))
}

func TestTick_NegativeRejected(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	before := nw.State()
	_, err := nw.Tick(-0.01)
	g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	g.Expect(nw.State()).To(Equal(before))
}

// A non-finite dt must be rejected at the boundary, not fed to the
// integrator where it would silently produce a zero-step no-op.
func TestTick_NonFiniteRejected(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	before := nw.State()
	for _, dt := range []float64{math.Inf(1), math.NaN()} {
		_, err := nw.Tick(dt)
		g.Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	}
	g.Expect(nw.State()).To(Equal(before))
}

func TestSetGait_Rejections(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)
	before := nw.Coupling()

	g.Expect(nw.SetGait(Gait(42), 1.0, false)).To(MatchError(dynamo.ErrInvalidConfig))
	g.Expect(nw.SetGait(Tripod, -1.0, false)).To(MatchError(dynamo.ErrInvalidConfig))
	g.Expect(mat.Equal(before, nw.Coupling())).To(BeTrue())
}

func TestTickNow(t *testing.T) {
	g := NewWithT(t)
	clock := dynamo.NewManualClock(time.Unix(100, 0))
	nw := mustNetwork(t, 6, WithClock(clock))

	// First tick measures from construction.
	seeded := nw.Outputs()
	clock.Advance(100 * time.Millisecond)
	out, err := nw.TickNow()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).NotTo(Equal(seeded))

	// No elapsed time: previous outputs, unchanged state.
	out2, err := nw.TickNow()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out2).To(Equal(out))

	// A clock rollback is an environment error, never clamped.
	clock.Advance(-time.Second)
	_, err = nw.TickNow()
	g.Expect(err).To(MatchError(dynamo.ErrClockRollback))
}

func TestReset(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	g.Expect(nw.SetGait(Wave, 1.0, false)).To(Succeed())
	g.Expect(nw.SetDirection(true)).To(Succeed())
	g.Expect(nw.Turn(TurnLeft, 0.7)).To(Succeed())
	settle(t, nw, 2)

	nw.Reset()

	// State reseeded to the construction seed, turn cleared, gait and
	// direction kept.
	g.Expect(nw.State()).To(Equal(mustNetwork(t, 6).State()))
	g.Expect(nw.Turning().Active()).To(BeFalse())
	g.Expect(nw.Amplitudes()[1]).To(Equal(1.0))
	g.Expect(nw.Gait()).To(Equal(Wave))
	g.Expect(nw.Backward()).To(BeTrue())
}

// Turning must actually shift each side's cadence: with a right turn
// the left legs oscillate faster than the right legs.
func TestTurnShiftsCadence(t *testing.T) {
	g := NewWithT(t)
	nw := mustNetwork(t, 6)

	// Decouple so each oscillator runs at its own frequency.
	g.Expect(nw.SetGait(Tripod, 0, false)).To(Succeed())
	g.Expect(nw.Turn(TurnRight, 1.0)).To(Succeed())

	dt := 0.005
	steps := 4096
	right := make([]float64, steps)
	left := make([]float64, steps)
	for i := 0; i < steps; i++ {
		out, err := nw.Tick(dt)
		g.Expect(err).NotTo(HaveOccurred())
		right[i] = out[0]
		left[i] = out[1]
	}

	fRight := analysis.DominantFrequency(right, dt)
	fLeft := analysis.DominantFrequency(left, dt)
	g.Expect(fRight).To(BeNumerically("~", 0.7, 0.08))
	g.Expect(fLeft).To(BeNumerically("~", 1.3, 0.08))
}
