package cpg

import "fmt"

// Oscillator indices alternate sides: even indices drive right-side
// legs, odd indices left-side. The turning modulator depends on this
// convention, and the legs package names follow it (0=frontright,
// 1=frontleft, ...).
type Side int

const (
	RightSide Side = iota
	LeftSide
)

// SideOf reports which side of the body oscillator i drives.
func SideOf(i int) Side {
	if i%2 == 0 {
		return RightSide
	}
	return LeftSide
}

// TurnDirection selects which way the robot curves.
type TurnDirection int

const (
	TurnNone TurnDirection = iota
	TurnLeft
	TurnRight
)

func (d TurnDirection) String() string {
	switch d {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "none"
	}
}

func ParseTurnDirection(s string) (TurnDirection, error) {
	switch s {
	case "left":
		return TurnLeft, nil
	case "right":
		return TurnRight, nil
	case "", "none":
		return TurnNone, nil
	default:
		return TurnNone, fmt.Errorf("cpg: unknown turn direction %q", s)
	}
}

// TurnState records the active turning command. The zero value means
// no turn.
type TurnState struct {
	Direction TurnDirection
	Factor    float64
}

func (t TurnState) Active() bool { return t.Direction != TurnNone }

// Stride and cadence asymmetry per unit turning factor. Inside legs
// shorten and slow by these fractions, outside legs lengthen and
// quicken by the same amount.
const (
	turnAmplitudeGain = 0.5
	turnFrequencyGain = 0.3
)

// turnArrays derives the per-oscillator amplitude and frequency
// arrays for a turn state. With no turn active every entry is the
// base value.
func turnArrays(n int, baseAmp, baseFreq float64, turn TurnState) (amps, freqs []float64) {
	amps = make([]float64, n)
	freqs = make([]float64, n)
	for i := 0; i < n; i++ {
		ampScale, freqScale := turnScales(i, turn)
		amps[i] = baseAmp * ampScale
		freqs[i] = baseFreq * freqScale
	}
	return amps, freqs
}

func turnScales(i int, turn TurnState) (ampScale, freqScale float64) {
	if !turn.Active() {
		return 1, 1
	}

	// Legs on the inside of the turn reduce stride and cadence, legs
	// on the outside increase both, like differential-drive steering.
	inside := (SideOf(i) == RightSide) == (turn.Direction == TurnRight)
	sign := 1.0
	if inside {
		sign = -1.0
	}
	return 1 + sign*turnAmplitudeGain*turn.Factor,
		1 + sign*turnFrequencyGain*turn.Factor
}
