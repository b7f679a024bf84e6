// Package legs maps oscillator outputs onto the hexapod's legs: a
// fixed index↔name table, activation thresholding, and the command
// strings the actuator firmware understands. It sits downstream of the
// oscillator network and only ever consumes its output vector.
//
// The index order matches the network's oscillator order and the
// turning convention: even indices are right-side legs.
package legs

import (
	"fmt"
	"strings"
)

// Count is the number of legs on a hexapod.
const Count = 6

// DefaultThreshold is the output level above which a leg counts as
// active (in its power stroke).
const DefaultThreshold = 0.5

var names = [Count]string{
	"frontright",
	"frontleft",
	"midright",
	"midleft",
	"backright",
	"backleft",
}

// Name returns the leg name for oscillator index i.
func Name(i int) string {
	if i < 0 || i >= Count {
		return fmt.Sprintf("leg%d", i)
	}
	return names[i]
}

// Index returns the oscillator index for a leg name.
func Index(name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Active returns the names of the legs whose output exceeds the
// threshold, in index order.
func Active(outputs []float64, threshold float64) []string {
	var active []string
	for i, v := range outputs {
		if v > threshold {
			active = append(active, Name(i))
		}
	}
	return active
}

// Command translates an output vector into a firmware command: "off"
// when no leg is active, "all" when every leg is, and a comma-joined
// name list otherwise.
func Command(outputs []float64, threshold float64) string {
	active := Active(outputs, threshold)
	switch {
	case len(active) == 0:
		return "off"
	case len(active) == len(outputs):
		return "all"
	default:
		return strings.Join(active, ",")
	}
}

// Tracker suppresses repeated commands: the firmware only needs to
// hear about changes.
type Tracker struct {
	last    string
	started bool
}

// Update translates outputs and reports whether the command differs
// from the previous one. The first update always reports a change.
func (t *Tracker) Update(outputs []float64, threshold float64) (cmd string, changed bool) {
	cmd = Command(outputs, threshold)
	changed = !t.started || cmd != t.last
	t.last = cmd
	t.started = true
	return cmd, changed
}

// Reset forgets the last command, so the next Update always fires.
func (t *Tracker) Reset() {
	t.last = ""
	t.started = false
}
