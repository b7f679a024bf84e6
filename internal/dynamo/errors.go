package dynamo

import "errors"

// Domain errors. Configuration errors are rejected at the API boundary
// before any state mutates; ErrInvalidState is a numerical fault and is
// never recovered from.
var (
	// ErrInvalidConfig indicates a rejected configuration change.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidState indicates integration produced NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrClockRollback indicates the real-time clock moved backwards.
	ErrClockRollback = errors.New("dynamo: clock moved backwards")
)
