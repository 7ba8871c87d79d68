package physics

import "errors"

// Domain errors for body construction and state checks.
var (
	// ErrInvalidBody indicates a non-positive radius or mass.
	ErrInvalidBody = errors.New("physics: radius and mass must be positive")

	// ErrInvalidState indicates a NaN or Inf in position or velocity.
	ErrInvalidState = errors.New("physics: invalid state (NaN or Inf detected)")
)
