package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWeapon indicates a weapon name with no definition.
	ErrUnknownWeapon = errors.New("sim: unknown weapon")

	// ErrEmptyScene indicates an operation that needs at least one body.
	ErrEmptyScene = errors.New("sim: scene has no bodies")
)

// SimError wraps a failure with the tick it happened on.
type SimError struct {
	Step    int
	Time    float64
	BodyID  int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) body %d: %v", e.Step, e.Time, e.BodyID, e.Wrapped)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
