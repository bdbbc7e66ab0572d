package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidMass indicates a body was created with a mass that is not
	// strictly positive and finite.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidState indicates a position or velocity with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInconsistentState indicates the body and trail sequences no longer
	// line up. It is never expected in a correct program.
	ErrInconsistentState = errors.New("dynamo: bodies and trails out of step")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownBody indicates a handle that does not name a registered body.
	ErrUnknownBody = errors.New("dynamo: unknown body handle")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
