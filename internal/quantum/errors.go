package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for eigenvalue problems.
var (
	// ErrInvalidArgument indicates a malformed request: too few grid points,
	// a non-positive eigenvalue count or more eigenvalues than grid points.
	ErrInvalidArgument = errors.New("quantum: invalid argument")

	// ErrDimensionMismatch indicates a vector whose length does not match the grid.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch between vector and grid")

	// ErrNoConvergence indicates the iterative eigensolver ran out of iterations.
	ErrNoConvergence = errors.New("quantum: eigensolver did not converge")

	// ErrSingularShift indicates the shift coincides with an eigenvalue of the operator.
	ErrSingularShift = errors.New("quantum: shifted operator is singular")

	// ErrUnknownMethod indicates an eigensolver name that is not registered.
	ErrUnknownMethod = errors.New("quantum: unknown eigensolver method")
)

// SolveError wraps a failure with the stage and method it happened in.
type SolveError struct {
	Method  string
	Stage   string
	Wrapped error
}

func (e *SolveError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Wrapped)
	}
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.Method, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}

// Invalid returns an ErrInvalidArgument carrying a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
