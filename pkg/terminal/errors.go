package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhase is returned for a command that the current phase does not accept.
	ErrInvalidPhase = errors.New("command not allowed in current phase")

	// ErrNoCoins is returned by Insert when called without coins.
	ErrNoCoins = errors.New("no coins given")
)

// PhaseError reports a command issued in a phase that does not accept it.
type PhaseError struct {
	Phase   Phase
	Command Command
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Command, e.Phase.describe())
}

func (e *PhaseError) Unwrap() error { return ErrInvalidPhase }

// IsPhaseError reports whether err is a PhaseError.
func IsPhaseError(err error) bool {
	var e *PhaseError
	return errors.As(err, &e)
}
