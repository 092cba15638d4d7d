package lab

import (
	"errors"
	"fmt"

	"github.com/san-kum/redshift/internal/relativity"
)

var (
	// ErrInvalidInput indicates a command payload that is not a finite number.
	ErrInvalidInput = errors.New("lab: input is not a number")

	// ErrUnknownCommand indicates a command kind the lab does not handle.
	ErrUnknownCommand = errors.New("lab: unknown command")
)

// CommandError wraps a rejected command with the payload that caused it.
// Physical state is unchanged whenever a CommandError is returned.
type CommandError struct {
	Command CommandKind
	Input   string
	Wrapped error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Command, e.Input, e.Wrapped)
}

func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// Notice returns the short message shown to the user for a rejected command.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "please enter a number"
	case errors.Is(err, relativity.ErrNegativeRadius):
		return "emission radius must not be negative"
	case errors.Is(err, relativity.ErrNonPositiveWavelength):
		return "wavelength must be positive"
	}
	return err.Error()
}
