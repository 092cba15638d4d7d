package relativity

import "errors"

var (
	// ErrNegativeRadius indicates an emission radius below zero.
	ErrNegativeRadius = errors.New("relativity: emission radius must not be negative")

	// ErrNonPositiveWavelength indicates a wavelength that cannot carry a frequency.
	ErrNonPositiveWavelength = errors.New("relativity: wavelength must be positive")
)
