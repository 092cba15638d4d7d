package lab

import "fmt"

// Fidelity selects how commands are sequenced.
//
// Reference keeps two known lags: a wavelength change does not recompute the
// proper frequency, and a mass change updates the observed wavelength before
// the new redshift ratio, so the observer frame trails by one command.
// Corrected removes both.
type Fidelity int

const (
	Reference Fidelity = iota
	Corrected
)

func (f Fidelity) String() string {
	switch f {
	case Reference:
		return "reference"
	case Corrected:
		return "corrected"
	}
	return fmt.Sprintf("fidelity(%d)", int(f))
}

func ParseFidelity(s string) (Fidelity, error) {
	switch s {
	case "", "reference":
		return Reference, nil
	case "corrected":
		return Corrected, nil
	}
	return Reference, fmt.Errorf("unknown fidelity: %s", s)
}
