package relativity

import "math"

// RedshiftRatio returns z for a wave emitted at radius r around a horizon of
// radius rs, as measured by a static observer at infinity.
//
// r <= rs yields 0 (degenerate, no frame dragging or infinite redshift is
// modelled). As r approaches rs from above z grows without bound.
func RedshiftRatio(r, rs float64) (float64, error) {
	if r < 0 {
		return 0, ErrNegativeRadius
	}
	if r <= rs {
		return 0, nil
	}
	return 1/math.Sqrt(1-rs/r) - 1, nil
}

// ObservedWavelength stretches a proper wavelength by (1 + z).
func ObservedWavelength(wavelength, z float64) float64 {
	return wavelength * (1 + z)
}
