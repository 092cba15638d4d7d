package relativity

const (
	// SpeedOfLight in the model's consistent length/time units.
	SpeedOfLight = 3e8

	// FieldAmplitude is the peak electric field E0.
	FieldAmplitude = 1e4

	// radiusPerSolarMass replaces 2GM/c² for km and solar masses.
	radiusPerSolarMass = 3.0
)

// SchwarzschildRadius returns the horizon radius in km for a mass given in
// solar masses. Negative masses are not validated.
func SchwarzschildRadius(mass float64) float64 {
	return radiusPerSolarMass * mass
}

// Frequency returns c / wavelength.
func Frequency(wavelength float64) float64 {
	return SpeedOfLight / wavelength
}
