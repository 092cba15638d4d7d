// Package relativity provides the static Schwarzschild model used by the lab.
//
// Units are simplified so the numbers stay readable on screen:
//
//   - [SchwarzschildRadius]: horizon radius in km for a mass in solar masses
//   - [RedshiftRatio]: z seen by a distant shell observer for a wave emitted at r
//   - [ObservedWavelength]: wavelength stretched by (1 + z)
//
// Emission at or inside the horizon is a degenerate state (z = 0), not an
// error. Only a negative emission radius is rejected.
package relativity
