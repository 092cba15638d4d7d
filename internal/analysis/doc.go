// Package analysis measures recorded field traces.
//
// A trace is the field at x=0 sampled once per tick against a frame's own
// simulation time. Two estimators recover the frequency:
//
//   - [ZeroCrossings]: interpolated sign changes, accurate from about three
//     quarters of a period onwards
//   - [DominantFrequency]: the peak bin of the power spectrum, coarse but
//     independent of phase
//
// Comparing the two frames gives the redshift the observer actually sees:
//
//	m, _ := analysis.Compare(emittedT, emittedE, observedT, observedE)
//	fmt.Println(m.Redshift)
package analysis
