// Package lab wires two [wave.Source] frames into the interactive redshift
// experiment.
//
// A [Lab] is mutated only through its commands:
//
//   - [Lab.SetWavelength]: proper wavelength for both frames
//   - [Lab.SetBlackHoleMass]: mass of the black hole, in solar masses
//   - [Lab.SetEmissionRadius]: r-coordinate of emission, in km
//   - [Lab.ToggleRun]: pause or resume the animation clock
//
// and advanced by [Lab.Tick]. Every command and tick hands a fresh [Frame]
// to the registered observers.
//
// # Thread Safety
//
// A Lab is NOT thread-safe. [Loop] serialises ticks and commands on a single
// goroutine; renderers must do the same.
package lab
