package wave

import (
	"fmt"

	"github.com/san-kum/redshift/internal/relativity"
)

const (
	DefaultWavelength     = 500.0
	DefaultTimeStepFactor = 3e-4
)

// Frame selects which measurements a Source reports as effective.
type Frame int

const (
	Emitted Frame = iota
	Observer
)

func (f Frame) String() string {
	switch f {
	case Emitted:
		return "emitted"
	case Observer:
		return "observed"
	}
	return fmt.Sprintf("frame(%d)", int(f))
}

// Observation is the redshifted pair seen by the distant shell observer.
// It is either present as a whole or absent.
type Observation struct {
	Wavelength float64
	Frequency  float64
}

// Source is one electromagnetic wave measured in a single frame.
type Source struct {
	frame Frame

	wavelength float64
	frequency  float64
	observed   *Observation

	radius    float64
	radiusSet bool
	redshift  float64

	mass float64
	rs   float64

	period     float64
	dt         float64
	t          float64
	stepFactor float64
}

func NewSource(frame Frame, wavelength, stepFactor float64) *Source {
	if stepFactor <= 0 {
		stepFactor = DefaultTimeStepFactor
	}
	s := &Source{
		frame:      frame,
		wavelength: wavelength,
		frequency:  relativity.Frequency(wavelength),
		stepFactor: stepFactor,
	}
	s.retime()
	return s
}

func (s *Source) Frame() Frame                 { return s.frame }
func (s *Source) Wavelength() float64          { return s.wavelength }
func (s *Source) Frequency() float64           { return s.frequency }
func (s *Source) Redshift() float64            { return s.redshift }
func (s *Source) Mass() float64                { return s.mass }
func (s *Source) SchwarzschildRadius() float64 { return s.rs }
func (s *Source) Period() float64              { return s.period }
func (s *Source) TimeStep() float64            { return s.dt }
func (s *Source) Time() float64                { return s.t }

// Observed returns the redshifted measurements if they have been computed.
func (s *Source) Observed() (Observation, bool) {
	if s.observed == nil {
		return Observation{}, false
	}
	return *s.observed, true
}

// EmissionRadius returns the r-coordinate of emission if one was supplied.
func (s *Source) EmissionRadius() (float64, bool) {
	return s.radius, s.radiusSet
}

// Effective resolves the wavelength and frequency used for sampling and
// display: the observation for the observer frame once present, otherwise
// the proper values.
func (s *Source) Effective() (wavelength, frequency float64) {
	if s.frame == Observer && s.observed != nil {
		return s.observed.Wavelength, s.observed.Frequency
	}
	return s.wavelength, s.frequency
}

func (s *Source) EffectiveWavelength() float64 {
	w, _ := s.Effective()
	return w
}

func (s *Source) EffectiveFrequency() float64 {
	_, f := s.Effective()
	return f
}

// SetBlackHole stores the mass and its Schwarzschild radius.
func (s *Source) SetBlackHole(mass float64) {
	s.mass = mass
	s.rs = relativity.SchwarzschildRadius(mass)
}

func (s *Source) SetEmissionRadius(r float64) error {
	if r < 0 {
		return relativity.ErrNegativeRadius
	}
	s.radius, s.radiusSet = r, true
	return nil
}

// ComputeRedshift recomputes z from the emission radius. Without a radius
// z is left untouched.
func (s *Source) ComputeRedshift() error {
	if !s.radiusSet {
		return nil
	}
	z, err := relativity.RedshiftRatio(s.radius, s.rs)
	if err != nil {
		return err
	}
	s.redshift = z
	return nil
}

// UpdateObserved derives the observation from z. A ratio of exactly zero
// means no observation, the same as never configured.
func (s *Source) UpdateObserved() {
	if s.redshift == 0 {
		s.observed = nil
		return
	}
	w := relativity.ObservedWavelength(s.wavelength, s.redshift)
	s.observed = &Observation{Wavelength: w, Frequency: relativity.Frequency(w)}
}

// UpdateMeasurements installs a new proper wavelength and restarts the clock.
// Unless recomputeFrequency is set the frequency keeps its previous value and
// only the period and time step are derived from it again.
func (s *Source) UpdateMeasurements(wavelength float64, recomputeFrequency bool) {
	s.wavelength = wavelength
	if recomputeFrequency {
		s.frequency = relativity.Frequency(wavelength)
	}
	s.retime()
}

// Advance moves simulation time forward by one tick.
func (s *Source) Advance() {
	s.t += s.dt
}

// period and time step always follow the proper frequency, even for the
// observer frame.
func (s *Source) retime() {
	s.period = 1 / s.frequency
	s.dt = s.stepFactor * s.period
	s.t = 0
}
