package lab

import (
	"fmt"

	"github.com/san-kum/redshift/internal/relativity"
)

type CommandKind string

const (
	CommandWavelength CommandKind = "wavelength"
	CommandMass       CommandKind = "mass"
	CommandRadius     CommandKind = "radius"
	CommandToggle     CommandKind = "toggle"
)

// Command is one user action with its raw payload.
type Command struct {
	Kind    CommandKind `yaml:"command"`
	Payload string      `yaml:"value"`
}

// Apply dispatches a command to its handler.
func (l *Lab) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandWavelength:
		return l.SetWavelength(cmd.Payload)
	case CommandMass:
		return l.SetBlackHoleMass(cmd.Payload)
	case CommandRadius:
		return l.SetEmissionRadius(cmd.Payload)
	case CommandToggle:
		l.ToggleRun()
		return nil
	}
	return &CommandError{Command: cmd.Kind, Input: cmd.Payload, Wrapped: ErrUnknownCommand}
}

// SetWavelength sets the proper wavelength in nm on both frames and restarts
// their clocks.
func (l *Lab) SetWavelength(raw string) error {
	w, err := l.number(CommandWavelength, raw)
	if err != nil {
		return err
	}
	if w <= 0 {
		return l.reject(CommandWavelength, raw, relativity.ErrNonPositiveWavelength)
	}

	recompute := l.fidelity == Corrected
	l.lastWavelength = w
	l.emitted.src.UpdateMeasurements(w, recompute)
	l.observed.src.UpdateMeasurements(w, recompute)
	l.observed.src.UpdateObserved()

	l.emitted.rebuild(l.field)
	l.observed.rebuild(l.field)

	l.log.Debug("wavelength set", "nm", w, "frequency_hz", l.emitted.src.Frequency())
	l.notify()
	return nil
}

// SetBlackHoleMass sets the black hole mass in solar masses. With an emission
// radius already supplied the redshift ratio follows the new horizon.
func (l *Lab) SetBlackHoleMass(raw string) error {
	m, err := l.number(CommandMass, raw)
	if err != nil {
		return err
	}

	obs := l.observed.src
	if l.fidelity == Reference {
		// observation is derived from the ratio of the previous mass
		obs.UpdateObserved()
	}
	l.emitted.src.SetBlackHole(m)
	obs.SetBlackHole(m)
	if _, ok := obs.EmissionRadius(); ok {
		if err := obs.ComputeRedshift(); err != nil {
			return l.reject(CommandMass, raw, err)
		}
	}
	obs.UpdateMeasurements(l.lastWavelength, l.fidelity == Corrected)
	if l.fidelity == Corrected {
		obs.UpdateObserved()
	}

	l.observed.rebuild(l.field)

	l.log.Debug("black hole mass set", "solar_masses", m, "rs_km", obs.SchwarzschildRadius(), "z", obs.Redshift())
	l.notify()
	return nil
}

// SetEmissionRadius sets the r-coordinate of emission in km and derives the
// redshift seen by the shell observer.
func (l *Lab) SetEmissionRadius(raw string) error {
	r, err := l.number(CommandRadius, raw)
	if err != nil {
		return err
	}

	obs := l.observed.src
	if err := obs.SetEmissionRadius(r); err != nil {
		return l.reject(CommandRadius, raw, err)
	}
	if err := obs.ComputeRedshift(); err != nil {
		return l.reject(CommandRadius, raw, err)
	}
	obs.UpdateObserved()
	obs.UpdateMeasurements(l.lastWavelength, l.fidelity == Corrected)

	l.observed.rebuild(l.field)

	l.log.Debug("emission radius set", "km", r, "z", obs.Redshift())
	l.notify()
	return nil
}

// ToggleRun pauses or resumes time advancement and returns the new state.
func (l *Lab) ToggleRun() RunState {
	s := l.clock.Toggle()
	l.log.Debug("clock toggled", "state", s.String())
	l.notify()
	return s
}

func (l *Lab) number(kind CommandKind, raw string) (float64, error) {
	v, err := ParseNumber(raw)
	if err != nil {
		return 0, l.reject(kind, raw, err)
	}
	return v, nil
}

func (l *Lab) reject(kind CommandKind, raw string, err error) error {
	l.log.Warn("command rejected", "command", string(kind), "input", raw, "error", err)
	return &CommandError{Command: kind, Input: raw, Wrapped: err}
}

// String renders a command the way it is written in scripts.
func (c Command) String() string {
	if c.Kind == CommandToggle {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s=%s", c.Kind, c.Payload)
}
