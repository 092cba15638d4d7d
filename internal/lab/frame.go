package lab

import "github.com/san-kum/redshift/internal/wave"

// Panel is the render state of one frame.
type Panel struct {
	Frame      wave.Frame
	Status     string
	Amplitude  float64
	Time       float64
	Wavelength float64
	Frequency  float64
	Samples    []wave.Sample
	Ruler      wave.Ruler
}

// Frame is everything a renderer needs after a command or tick.
type Frame struct {
	Tick     int
	State    RunState
	RunLabel string
	Emitted  Panel
	Observed Panel
}

// Origin returns the highlighted sample at x=0, if the panel has one.
func (p Panel) Origin() (wave.Sample, bool) {
	for _, s := range p.Samples {
		if s.Origin {
			return s, true
		}
	}
	return wave.Sample{}, false
}

// Frame samples both fields at the current simulation time.
func (l *Lab) Frame() Frame {
	return Frame{
		Tick:     l.ticks,
		State:    l.clock.State(),
		RunLabel: l.clock.Label(),
		Emitted:  l.panelFrame(&l.emitted),
		Observed: l.panelFrame(&l.observed),
	}
}

func (l *Lab) panelFrame(p *panel) Panel {
	w, f := p.src.Effective()
	return Panel{
		Frame:      p.src.Frame(),
		Status:     p.src.Status(),
		Amplitude:  l.field.Amplitude,
		Time:       p.src.Time(),
		Wavelength: w,
		Frequency:  f,
		Samples:    l.field.Samples(p.src, p.points),
		Ruler:      p.ruler,
	}
}
