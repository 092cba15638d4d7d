package lab

import (
	"io"
	"log/slog"

	"github.com/san-kum/redshift/internal/wave"
)

type Options struct {
	Wavelength     float64
	TimeStepFactor float64
	Field          wave.Field
	Fidelity       Fidelity
	Logger         *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Wavelength:     wave.DefaultWavelength,
		TimeStepFactor: wave.DefaultTimeStepFactor,
		Field:          wave.DefaultField(),
		Fidelity:       Reference,
	}
}

// Observer receives the render state after every command and tick.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// panel is one frame's source plus the geometry built from its effective
// wavelength. points and ruler are rebuilt only by commands.
type panel struct {
	src    *wave.Source
	points []float64
	ruler  wave.Ruler
}

func (p *panel) rebuild(field wave.Field) {
	w := p.src.EffectiveWavelength()
	p.points = field.Points(w)
	p.ruler = wave.NewRuler(w)
}

type Lab struct {
	emitted  panel
	observed panel

	field          wave.Field
	fidelity       Fidelity
	lastWavelength float64

	clock     *Clock
	ticks     int
	observers []Observer
	log       *slog.Logger
}

func New(opts Options) *Lab {
	if opts.Wavelength <= 0 {
		opts.Wavelength = wave.DefaultWavelength
	}
	if opts.Field.Resolution <= 0 || opts.Field.Window <= 0 {
		opts.Field = wave.DefaultField()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	l := &Lab{
		emitted:        panel{src: wave.NewSource(wave.Emitted, opts.Wavelength, opts.TimeStepFactor)},
		observed:       panel{src: wave.NewSource(wave.Observer, opts.Wavelength, opts.TimeStepFactor)},
		field:          opts.Field,
		fidelity:       opts.Fidelity,
		lastWavelength: opts.Wavelength,
		clock:          NewClock(),
		observers:      make([]Observer, 0),
		log:            opts.Logger,
	}
	l.emitted.rebuild(l.field)
	l.observed.rebuild(l.field)
	return l
}

func (l *Lab) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Source exposes a frame's source for inspection. Mutate only via commands.
func (l *Lab) Source(frame wave.Frame) *wave.Source {
	if frame == wave.Observer {
		return l.observed.src
	}
	return l.emitted.src
}

func (l *Lab) Fidelity() Fidelity      { return l.fidelity }
func (l *Lab) LastWavelength() float64 { return l.lastWavelength }
func (l *Lab) Clock() *Clock           { return l.clock }
func (l *Lab) Ticks() int              { return l.ticks }

// Tick advances both frames by their own time step while the clock runs.
// It reports whether time moved.
func (l *Lab) Tick() bool {
	if !l.clock.Running() {
		return false
	}
	l.emitted.src.Advance()
	l.observed.src.Advance()
	l.ticks++
	l.notify()
	return true
}

func (l *Lab) notify() {
	if len(l.observers) == 0 {
		return
	}
	f := l.Frame()
	for _, o := range l.observers {
		o.OnFrame(f)
	}
}
