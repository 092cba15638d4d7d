package storage

import "github.com/san-kum/redshift/internal/lab"

// TraceRow is the field at x=0 in both frames after one tick.
type TraceRow struct {
	Tick               int
	EmittedTime        float64
	EmittedField       float64
	ObservedTime       float64
	ObservedField      float64
	ObservedWavelength float64
}

// Recorder collects a TraceRow for every tick that advanced time. Frames
// produced by commands only update the last seen frame.
type Recorder struct {
	rows []TraceRow
	last lab.Frame
	seen bool
}

func NewRecorder() *Recorder {
	return &Recorder{rows: make([]TraceRow, 0, 1024)}
}

func (r *Recorder) OnFrame(f lab.Frame) {
	advanced := !r.seen || f.Tick > r.last.Tick
	r.last, r.seen = f, true
	if !advanced || f.Tick == 0 {
		return
	}

	e, _ := f.Emitted.Origin()
	o, _ := f.Observed.Origin()
	r.rows = append(r.rows, TraceRow{
		Tick:               f.Tick,
		EmittedTime:        f.Emitted.Time,
		EmittedField:       e.E.Y,
		ObservedTime:       f.Observed.Time,
		ObservedField:      o.E.Y,
		ObservedWavelength: f.Observed.Wavelength,
	})
}

func (r *Recorder) Rows() []TraceRow { return r.rows }

// Last returns the most recent frame seen.
func (r *Recorder) Last() (lab.Frame, bool) { return r.last, r.seen }

// Series splits the trace into per-frame field series for plotting.
func Series(rows []TraceRow) (emitted, observed []float64) {
	emitted = make([]float64, len(rows))
	observed = make([]float64, len(rows))
	for i, r := range rows {
		emitted[i] = r.EmittedField
		observed[i] = r.ObservedField
	}
	return emitted, observed
}

// Times returns each frame's simulation time for every row.
func Times(rows []TraceRow) (emitted, observed []float64) {
	emitted = make([]float64, len(rows))
	observed = make([]float64, len(rows))
	for i, r := range rows {
		emitted[i] = r.EmittedTime
		observed[i] = r.ObservedTime
	}
	return emitted, observed
}
