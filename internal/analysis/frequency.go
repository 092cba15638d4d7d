package analysis

import (
	"errors"
	"math"
)

var ErrShortTrace = errors.New("analysis: trace too short to measure")

// Segment returns the tail of a trace after its last clock reset. Commands
// restart a frame's time at zero, so only the last segment is continuous.
func Segment(t, v []float64) ([]float64, []float64) {
	start := 0
	for i := 1; i < len(t) && i < len(v); i++ {
		if t[i] < t[i-1] {
			start = i
		}
	}
	n := min(len(t), len(v))
	return t[start:n], v[start:n]
}

// ZeroCrossings estimates frequency from linearly interpolated sign changes.
// It also returns how many crossings were found.
func ZeroCrossings(t, v []float64) (float64, int, error) {
	t, v = Segment(t, v)
	first, last, n := 0.0, 0.0, 0
	for i := 1; i < len(v); i++ {
		a, b := v[i-1], v[i]
		if a == 0 || (a > 0) == (b > 0) {
			continue
		}
		tc := t[i-1] + (t[i]-t[i-1])*a/(a-b)
		if n == 0 {
			first = tc
		}
		last = tc
		n++
	}
	if n < 2 || last == first {
		return 0, n, ErrShortTrace
	}
	// two crossings per period
	return float64(n-1) / (2 * (last - first)), n, nil
}

// DominantFrequency returns the frequency of the strongest non-zero
// spectral bin for samples spaced dt apart.
func DominantFrequency(v []float64, dt float64) (float64, error) {
	if len(v) < 4 || dt <= 0 {
		return 0, ErrShortTrace
	}
	ps := PowerSpectrum(v)
	peak, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			peak, idx = ps[i], i
		}
	}
	if idx == 0 {
		return 0, ErrShortTrace
	}
	return float64(idx) / (float64(2*len(ps)) * dt), nil
}

// Measurement is what a trace says about one frame.
type Measurement struct {
	Frequency float64
	Crossings int
	Peak      float64
}

func Measure(t, v []float64) (Measurement, error) {
	f, n, err := ZeroCrossings(t, v)
	if err != nil {
		return Measurement{Crossings: n}, err
	}
	m := Measurement{Frequency: f, Crossings: n}
	t, v = Segment(t, v)
	if len(t) > 1 {
		m.Peak, _ = DominantFrequency(v, (t[len(t)-1]-t[0])/float64(len(t)-1))
	}
	return m, nil
}

// Comparison holds both frames' measurements and the redshift ratio implied
// by their frequencies.
type Comparison struct {
	Emitted  Measurement
	Observed Measurement
	Redshift float64
}

func Compare(emittedT, emittedE, observedT, observedE []float64) (Comparison, error) {
	e, err := Measure(emittedT, emittedE)
	if err != nil {
		return Comparison{}, err
	}
	o, err := Measure(observedT, observedE)
	if err != nil {
		return Comparison{}, err
	}
	z := e.Frequency/o.Frequency - 1
	if math.Abs(z) < 1e-9 {
		z = 0
	}
	return Comparison{Emitted: e, Observed: o, Redshift: z}, nil
}
