package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/storage"
)

func cosine(f, dt float64, n int) (t, v []float64) {
	t = make([]float64, n)
	v = make([]float64, n)
	for i := range t {
		t[i] = float64(i) * dt
		v[i] = math.Cos(2 * math.Pi * f * t[i])
	}
	return t, v
}

func TestPowerSpectrumPeak(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 4 * float64(i) / 64)
	}
	ps := PowerSpectrum(data)
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}
	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 4 {
		t.Errorf("expected peak in bin 4, got %d", peak)
	}
	if data[0] != 1 {
		t.Error("PowerSpectrum must not modify its input")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1}, {3, 4}, {4, 4}, {1000, 1024},
	}
	for _, tt := range tests {
		if got := len(Pad(make([]float64, tt.in))); got != tt.want {
			t.Errorf("Pad(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestZeroCrossings(t *testing.T) {
	ts, vs := cosine(2, 0.001, 3000)
	f, n, err := ZeroCrossings(ts, vs)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Errorf("expected 12 crossings, got %d", n)
	}
	if math.Abs(f-2) > 1e-4 {
		t.Errorf("expected 2 Hz, got %g", f)
	}

	short, shortV := cosine(2, 0.001, 200)
	if _, _, err := ZeroCrossings(short, shortV); !errors.Is(err, ErrShortTrace) {
		t.Errorf("expected ErrShortTrace, got %v", err)
	}
}

func TestSegment(t *testing.T) {
	ts := []float64{0, 1, 2, 0, 1, 2, 3}
	vs := []float64{9, 9, 9, 1, 2, 3, 4}
	gotT, gotV := Segment(ts, vs)
	if len(gotT) != 4 || gotV[0] != 1 || gotT[3] != 3 {
		t.Errorf("unexpected segment %v %v", gotT, gotV)
	}
}

func TestDominantFrequency(t *testing.T) {
	_, vs := cosine(5, 0.001, 4096)
	f, err := DominantFrequency(vs, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	// bin width is 1/(4096*0.001) Hz
	if math.Abs(f-5) > 0.25 {
		t.Errorf("expected about 5 Hz, got %g", f)
	}
}

func TestCompareRecordedRun(t *testing.T) {
	l := lab.New(lab.DefaultOptions())
	for _, c := range []lab.Command{
		{Kind: lab.CommandMass, Payload: "1000"},
		{Kind: lab.CommandRadius, Payload: "6000"},
	} {
		if err := l.Apply(c); err != nil {
			t.Fatal(err)
		}
	}
	rec := storage.NewRecorder()
	l.AddObserver(rec)
	for i := 0; i < 6000; i++ {
		l.Tick()
	}

	et, ot := storage.Times(rec.Rows())
	ee, oe := storage.Series(rec.Rows())
	c, err := Compare(et, ee, ot, oe)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt2 - 1; math.Abs(c.Redshift-want) > 1e-5 {
		t.Errorf("expected measured redshift %g, got %g", want, c.Redshift)
	}
	if c.Emitted.Crossings <= c.Observed.Crossings {
		t.Errorf("observed wave should oscillate slower: %d vs %d crossings", c.Emitted.Crossings, c.Observed.Crossings)
	}
}

func TestCompareFlatSpace(t *testing.T) {
	ts, vs := cosine(3, 0.001, 2000)
	c, err := Compare(ts, vs, ts, vs)
	if err != nil {
		t.Fatal(err)
	}
	if c.Redshift != 0 {
		t.Errorf("expected zero redshift, got %g", c.Redshift)
	}
}
