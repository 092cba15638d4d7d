package wave

import (
	"math"

	"github.com/san-kum/redshift/internal/relativity"
)

const (
	DefaultWindow     = 3.0
	DefaultResolution = 16

	// samples closer than this fraction of a wavelength to x=0 are highlighted
	originBand = 0.03
)

type Vec3 struct {
	X, Y, Z float64
}

// Sample is the field at one observation point along the x axis.
type Sample struct {
	X      float64
	E      Vec3
	B      Vec3
	Origin bool
}

// Field evaluates the plane wave on a window of ±Window wavelengths with
// Resolution samples per wavelength.
type Field struct {
	Amplitude  float64
	Window     float64
	Resolution int
}

func DefaultField() Field {
	return Field{
		Amplitude:  relativity.FieldAmplitude,
		Window:     DefaultWindow,
		Resolution: DefaultResolution,
	}
}

// Points lays out the observation positions for a wavelength.
func (f Field) Points(wavelength float64) []float64 {
	n := int(math.Round(2 * f.Window * float64(f.Resolution)))
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = (-f.Window + float64(i)/float64(f.Resolution)) * wavelength
	}
	return pts
}

// Sample evaluates E and B at x for the source's effective wavelength and
// frequency at its current simulation time.
func (f Field) Sample(src *Source, x float64) Sample {
	w, freq := src.Effective()
	e := f.Amplitude * math.Cos(2*math.Pi*(freq*src.Time()-x/w))
	return Sample{
		X:      x,
		E:      Vec3{Y: e},
		B:      Vec3{Z: e / relativity.SpeedOfLight},
		Origin: math.Abs(x) < originBand*w,
	}
}

func (f Field) Samples(src *Source, points []float64) []Sample {
	out := make([]Sample, len(points))
	for i, x := range points {
		out[i] = f.Sample(src, x)
	}
	return out
}
