package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum applies a Hann window, zero-pads to the next power of two
// and returns the magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	windowed := make([]float64, len(data))
	copy(windowed, data)
	window.Apply(windowed, window.Hann)

	spectrum := fft.FFTReal(Pad(windowed))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}
