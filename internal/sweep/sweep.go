// Package sweep runs independent labs over a grid of emission radii.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/redshift/internal/analysis"
	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/storage"
	"github.com/san-kum/redshift/internal/wave"
)

var ErrEmptyGrid = errors.New("sweep: empty radius grid")

// Point is one lab's result at a single emission radius.
type Point struct {
	Radius             float64
	Redshift           float64
	ObservedWavelength float64
	Observed           bool

	// Measured is the redshift recovered from the recorded trace; only set
	// when the sweep runs ticks.
	Measured    float64
	MeasuredErr error
}

type Sweep struct {
	Options lab.Options
	Mass    float64

	// Ticks run per lab before measuring; 0 skips the measurement.
	Ticks int

	// Workers caps concurrent labs; 0 starts one per radius.
	Workers int
}

// Radii lays out n evenly spaced radii from lo to hi inclusive.
func Radii(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func (s *Sweep) Run(ctx context.Context, radii []float64) ([]Point, error) {
	if len(radii) == 0 {
		return nil, ErrEmptyGrid
	}

	points := make([]Point, len(radii))
	errs := make([]error, len(radii))

	workers := s.Workers
	if workers <= 0 || workers > len(radii) {
		workers = len(radii)
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, r := range radii {
		wg.Add(1)
		go func(idx int, r float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			points[idx], errs[idx] = s.one(ctx, r)
		}(i, r)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return points, nil
}

func (s *Sweep) one(ctx context.Context, r float64) (Point, error) {
	l := lab.New(s.Options)
	for _, c := range []lab.Command{
		{Kind: lab.CommandMass, Payload: fmt.Sprintf("%g", s.Mass)},
		{Kind: lab.CommandRadius, Payload: fmt.Sprintf("%g", r)},
	} {
		if err := l.Apply(c); err != nil {
			return Point{}, fmt.Errorf("radius %g: %w", r, err)
		}
	}

	obs := l.Source(wave.Observer)
	p := Point{
		Radius:             r,
		Redshift:           obs.Redshift(),
		ObservedWavelength: obs.EffectiveWavelength(),
	}
	_, p.Observed = obs.Observed()

	if s.Ticks <= 0 {
		return p, nil
	}

	rec := storage.NewRecorder()
	l.AddObserver(rec)
	loop := &lab.Loop{Lab: l, MaxTicks: s.Ticks}
	if err := loop.Run(ctx); err != nil {
		return Point{}, err
	}

	et, ot := storage.Times(rec.Rows())
	ee, oe := storage.Series(rec.Rows())
	c, err := analysis.Compare(et, ee, ot, oe)
	p.Measured, p.MeasuredErr = c.Redshift, err
	return p, nil
}
