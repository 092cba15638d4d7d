package wave

// Ruler marks the length of one wavelength below the wave axis.
type Ruler struct {
	Points [6]Vec3
	Radius float64
}

// NewRuler spans exactly one wavelength, centred on x=0, with end ticks.
func NewRuler(wavelength float64) Ruler {
	y := -0.65 * wavelength
	x := -0.5 * wavelength
	dy := wavelength / 5
	return Ruler{
		Points: [6]Vec3{
			{X: x, Y: y + dy},
			{X: x, Y: y - dy},
			{X: x, Y: y},
			{X: x + wavelength, Y: y},
			{X: x + wavelength, Y: y + dy},
			{X: x + wavelength, Y: y - dy},
		},
		Radius: wavelength / 30,
	}
}

// Length is the distance between the two end ticks.
func (r Ruler) Length() float64 {
	return r.Points[3].X - r.Points[2].X
}
