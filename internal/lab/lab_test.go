package lab_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/relativity"
	"github.com/san-kum/redshift/internal/wave"
)

type snapshot struct {
	wavelength float64
	frequency  float64
	mass       float64
	rs         float64
	radius     float64
	radiusSet  bool
	z          float64
	observed   wave.Observation
	hasObs     bool
}

func snap(l *lab.Lab) snapshot {
	obs := l.Source(wave.Observer)
	r, ok := obs.EmissionRadius()
	o, hasObs := obs.Observed()
	return snapshot{
		wavelength: obs.Wavelength(),
		frequency:  obs.Frequency(),
		mass:       obs.Mass(),
		rs:         obs.SchwarzschildRadius(),
		radius:     r,
		radiusSet:  ok,
		z:          obs.Redshift(),
		observed:   o,
		hasObs:     hasObs,
	}
}

var _ = Describe("Lab", func() {
	var (
		l      *lab.Lab
		opts   lab.Options
		frames []lab.Frame
	)

	BeforeEach(func() {
		opts = lab.DefaultOptions()
		frames = nil
	})

	JustBeforeEach(func() {
		l = lab.New(opts)
		l.AddObserver(lab.ObserverFunc(func(f lab.Frame) { frames = append(frames, f) }))
	})

	Describe("startup", func() {
		It("starts at 500 nm with no black hole and no emission radius", func() {
			for _, frame := range []wave.Frame{wave.Emitted, wave.Observer} {
				src := l.Source(frame)
				Expect(src.Wavelength()).To(Equal(500.0))
				Expect(src.Mass()).To(BeZero())
				_, ok := src.EmissionRadius()
				Expect(ok).To(BeFalse())
			}
			Expect(l.Clock().State()).To(Equal(lab.Running))
			Expect(l.Frame().RunLabel).To(Equal("Pause"))
		})

		It("samples both frames across three wavelengths either side", func() {
			f := l.Frame()
			Expect(f.Emitted.Samples).To(HaveLen(96))
			Expect(f.Observed.Samples).To(HaveLen(96))
			Expect(f.Emitted.Samples[0].X).To(Equal(-1500.0))
			Expect(f.Observed.Ruler.Length()).To(Equal(500.0))
		})
	})

	Describe("flat space", func() {
		It("never redshifts without mass", func() {
			Expect(l.SetEmissionRadius("6000")).To(Succeed())

			obs := l.Source(wave.Observer)
			Expect(obs.SchwarzschildRadius()).To(BeZero())
			Expect(obs.Redshift()).To(BeZero())
			_, ok := obs.Observed()
			Expect(ok).To(BeFalse())
			Expect(obs.EffectiveWavelength()).To(Equal(obs.Wavelength()))
			Expect(obs.EffectiveFrequency()).To(Equal(obs.Frequency()))
		})
	})

	Describe("a 1000 solar mass black hole", func() {
		JustBeforeEach(func() {
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())
		})

		It("has a 3000 km horizon", func() {
			Expect(l.Source(wave.Observer).SchwarzschildRadius()).To(Equal(3000.0))
			Expect(l.Source(wave.Emitted).SchwarzschildRadius()).To(Equal(3000.0))
		})

		It("treats emission at the horizon as degenerate", func() {
			Expect(l.SetEmissionRadius("3000")).To(Succeed())
			obs := l.Source(wave.Observer)
			Expect(obs.Redshift()).To(BeZero())
			_, ok := obs.Observed()
			Expect(ok).To(BeFalse())
		})

		It("redshifts emission at twice the horizon radius", func() {
			Expect(l.SetEmissionRadius("6000")).To(Succeed())

			obs := l.Source(wave.Observer)
			Expect(obs.Redshift()).To(BeNumerically("~", math.Sqrt2-1, 1e-9))
			o, ok := obs.Observed()
			Expect(ok).To(BeTrue())
			Expect(o.Wavelength).To(BeNumerically("~", 707.1068, 1e-3))
			Expect(o.Frequency).To(BeNumerically("~", relativity.SpeedOfLight/o.Wavelength, 1e-6))

			f := l.Frame()
			Expect(f.Observed.Wavelength).To(Equal(o.Wavelength))
			Expect(f.Observed.Ruler.Length()).To(BeNumerically("~", o.Wavelength, 1e-9))
			Expect(f.Observed.Samples[0].X).To(BeNumerically("~", -3*o.Wavelength, 1e-9))
			Expect(f.Observed.Status).To(ContainSubstring("Redshift Ratio: 0.41421"))
			Expect(f.Emitted.Wavelength).To(Equal(500.0))
		})

		It("keeps the redshift when the wavelength changes", func() {
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			Expect(l.SetWavelength("650")).To(Succeed())

			o, ok := l.Source(wave.Observer).Observed()
			Expect(ok).To(BeTrue())
			Expect(o.Wavelength).To(BeNumerically("~", 650*math.Sqrt2, 1e-9))
			Expect(l.Frame().Emitted.Samples[0].X).To(Equal(-1950.0))
		})
	})

	Describe("invalid input", func() {
		JustBeforeEach(func() {
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			frames = nil
		})

		DescribeTable("leaves every parameter unchanged",
			func(kind lab.CommandKind, input string) {
				before := snap(l)
				emittedBefore := l.Source(wave.Emitted).Wavelength()

				err := l.Apply(lab.Command{Kind: kind, Payload: input})

				Expect(err).To(MatchError(lab.ErrInvalidInput))
				Expect(lab.Notice(err)).To(Equal("please enter a number"))
				var cmdErr *lab.CommandError
				Expect(err).To(BeAssignableToTypeOf(cmdErr))
				Expect(snap(l)).To(Equal(before))
				Expect(l.Source(wave.Emitted).Wavelength()).To(Equal(emittedBefore))
				Expect(frames).To(BeEmpty())
			},
			Entry("wavelength text", lab.CommandWavelength, "red"),
			Entry("wavelength empty", lab.CommandWavelength, ""),
			Entry("mass text", lab.CommandMass, "heavy"),
			Entry("mass NaN", lab.CommandMass, "NaN"),
			Entry("radius text", lab.CommandRadius, "12km"),
			Entry("radius infinity", lab.CommandRadius, "Inf"),
		)

		It("rejects a negative emission radius without touching state", func() {
			before := snap(l)

			err := l.SetEmissionRadius("-10")

			Expect(err).To(MatchError(relativity.ErrNegativeRadius))
			Expect(lab.Notice(err)).To(Equal("emission radius must not be negative"))
			Expect(snap(l)).To(Equal(before))
		})

		It("rejects a wavelength that is not positive", func() {
			before := snap(l)
			Expect(l.SetWavelength("0")).To(MatchError(relativity.ErrNonPositiveWavelength))
			Expect(l.SetWavelength("-400")).To(MatchError(relativity.ErrNonPositiveWavelength))
			Expect(snap(l)).To(Equal(before))
		})

		It("rejects unknown commands", func() {
			Expect(l.Apply(lab.Command{Kind: "spin", Payload: "1"})).To(MatchError(lab.ErrUnknownCommand))
		})
	})

	Describe("pause and resume", func() {
		It("freezes time only while paused", func() {
			obs := l.Source(wave.Observer)
			emitted := l.Source(wave.Emitted)

			for i := 0; i < 50; i++ {
				Expect(l.Tick()).To(BeTrue())
			}
			t1 := obs.Time()
			Expect(t1).To(BeNumerically(">", 0))

			Expect(l.ToggleRun()).To(Equal(lab.Paused))
			Expect(l.Frame().RunLabel).To(Equal("Resume"))
			for i := 0; i < 50; i++ {
				Expect(l.Tick()).To(BeFalse())
			}
			Expect(obs.Time()).To(Equal(t1))

			Expect(l.ToggleRun()).To(Equal(lab.Running))
			Expect(l.Frame().RunLabel).To(Equal("Pause"))
			Expect(l.Tick()).To(BeTrue())
			Expect(obs.Time()).To(BeNumerically(">", t1))
			Expect(obs.Time()).To(BeNumerically("~", 51*obs.TimeStep(), 1e-20))
			Expect(emitted.Time()).To(BeNumerically("~", 51*emitted.TimeStep(), 1e-20))
			Expect(l.Ticks()).To(Equal(51))
		})

		It("accepts commands while paused", func() {
			l.ToggleRun()
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			Expect(l.Source(wave.Observer).Redshift()).To(BeNumerically(">", 0))
			Expect(l.Clock().State()).To(Equal(lab.Paused))
		})
	})

	Describe("observers", func() {
		It("receive a frame after every command and tick", func() {
			Expect(l.SetWavelength("600")).To(Succeed())
			Expect(l.SetBlackHoleMass("10")).To(Succeed())
			Expect(l.SetEmissionRadius("60")).To(Succeed())
			l.Tick()
			l.ToggleRun()
			l.Tick()

			Expect(frames).To(HaveLen(5))
			Expect(frames[3].Tick).To(Equal(1))
			Expect(frames[4].State).To(Equal(lab.Paused))
		})

		It("see field values advance between ticks", func() {
			l.Tick()
			a, ok := frames[0].Emitted.Origin()
			Expect(ok).To(BeTrue())
			for i := 0; i < 200; i++ {
				l.Tick()
			}
			b, _ := frames[len(frames)-1].Emitted.Origin()
			Expect(b.E.Y).NotTo(Equal(a.E.Y))
			Expect(b.B.Z).To(BeNumerically("~", b.E.Y/relativity.SpeedOfLight, 1e-15))
		})
	})

	Context("with reference fidelity", func() {
		It("keeps the previous frequency after a wavelength change", func() {
			Expect(l.SetWavelength("650")).To(Succeed())

			for _, frame := range []wave.Frame{wave.Emitted, wave.Observer} {
				src := l.Source(frame)
				Expect(src.Wavelength()).To(Equal(650.0))
				Expect(src.Frequency()).To(BeNumerically("~", relativity.SpeedOfLight/500, 1e-6))
				Expect(src.Period()).To(BeNumerically("~", 1/src.Frequency(), 1e-20))
				Expect(src.Time()).To(BeZero())
			}
		})

		It("lags the observation one command behind a mass change", func() {
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())

			obs := l.Source(wave.Observer)
			Expect(obs.Redshift()).To(BeNumerically("~", math.Sqrt2-1, 1e-9))
			_, ok := obs.Observed()
			Expect(ok).To(BeFalse(), "observation still reflects the flat-space ratio")

			Expect(l.SetWavelength("500")).To(Succeed())
			o, ok := obs.Observed()
			Expect(ok).To(BeTrue())
			Expect(o.Wavelength).To(BeNumerically("~", 707.1068, 1e-3))
		})

		It("keeps a stale observation when the horizon swallows the emitter", func() {
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			Expect(l.SetBlackHoleMass("2000")).To(Succeed())

			obs := l.Source(wave.Observer)
			Expect(obs.Redshift()).To(BeZero())
			_, ok := obs.Observed()
			Expect(ok).To(BeTrue())
		})

		It("does not rebuild the emitted frame on a mass change", func() {
			for i := 0; i < 10; i++ {
				l.Tick()
			}
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())
			Expect(l.Source(wave.Emitted).Time()).To(BeNumerically(">", 0))
			Expect(l.Source(wave.Observer).Time()).To(BeZero())
		})
	})

	Context("with corrected fidelity", func() {
		BeforeEach(func() {
			opts.Fidelity = lab.Corrected
		})

		It("keeps f·λ = c through every command", func() {
			commands := []lab.Command{
				{Kind: lab.CommandWavelength, Payload: "650"},
				{Kind: lab.CommandMass, Payload: "1000"},
				{Kind: lab.CommandRadius, Payload: "6000"},
				{Kind: lab.CommandWavelength, Payload: "420"},
				{Kind: lab.CommandMass, Payload: "1500"},
			}
			for _, cmd := range commands {
				Expect(l.Apply(cmd)).To(Succeed())
				for _, frame := range []wave.Frame{wave.Emitted, wave.Observer} {
					src := l.Source(frame)
					Expect(src.Frequency()*src.Wavelength()).To(BeNumerically("~", relativity.SpeedOfLight, 1e-3))
					w, f := src.Effective()
					Expect(f * w).To(BeNumerically("~", relativity.SpeedOfLight, 1e-3))
				}
			}
		})

		It("applies a mass change to the observation immediately", func() {
			Expect(l.SetEmissionRadius("6000")).To(Succeed())
			Expect(l.SetBlackHoleMass("1000")).To(Succeed())

			o, ok := l.Source(wave.Observer).Observed()
			Expect(ok).To(BeTrue())
			Expect(o.Wavelength).To(BeNumerically("~", 707.1068, 1e-3))

			Expect(l.SetBlackHoleMass("2000")).To(Succeed())
			_, ok = l.Source(wave.Observer).Observed()
			Expect(ok).To(BeFalse())
		})
	})
})
