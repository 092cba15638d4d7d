package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/relativity"
	"github.com/san-kum/redshift/internal/wave"
)

const (
	DefaultWavelength     = wave.DefaultWavelength
	DefaultTickRate       = 1000
	DefaultTimeStepFactor = wave.DefaultTimeStepFactor
	DefaultWindow         = wave.DefaultWindow
	DefaultResolution     = wave.DefaultResolution
	DefaultFidelity       = "reference"
	DefaultDataDir        = ".redshift"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Wavelength     float64         `yaml:"wavelength_nm"`
	BlackHoleMass  float64         `yaml:"black_hole_mass"`
	EmissionRadius *float64        `yaml:"emission_radius,omitempty"`
	Fidelity       string          `yaml:"fidelity"`
	Animation      AnimationConfig `yaml:"animation"`
	Field          FieldConfig     `yaml:"field"`
	Log            LogConfig       `yaml:"log"`
	Script         []lab.Step      `yaml:"script,omitempty"`
}

type AnimationConfig struct {
	TickRate       int     `yaml:"tick_rate"`
	TimeStepFactor float64 `yaml:"time_step_factor"`
}

type FieldConfig struct {
	Amplitude            float64 `yaml:"amplitude"`
	WindowWavelengths    float64 `yaml:"window_wavelengths"`
	SamplesPerWavelength int     `yaml:"samples_per_wavelength"`
}

func DefaultConfig() *Config {
	return &Config{
		Wavelength: DefaultWavelength,
		Fidelity:   DefaultFidelity,
		Animation: AnimationConfig{
			TickRate:       DefaultTickRate,
			TimeStepFactor: DefaultTimeStepFactor,
		},
		Field: FieldConfig{
			Amplitude:            relativity.FieldAmplitude,
			WindowWavelengths:    DefaultWindow,
			SamplesPerWavelength: DefaultResolution,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Wavelength <= 0 {
		return fmt.Errorf("%w: wavelength_nm must be positive, got %g", ErrInvalidConfig, c.Wavelength)
	}
	if c.EmissionRadius != nil && *c.EmissionRadius < 0 {
		return fmt.Errorf("%w: emission_radius must not be negative, got %g", ErrInvalidConfig, *c.EmissionRadius)
	}
	if c.Animation.TickRate < 0 {
		return fmt.Errorf("%w: tick_rate must not be negative, got %d", ErrInvalidConfig, c.Animation.TickRate)
	}
	if c.Animation.TimeStepFactor <= 0 {
		return fmt.Errorf("%w: time_step_factor must be positive, got %g", ErrInvalidConfig, c.Animation.TimeStepFactor)
	}
	if c.Field.WindowWavelengths <= 0 || c.Field.SamplesPerWavelength <= 0 {
		return fmt.Errorf("%w: field window and resolution must be positive", ErrInvalidConfig)
	}
	if _, err := lab.ParseFidelity(c.Fidelity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LabOptions converts the file settings into options for lab.New.
func (c *Config) LabOptions() (lab.Options, error) {
	fid, err := lab.ParseFidelity(c.Fidelity)
	if err != nil {
		return lab.Options{}, err
	}
	return lab.Options{
		Wavelength:     c.Wavelength,
		TimeStepFactor: c.Animation.TimeStepFactor,
		Field: wave.Field{
			Amplitude:  c.Field.Amplitude,
			Window:     c.Field.WindowWavelengths,
			Resolution: c.Field.SamplesPerWavelength,
		},
		Fidelity: fid,
	}, nil
}

// InitialCommands are the commands that bring a fresh lab to the configured
// black hole and emission radius.
func (c *Config) InitialCommands() []lab.Command {
	cmds := make([]lab.Command, 0, 2)
	if c.BlackHoleMass != 0 {
		cmds = append(cmds, lab.Command{Kind: lab.CommandMass, Payload: formatFloat(c.BlackHoleMass)})
	}
	if c.EmissionRadius != nil {
		cmds = append(cmds, lab.Command{Kind: lab.CommandRadius, Payload: formatFloat(*c.EmissionRadius)})
	}
	return cmds
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
