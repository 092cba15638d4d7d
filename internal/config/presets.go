package config

import (
	"errors"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func radius(r float64) *float64 { return &r }

// Presets are named starting points for the lab.
var Presets = map[string]*Config{
	"flat": {
		Wavelength: 500, BlackHoleMass: 0, EmissionRadius: radius(6000),
	},
	"scenario_b": {
		Wavelength: 500, BlackHoleMass: 1000, EmissionRadius: radius(6000),
	},
	"stellar": {
		Wavelength: 500, BlackHoleMass: 10, EmissionRadius: radius(45),
	},
	"near_horizon": {
		Wavelength: 500, BlackHoleMass: 1000, EmissionRadius: radius(3030),
	},
	"inside_horizon": {
		Wavelength: 500, BlackHoleMass: 1000, EmissionRadius: radius(1500),
	},
	"supermassive": {
		Wavelength: 121.6, BlackHoleMass: 4.1e6, EmissionRadius: radius(3.69e7),
	},
}

// GetPreset returns a full configuration with the preset's physical
// parameters applied over the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Wavelength = p.Wavelength
	cfg.BlackHoleMass = p.BlackHoleMass
	if p.EmissionRadius != nil {
		cfg.EmissionRadius = radius(*p.EmissionRadius)
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
