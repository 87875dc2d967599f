package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/analog"
)

// designConfig is the design file layout. Frequencies are in rad/s, or in
// units of pi when PiUnits is set.
type designConfig struct {
	Family           string  `yaml:"family"`
	Wp               float64 `yaml:"wp"`
	Ws               float64 `yaml:"ws"`
	Rp               float64 `yaml:"rp"`
	As               float64 `yaml:"as"`
	SamplingInterval float64 `yaml:"sampling_interval"`
	Bits             int     `yaml:"bits"`
	PiUnits          bool    `yaml:"pi_units"`
}

func defaultDesignConfig() designConfig {
	return designConfig{
		Family:           "butterworth",
		SamplingInterval: 1,
	}
}

// loadDesignConfig reads a YAML design file over the defaults.
func loadDesignConfig(path string) (designConfig, error) {
	cfg := defaultDesignConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read design file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse design file %s: %w", path, err)
	}

	return cfg, nil
}

// spec converts the configuration into an analog specification.
func (c designConfig) spec() analog.Spec {
	s := analog.Spec{Wp: c.Wp, Ws: c.Ws, Rp: c.Rp, As: c.As}
	if c.PiUnits {
		s.Wp *= math.Pi
		s.Ws *= math.Pi
	}

	return s
}

// bindDesignFlags registers the design flags on cmd, writing into cfg.
func bindDesignFlags(cmd *cobra.Command, cfg *designConfig) {
	f := cmd.Flags()
	f.StringVar(&cfg.Family, "family", cfg.Family, "filter family: butterworth or chebyshev1")
	f.Float64Var(&cfg.Wp, "wp", cfg.Wp, "passband edge (rad/s)")
	f.Float64Var(&cfg.Ws, "ws", cfg.Ws, "stopband edge (rad/s)")
	f.Float64Var(&cfg.Rp, "rp", cfg.Rp, "passband ripple (dB)")
	f.Float64Var(&cfg.As, "as", cfg.As, "stopband attenuation (dB)")
	f.Float64VarP(&cfg.SamplingInterval, "sampling-interval", "T", cfg.SamplingInterval, "impulse invariance sampling interval (s)")
	f.IntVar(&cfg.Bits, "bits", cfg.Bits, "quantize coefficients to this word size (0 disables)")
	f.BoolVar(&cfg.PiUnits, "pi-units", cfg.PiUnits, "read wp and ws in units of pi")
}

// overrideFromFlags copies every flag the user set explicitly from flagged
// into file.
func overrideFromFlags(cmd *cobra.Command, file *designConfig, flagged designConfig) {
	f := cmd.Flags()

	if f.Changed("family") {
		file.Family = flagged.Family
	}

	if f.Changed("wp") {
		file.Wp = flagged.Wp
	}

	if f.Changed("ws") {
		file.Ws = flagged.Ws
	}

	if f.Changed("rp") {
		file.Rp = flagged.Rp
	}

	if f.Changed("as") {
		file.As = flagged.As
	}

	if f.Changed("sampling-interval") {
		file.SamplingInterval = flagged.SamplingInterval
	}

	if f.Changed("bits") {
		file.Bits = flagged.Bits
	}

	if f.Changed("pi-units") {
		file.PiUnits = flagged.PiUnits
	}
}
