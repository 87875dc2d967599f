package response

const (
	// DefaultContinuousSamples is the default grid size for Continuous.
	DefaultContinuousSamples = 501
	// DefaultDiscreteSamples is the default grid size for Discrete.
	DefaultDiscreteSamples = 2048
)

type config struct {
	samples int
}

// Option configures a response evaluation.
type Option func(*config)

// WithSampleCount sets the number of frequency samples (>= 2).
func WithSampleCount(n int) Option {
	return func(cfg *config) { cfg.samples = n }
}

func applyOptions(defaultSamples int, opts []Option) config {
	cfg := config{samples: defaultSamples}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
