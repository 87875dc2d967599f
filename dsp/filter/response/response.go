package response

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
)

// ErrInvalidInput is returned for an undefined system, a transfer function
// of the wrong domain, or an invalid frequency grid.
var ErrInvalidInput = lti.ErrInvalidInput

// dbFloor keeps 20*log10 finite where the response is exactly zero.
const dbFloor = 0x1p-52

// Response holds a sampled frequency response. All slices have the same
// length. MagnitudeDB is relative to the largest magnitude on the grid, so
// its peak is 0 dB. Phase is wrapped to [-pi, pi]. GroupDelay (in samples) is
// only set for discrete responses.
type Response struct {
	Frequencies []float64
	Magnitude   []float64
	MagnitudeDB []float64
	Phase       []float64
	GroupDelay  []float64
}

// Continuous evaluates H(jw) of a continuous transfer function for w
// uniformly spaced on [0, maxFrequency] (both ends included). The default
// grid has DefaultContinuousSamples points.
func Continuous(h lti.TransferFunction, maxFrequency float64, opts ...Option) (Response, error) {
	cfg := applyOptions(DefaultContinuousSamples, opts)

	if err := checkSystem(h, lti.Continuous, cfg); err != nil {
		return Response{}, err
	}

	if !(maxFrequency > 0) || math.IsInf(maxFrequency, 0) {
		return Response{}, fmt.Errorf("%w: max frequency must be > 0 and finite: %g", ErrInvalidInput, maxFrequency)
	}

	n := cfg.samples
	w := make([]float64, n)
	values := make([]complex128, n)

	for i := range n {
		w[i] = maxFrequency * float64(i) / float64(n-1)
		values[i] = h.EvalFrequency(w[i])
	}

	return build(w, values), nil
}

// Discrete evaluates H(e^jw) of a discrete transfer function for
// w = pi*i/n, i = 0..n-1, with n = DefaultDiscreteSamples by default. The
// group delay is the negative finite-difference derivative of the unwrapped
// phase.
func Discrete(h lti.TransferFunction, opts ...Option) (Response, error) {
	cfg := applyOptions(DefaultDiscreteSamples, opts)

	if err := checkSystem(h, lti.Discrete, cfg); err != nil {
		return Response{}, err
	}

	n := cfg.samples
	w := discreteGrid(n)

	values, ok := fftResponse(h.Num(), h.Den(), n)
	if !ok {
		values = make([]complex128, n)
		for i := range n {
			values[i] = h.EvalFrequency(w[i])
		}
	}

	r := build(w, values)
	r.GroupDelay = GroupDelay(w, r.Phase)

	return r, nil
}

// DiscreteSOS evaluates a cascade of biquad sections with an overall gain on
// the same grid as Discrete.
func DiscreteSOS(sections []biquad.Coefficients, gain float64, opts ...Option) (Response, error) {
	cfg := applyOptions(DefaultDiscreteSamples, opts)

	if len(sections) == 0 {
		return Response{}, fmt.Errorf("%w: no sections", ErrInvalidInput)
	}

	if cfg.samples < 2 {
		return Response{}, fmt.Errorf("%w: sample count must be >= 2: %d", ErrInvalidInput, cfg.samples)
	}

	chain := biquad.NewChain(sections, biquad.WithGain(gain))
	n := cfg.samples
	w := discreteGrid(n)
	values := make([]complex128, n)

	for i := range n {
		// With a sample rate of 2*pi, a frequency in Hz equals w in rad/sample.
		values[i] = chain.Response(w[i])
	}

	r := build(w, values)
	r.GroupDelay = GroupDelay(w, r.Phase)

	return r, nil
}

// GroupDelay returns -d(unwrap(phase))/dw using central differences inside
// the grid and one-sided differences at its ends.
func GroupDelay(w, phase []float64) []float64 {
	n := len(phase)
	gd := make([]float64, n)

	if n < 2 || len(w) != n {
		return gd
	}

	u := Unwrap(phase)

	gd[0] = -(u[1] - u[0]) / (w[1] - w[0])
	gd[n-1] = -(u[n-1] - u[n-2]) / (w[n-1] - w[n-2])

	for i := 1; i < n-1; i++ {
		gd[i] = -(u[i+1] - u[i-1]) / (w[i+1] - w[i-1])
	}

	return gd
}

// Unwrap removes 2*pi jumps between consecutive phase samples.
func Unwrap(phase []float64) []float64 {
	out := make([]float64, len(phase))
	if len(phase) == 0 {
		return out
	}

	out[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi * math.Ceil((d-math.Pi)/(2*math.Pi))
		case d < -math.Pi:
			offset += 2 * math.Pi * math.Ceil((-d-math.Pi)/(2*math.Pi))
		}

		out[i] = phase[i] + offset
	}

	return out
}

func checkSystem(h lti.TransferFunction, domain lti.Domain, cfg config) error {
	if h.IsZero() {
		return fmt.Errorf("%w: transfer function has no denominator", ErrInvalidInput)
	}

	if h.Domain() != domain {
		return fmt.Errorf("%w: expected a %s transfer function, got %s", ErrInvalidInput, domain, h.Domain())
	}

	if cfg.samples < 2 {
		return fmt.Errorf("%w: sample count must be >= 2: %d", ErrInvalidInput, cfg.samples)
	}

	return nil
}

func discreteGrid(n int) []float64 {
	w := make([]float64, n)
	for i := range n {
		w[i] = math.Pi * float64(i) / float64(n)
	}

	return w
}

// fftResponse computes B(e^jw)/A(e^jw) on the discrete grid from one FFT of
// size 2n per polynomial. It reports false when the grid size is not a power
// of two or a polynomial is longer than the FFT.
func fftResponse(b, a []float64, n int) ([]complex128, bool) {
	size := 2 * n
	if bits.OnesCount(uint(size)) != 1 || len(b) > size || len(a) > size {
		return nil, false
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, false
	}

	num, ok := spectrum(plan, b, size)
	if !ok {
		return nil, false
	}

	den, ok := spectrum(plan, a, size)
	if !ok {
		return nil, false
	}

	out := make([]complex128, n)
	for k := range n {
		out[k] = num[k] / den[k]
	}

	return out, true
}

func spectrum(plan *algofft.Plan[complex128], c []float64, size int) ([]complex128, bool) {
	src := make([]complex128, size)
	for i, v := range c {
		src[i] = complex(v, 0)
	}

	dst := make([]complex128, size)
	if err := plan.Forward(dst, src); err != nil {
		return nil, false
	}

	return dst, true
}

func build(w []float64, values []complex128) Response {
	n := len(values)
	re := make([]float64, n)
	im := make([]float64, n)

	for i, v := range values {
		re[i] = real(v)
		im[i] = imag(v)
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	peak := dbFloor
	for _, m := range mag {
		peak = math.Max(peak, m)
	}

	db := make([]float64, n)
	phase := make([]float64, n)

	for i := range n {
		db[i] = 20 * math.Log10((mag[i]+dbFloor)/peak)
		phase[i] = math.Atan2(im[i], re[i])
	}

	return Response{
		Frequencies: w,
		Magnitude:   mag,
		MagnitudeDB: db,
		Phase:       phase,
	}
}
