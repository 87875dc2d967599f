package biquad

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSection is returned for a section row with a zero or non-finite
// leading denominator coefficient, or non-finite coefficients.
var ErrInvalidSection = errors.New("biquad: invalid section")

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// FromRow builds Coefficients from a row [b0 b1 b2 a0 a1 a2], dividing by a0.
func FromRow(row [6]float64) (Coefficients, error) {
	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coefficients{}, fmt.Errorf("%w: coefficient %d is not finite: %v", ErrInvalidSection, i, v)
		}
	}

	a0 := row[3]
	if a0 == 0 {
		return Coefficients{}, fmt.Errorf("%w: a0 is zero", ErrInvalidSection)
	}

	return Coefficients{
		B0: row[0] / a0,
		B1: row[1] / a0,
		B2: row[2] / a0,
		A1: row[4] / a0,
		A2: row[5] / a0,
	}, nil
}

// Row returns the section as [b0 b1 b2 1 a1 a2].
func (c *Coefficients) Row() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, 1, c.A1, c.A2}
}

// Order returns the denominator degree of the section (0, 1 or 2).
func (c *Coefficients) Order() int {
	switch {
	case c.A2 != 0:
		return 2
	case c.A1 != 0:
		return 1
	default:
		return 0
	}
}

// IsStable reports whether both poles lie strictly inside the unit circle,
// using the stability triangle |A2| < 1, |A1| < 1 + A2.
func (c *Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Section is a single biquad with coefficients and Direct Form II Transposed
// state.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
