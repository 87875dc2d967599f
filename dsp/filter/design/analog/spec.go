package analog

import (
	"fmt"
	"math"
)

// Spec is a lowpass design specification.
type Spec struct {
	Wp float64 // passband edge (rad/s), > 0
	Ws float64 // stopband edge (rad/s), > Wp
	Rp float64 // passband ripple in dB, > 0
	As float64 // stopband attenuation in dB, >= 0
}

// Validate checks the specification invariants. The returned error wraps
// ErrInvalidSpecification and names the offending value.
func (s Spec) Validate() error {
	for _, v := range [...]struct {
		name string
		val  float64
	}{{"Wp", s.Wp}, {"Ws", s.Ws}, {"Rp", s.Rp}, {"As", s.As}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s must be finite: %v", ErrInvalidSpecification, v.name, v.val)
		}
	}

	switch {
	case s.Wp <= 0:
		return fmt.Errorf("%w: passband edge must be > 0: %g", ErrInvalidSpecification, s.Wp)
	case s.Ws <= s.Wp:
		return fmt.Errorf("%w: stopband edge must be > passband edge: Ws=%g Wp=%g", ErrInvalidSpecification, s.Ws, s.Wp)
	case s.Rp <= 0:
		return fmt.Errorf("%w: passband ripple must be > 0 dB: %g", ErrInvalidSpecification, s.Rp)
	case s.As < 0:
		return fmt.Errorf("%w: stopband attenuation must be >= 0 dB: %g", ErrInvalidSpecification, s.As)
	}

	return nil
}

// Family identifies an analog prototype family.
type Family int

const (
	// Butterworth is the maximally flat family.
	Butterworth Family = iota
	// Chebyshev1 is the equiripple-passband family.
	Chebyshev1
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case Butterworth:
		return "butterworth"
	case Chebyshev1:
		return "chebyshev1"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily maps a family name to a Family.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "butterworth", "butter", "butt":
		return Butterworth, nil
	case "chebyshev1", "cheby1", "chb1":
		return Chebyshev1, nil
	default:
		return 0, fmt.Errorf("%w: unknown filter family %q", ErrInvalidSpecification, name)
	}
}
