package analog

import "errors"

var (
	// ErrInvalidSpecification is returned for a Spec that violates
	// Wp > 0, Ws > Wp, Rp > 0 or As >= 0, or for a non-positive ripple.
	ErrInvalidSpecification = errors.New("analog: invalid specification")

	// ErrInvalidOrder is returned for a prototype order below 1.
	ErrInvalidOrder = errors.New("analog: invalid order")

	// ErrInvalidFrequency is returned for a non-positive or non-finite
	// cutoff frequency.
	ErrInvalidFrequency = errors.New("analog: invalid frequency")
)
