package quant

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyCoefficients is returned when there is nothing to quantize.
	ErrEmptyCoefficients = errors.New("quant: empty coefficients")

	// ErrInvalidBitWidth is returned for a word size outside [1, MaxBits] or
	// a format with negative field widths.
	ErrInvalidBitWidth = errors.New("quant: invalid bit width")

	// ErrNonFinite is returned for a NaN or infinite coefficient.
	ErrNonFinite = errors.New("quant: non-finite coefficient")

	// ErrInsufficientBitWidth is returned when the word is too narrow for the
	// integer part of the coefficients.
	ErrInsufficientBitWidth = errors.New("quant: insufficient bit width")
)

// MaxBits is the widest supported word. Mantissas up to 2^52 are exact in a
// float64.
const MaxBits = 53

// Format is a signed fixed-point format with IntegerBits (L) integer bits and
// FractionalBits (B) fractional bits plus one sign bit.
type Format struct {
	IntegerBits    int
	FractionalBits int
}

// Q15 is the 16-bit Q0.15 format used by fixed-point DSP libraries.
var Q15 = Format{IntegerBits: 0, FractionalBits: 15}

// TotalBits returns 1 + L + B.
func (f Format) TotalBits() int { return 1 + f.IntegerBits + f.FractionalBits }

// Step returns the quantization step 2^-B.
func (f Format) Step() float64 { return math.Ldexp(1, -f.FractionalBits) }

// Min returns the most negative representable value, -2^L.
func (f Format) Min() float64 { return -math.Ldexp(1, f.IntegerBits) }

// Max returns the most positive representable value, 2^L - 2^-B.
func (f Format) Max() float64 { return math.Ldexp(1, f.IntegerBits) - f.Step() }

// String returns the format in Q notation, e.g. "Q0.15".
func (f Format) String() string {
	return fmt.Sprintf("Q%d.%d", f.IntegerBits, f.FractionalBits)
}

// Validate reports ErrInvalidBitWidth for negative fields or a word wider
// than MaxBits.
func (f Format) Validate() error {
	if f.IntegerBits < 0 || f.FractionalBits < 0 || f.TotalBits() > MaxBits {
		return fmt.Errorf("%w: %s (%d bits, max %d)", ErrInvalidBitWidth, f, f.TotalBits(), MaxBits)
	}

	return nil
}

// RangeError reports a coefficient whose rounded value falls outside the
// format range. It unwraps to ErrInsufficientBitWidth.
type RangeError struct {
	Index     int
	Value     float64
	Quantized float64
	Format    Format
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("quant: coefficient %d = %g rounds to %g, outside %s range [%g, %g]",
		e.Index, e.Value, e.Quantized, e.Format, e.Format.Min(), e.Format.Max())
}

// Unwrap returns ErrInsufficientBitWidth.
func (e *RangeError) Unwrap() error { return ErrInsufficientBitWidth }
