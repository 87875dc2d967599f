package quant

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Result holds quantized coefficients. Values[i] equals
// Mantissas[i] * 2^-Format.FractionalBits exactly.
type Result struct {
	Values    []float64
	Mantissas []int64
	Format    Format
}

// Allocate returns the format for quantizing coefficients to totalBits bits:
// L = max(0, floor(log2(max|x|) + 1)) integer bits and B = totalBits - 1 - L
// fractional bits. It returns ErrInsufficientBitWidth when B would be
// negative.
func Allocate(coefficients []float64, totalBits int) (Format, error) {
	if totalBits < 1 || totalBits > MaxBits {
		return Format{}, fmt.Errorf("%w: %d bits (want 1..%d)", ErrInvalidBitWidth, totalBits, MaxBits)
	}

	peak, err := maxAbs(coefficients)
	if err != nil {
		return Format{}, err
	}

	integerBits := 0
	if peak > 0 {
		integerBits = max(0, int(math.Floor(math.Log2(peak)+1)))
	}

	fractionalBits := totalBits - 1 - integerBits
	if fractionalBits < 0 {
		return Format{}, fmt.Errorf("%w: max |x| = %g needs %d integer bits, %d bits leave %d after the sign bit",
			ErrInsufficientBitWidth, peak, integerBits, totalBits, totalBits-1)
	}

	return Format{IntegerBits: integerBits, FractionalBits: fractionalBits}, nil
}

// Quantize allocates a format for totalBits bits and rounds coefficients to
// it. Rounding is to the nearest step, halves away from zero.
func Quantize(coefficients []float64, totalBits int) (Result, error) {
	f, err := Allocate(coefficients, totalBits)
	if err != nil {
		return Result{}, err
	}

	return QuantizeFormat(coefficients, f)
}

// QuantizeFormat rounds coefficients to the fixed format f. A coefficient
// whose rounded value falls outside [f.Min(), f.Max()] yields a *RangeError.
func QuantizeFormat(coefficients []float64, f Format) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	if _, err := maxAbs(coefficients); err != nil {
		return Result{}, err
	}

	scaled := make([]float64, len(coefficients))
	vecmath.ScaleBlock(scaled, coefficients, math.Ldexp(1, f.FractionalBits))

	limit := math.Ldexp(1, f.IntegerBits+f.FractionalBits)
	res := Result{
		Values:    make([]float64, len(coefficients)),
		Mantissas: make([]int64, len(coefficients)),
		Format:    f,
	}

	for i, v := range scaled {
		m := math.Round(v)
		q := math.Ldexp(m, -f.FractionalBits)

		if m < -limit || m >= limit {
			return Result{}, &RangeError{Index: i, Value: coefficients[i], Quantized: q, Format: f}
		}

		res.Mantissas[i] = int64(m)
		res.Values[i] = q
	}

	return res, nil
}

// maxAbs returns the largest magnitude in c, rejecting empty or non-finite
// input.
func maxAbs(c []float64) (float64, error) {
	if len(c) == 0 {
		return 0, ErrEmptyCoefficients
	}

	peak := 0.0

	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: coefficient %d = %v", ErrNonFinite, i, v)
		}

		peak = math.Max(peak, math.Abs(v))
	}

	return peak, nil
}
