package quant

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

// SOSResult holds a quantized biquad cascade. Mantissas[k] holds
// [b0 b1 b2 a1 a2] of section k in units of Format.Step().
type SOSResult struct {
	Sections  []biquad.Coefficients
	Mantissas [][5]int64
	Format    Format
}

// QuantizeSOS quantizes the b0, b1, b2, a1 and a2 coefficients of every
// section under one shared format allocated for totalBits bits. The implicit
// a0 = 1 is not stored and does not take part in the allocation.
func QuantizeSOS(sections []biquad.Coefficients, totalBits int) (SOSResult, error) {
	if len(sections) == 0 {
		return SOSResult{}, ErrEmptyCoefficients
	}

	flat := make([]float64, 0, 5*len(sections))
	for _, s := range sections {
		flat = append(flat, s.B0, s.B1, s.B2, s.A1, s.A2)
	}

	res, err := Quantize(flat, totalBits)
	if err != nil {
		var re *RangeError
		if errors.As(err, &re) {
			return SOSResult{}, fmt.Errorf("section %d: %w", re.Index/5, err)
		}

		return SOSResult{}, err
	}

	out := SOSResult{
		Sections:  make([]biquad.Coefficients, len(sections)),
		Mantissas: make([][5]int64, len(sections)),
		Format:    res.Format,
	}

	for k := range sections {
		v := res.Values[5*k : 5*k+5]
		out.Sections[k] = biquad.Coefficients{B0: v[0], B1: v[1], B2: v[2], A1: v[3], A2: v[4]}
		copy(out.Mantissas[k][:], res.Mantissas[5*k:5*k+5])
	}

	return out, nil
}
