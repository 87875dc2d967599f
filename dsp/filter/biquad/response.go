package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
)

// Response returns H(e^jw) of the section at the normalized frequency w in
// rad/sample (pi is Nyquist).
func (c *Coefficients) Response(w float64) complex128 {
	zi := cmplx.Exp(complex(0, -w))

	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))

	return num / den
}

// MagnitudeSquared returns |H(e^jw)|^2 in closed form from cos(w).
func (c *Coefficients) MagnitudeSquared(w float64) float64 {
	cw := 2 * math.Cos(w)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns the section gain at w in dB.
func (c *Coefficients) MagnitudeDB(w float64) float64 {
	return core.LinearToDB(math.Sqrt(c.MagnitudeSquared(w)))
}

// Response returns the cascade response at w: the gain times the product of
// the section responses.
func (c *Chain) Response(w float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(w)
	}

	return h
}

// MagnitudeDB returns the cascade gain at w in dB, summed over the sections.
func (c *Chain) MagnitudeDB(w float64) float64 {
	db := core.LinearToDB(math.Abs(c.gain))
	for i := range c.sections {
		db += c.sections[i].MagnitudeDB(w)
	}

	return db
}

// ImpulseResponse returns the first n samples of the cascade impulse
// response, driven from rest. The chain state is left as it was.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	defer c.SetState(saved)

	c.Reset()

	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)

	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}

	return ir
}
