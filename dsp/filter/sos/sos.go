package sos

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// ErrInvalidSection is returned for malformed section rows.
var ErrInvalidSection = biquad.ErrInvalidSection

// group is one or two roots that end up in the same section polynomial, with
// that polynomial's monic coefficients in descending powers of z.
type group struct {
	roots  []complex128
	coeffs []float64
}

func (g group) size() int { return len(g.roots) }

func (g group) magnitude() float64 {
	m := 0.0
	for _, r := range g.roots {
		m = math.Max(m, cmplx.Abs(r))
	}

	return m
}

func distance(a, b group) float64 {
	d := math.Inf(1)
	for _, x := range a.roots {
		for _, y := range b.roots {
			d = math.Min(d, cmplx.Abs(x-y))
		}
	}

	return d
}

// FromTransferFunction factors a discrete transfer function into biquad
// sections whose product equals h. Sections are ordered by increasing pole
// magnitude; the gain of h multiplies the numerator of the first section.
func FromTransferFunction(h lti.TransferFunction) ([]biquad.Coefficients, error) {
	if h.IsZero() || h.Domain() != lti.Discrete {
		return nil, fmt.Errorf("%w: second-order sections need a discrete transfer function, got %v",
			lti.ErrInvalidInput, h)
	}

	zpk, err := h.ZPK()
	if err != nil {
		return nil, err
	}

	poleGroups, err := groupRoots(zpk.Poles)
	if err != nil {
		return nil, fmt.Errorf("%w: poles: %w", lti.ErrNumericalInstability, err)
	}

	zeroGroups, err := groupRoots(zpk.Zeros)
	if err != nil {
		return nil, fmt.Errorf("%w: zeros: %w", lti.ErrNumericalInstability, err)
	}

	if len(poleGroups) == 0 {
		return []biquad.Coefficients{{B0: zpk.Gain}}, nil
	}

	// Match from the pole closest to the unit circle inwards.
	slices.SortStableFunc(poleGroups, func(a, b group) int { return cmp.Compare(b.magnitude(), a.magnitude()) })

	pairsLeft := countPairs(poleGroups)
	zeroPairsLeft := countPairs(zeroGroups)
	used := make([]bool, len(zeroGroups))
	sections := make([]biquad.Coefficients, len(poleGroups))

	for i, pg := range poleGroups {
		needPair := pg.size() == 2 && zeroPairsLeft >= pairsLeft
		best := -1

		for j, zg := range zeroGroups {
			if used[j] || zg.size() > pg.size() || (needPair && zg.size() != 2) {
				continue
			}

			if best < 0 || distance(pg, zg) < distance(pg, zeroGroups[best]) {
				best = j
			}
		}

		num := []float64{1}
		if best >= 0 {
			used[best] = true
			num = zeroGroups[best].coeffs

			if zeroGroups[best].size() == 2 {
				zeroPairsLeft--
			}
		}

		if pg.size() == 2 {
			pairsLeft--
		}

		sections[len(sections)-1-i] = section(num, pg.coeffs)
	}

	sections[0].B0 *= zpk.Gain
	sections[0].B1 *= zpk.Gain
	sections[0].B2 *= zpk.Gain

	return sections, nil
}

// section builds N(z)/D(z) in z^-1 form. The numerator degree never exceeds
// the denominator degree, so it is right-aligned to the denominator.
func section(num, den []float64) biquad.Coefficients {
	var b, a [3]float64

	copy(a[:], den)
	copy(b[len(den)-len(num):], num)

	return biquad.Coefficients{B0: b[0], B1: b[1], B2: b[2], A1: a[1], A2: a[2]}
}

// groupRoots splits roots into conjugate pairs and pairs of real roots, the
// real roots paired in order of decreasing magnitude. An odd real root forms
// a group of its own.
func groupRoots(roots []complex128) ([]group, error) {
	pairs, reals, err := polyroot.PairConjugates(roots, polyroot.ConjugateTol)
	if err != nil {
		return nil, err
	}

	groups := make([]group, 0, len(pairs)+(len(reals)+1)/2)
	for _, p := range pairs {
		_, a1, a2, err := polyroot.QuadFromRoots(p)
		if err != nil {
			return nil, err
		}

		groups = append(groups, group{roots: p[:], coeffs: []float64{1, a1, a2}})
	}

	slices.SortStableFunc(reals, func(a, b float64) int { return cmp.Compare(math.Abs(b), math.Abs(a)) })

	for i := 0; i < len(reals); i += 2 {
		r := reals[i]
		g := group{roots: []complex128{complex(r, 0)}, coeffs: []float64{1, -r}}

		if i+1 < len(reals) {
			q := reals[i+1]
			g.roots = append(g.roots, complex(q, 0))
			g.coeffs = []float64{1, -(r + q), r * q}
		}

		groups = append(groups, g)
	}

	return groups, nil
}

func countPairs(groups []group) int {
	n := 0
	for _, g := range groups {
		if g.size() == 2 {
			n++
		}
	}

	return n
}

// ToTransferFunction multiplies the sections back into one discrete transfer
// function.
func ToTransferFunction(sections []biquad.Coefficients) (lti.TransferFunction, error) {
	if len(sections) == 0 {
		return lti.TransferFunction{}, fmt.Errorf("%w: no sections", ErrInvalidSection)
	}

	b := []complex128{1}
	a := []complex128{1}

	for _, s := range sections {
		b = polyroot.Conv(b, []complex128{complex(s.B0, 0), complex(s.B1, 0), complex(s.B2, 0)})
		a = polyroot.Conv(a, []complex128{1, complex(s.A1, 0), complex(s.A2, 0)})
	}

	num, _ := polyroot.RealPart(b)
	den, _ := polyroot.RealPart(a)

	return lti.NewTransferFunction(trimTrailingZeros(num), trimTrailingZeros(den), lti.Discrete)
}

// FromRows converts [b0 b1 b2 a0 a1 a2] rows into sections normalized to
// a0 = 1.
func FromRows(rows [][6]float64) ([]biquad.Coefficients, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSection)
	}

	out := make([]biquad.Coefficients, len(rows))
	for i, row := range rows {
		c, err := biquad.FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		out[i] = c
	}

	return out, nil
}

// Rows returns the sections as [b0 b1 b2 1 a1 a2] rows.
func Rows(sections []biquad.Coefficients) [][6]float64 {
	rows := make([][6]float64, len(sections))
	for i := range sections {
		rows[i] = sections[i].Row()
	}

	return rows
}

func trimTrailingZeros(c []float64) []float64 {
	n := len(c)
	for n > 1 && c[n-1] == 0 {
		n--
	}

	return c[:n]
}
