// Package lti provides immutable value types for linear time-invariant
// systems: [TransferFunction] (numerator/denominator polynomials) and [ZPK]
// (zeros, poles, gain), in either the continuous s-domain or the discrete
// z-domain.
//
// Continuous coefficients are stored in descending powers of s, matching the
// usual analog prototype notation. Discrete coefficients are stored in
// ascending powers of z^-1, matching difference-equation notation and the
// biquad sections in dsp/filter/biquad.
package lti
