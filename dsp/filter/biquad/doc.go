// Package biquad provides second-order IIR section primitives for filter
// analysis.
//
// [Coefficients] holds one second-order section in z^-1 form with a0
// normalized to 1. Sections are evaluated in Direct Form II Transposed by
// [Section] and cascaded by [Chain] for higher-order filters. A Chain reports
// its frequency response, pole locations and impulse response, which is how
// quantized cascades are compared with the transfer function they realize.
//
// Coefficient design lives in dsp/filter/design and conversion from a full
// transfer function lives in dsp/filter/sos.
package biquad
