// Package transform converts continuous-time transfer functions into
// discrete-time ones.
//
// [ImpulseInvariance] samples the analog impulse response: the discrete
// filter's impulse response equals h_a(nT) for n >= 0. Poles map as
// z = exp(sT); repeated poles are supported up to [MaxPoleMultiplicity].
package transform
