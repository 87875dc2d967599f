// Package analog designs continuous-time lowpass filters from a
// passband/stopband specification.
//
// [ButterworthOrder] and [Chebyshev1Order] select the smallest order that
// meets a [Spec]; [ButterworthPrototype] and [Chebyshev1Prototype] build the
// unnormalized analog prototype for a given order and cutoff; and
// [DesignButterworth] and [DesignChebyshev1] chain both steps. Results are
// lti.TransferFunction values in the s-domain, ready for analysis with
// dsp/filter/response or conversion with dsp/filter/transform.
//
// All frequencies are angular (rad/s, or rad/sample when the analog design
// is used as a prototype for impulse invariance with T = 1).
package analog
