// Package firdes designs Kaiser-windowed FIR lowpass filters in pure Go.
//
// A design starts from a frequency-domain specification: cutoff frequency,
// transition bandwidth, stopband attenuation and an optional fractional
// sample delay. Kaiser's empirical formula sizes the filter and the taps are
// an ideal sinc response tapered by a Kaiser window whose β follows from the
// requested attenuation.
//
// # Quick Start
//
//	spec, err := firdes.NewFilterSpec(0.4, 0.2, 60, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h, err := firdes.Design(spec) // 21 taps
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The two primitives are also available directly:
//
//	n, _ := firdes.EstimateLength(0.2, 60)   // 21
//	h, _ := firdes.Generate(n, 0.4, 60, 0.0) // symmetric, center tap 0.4
//
// # Conventions
//
// The cutoff is normalized to the Nyquist frequency: each tap is
// cutoff·sinc(cutoff·t), so the passband ends near cutoff/2 cycles per
// sample. The transition bandwidth is in cycles per sample, as in Kaiser's
// formula length = ceil((As - 7.95)/(14.36·df)) + 1.
//
// Zero-delay designs have odd length and are symmetric (linear phase).
// Designs with a fractional delay keep the raw Kaiser length and are
// shifted by the delay; one edge tap falls outside the window support and
// is zero.
//
// Coefficients are not gain-normalized. Their DC gain is within the
// passband ripple of 1; call [Normalize] to force an exact gain.
//
// # Errors
//
// Every out-of-range parameter, NaN or infinity is reported synchronously
// with an error wrapping [ErrInvalidSpecification]. Nothing is clamped and
// no partial result is returned.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use. [DesignMany] designs
// a batch of independent specifications in parallel.
//
// # Fractional Delay
//
// [NewDelayBank] precomputes designs at evenly spaced delays across
// (-0.5, 0.5) so a timing loop can fetch taps for any delay with
// [DelayBank.Filter] instead of redesigning them per sample.
//
// # Analysis
//
// [Response] evaluates the magnitude response with a zero-padded FFT
// (gonum), and [StopbandAttenuation] reports the attenuation a design
// actually achieves beyond its stopband edge.
package firdes
