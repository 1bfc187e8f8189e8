// Package filter provides Kaiser-windowed FIR filter design.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-firdes/internal/mathutil"
	"github.com/tphakala/go-firdes/internal/simdops"
)

const (
	// Filter design constants
	minFilterTaps = 1
	maxFilterTaps = mathutil.MaxFilterLength

	// Window normalization
	windowNormalizationFactor = 2.0

	// Sinc function constants
	sincCenterTap     = 1.0
	sincPiMultiplier  = math.Pi
	sincZeroThreshold = 1e-10

	// Parameter domains
	maxCutoff       = 1.0
	maxTransitionBW = 0.5
	maxDelay        = 0.5
)

// ErrInvalidSpecification is returned when a design parameter lies outside
// its documented domain. NaN and infinite values are always rejected.
var ErrInvalidSpecification = errors.New("invalid filter specification")

// ValidateCutoff checks 0 < cutoff < 1.
func ValidateCutoff(cutoff float64) error {
	if !(cutoff > 0 && cutoff < maxCutoff) {
		return fmt.Errorf("%w: cutoff %v must be in (0, %v)", ErrInvalidSpecification, cutoff, maxCutoff)
	}
	return nil
}

// ValidateTransitionBW checks 0 < transitionBW < 0.5.
func ValidateTransitionBW(transitionBW float64) error {
	if !(transitionBW > 0 && transitionBW < maxTransitionBW) {
		return fmt.Errorf("%w: transition bandwidth %v must be in (0, %v)",
			ErrInvalidSpecification, transitionBW, maxTransitionBW)
	}
	return nil
}

// ValidateAttenuation checks that the stopband attenuation is positive and finite.
func ValidateAttenuation(attenuation float64) error {
	if !(attenuation > 0) || math.IsInf(attenuation, 1) {
		return fmt.Errorf("%w: stopband attenuation %v dB must be positive and finite",
			ErrInvalidSpecification, attenuation)
	}
	return nil
}

// ValidateDelay checks -0.5 < delay < 0.5.
func ValidateDelay(delay float64) error {
	if !(delay > -maxDelay && delay < maxDelay) {
		return fmt.Errorf("%w: fractional delay %v must be in (%v, %v)",
			ErrInvalidSpecification, delay, -maxDelay, maxDelay)
	}
	return nil
}

// FilterParams holds parameters for filter design.
type FilterParams struct {
	// NumTaps is the filter length (number of coefficients)
	NumTaps int

	// Cutoff is the normalized cutoff frequency (0 to 1).
	// 1 represents the Nyquist frequency (half the sample rate).
	Cutoff float64

	// Attenuation is the desired stopband attenuation in dB
	Attenuation float64

	// Delay is the fractional sample delay applied to the filter center
	Delay float64
}

// Validate checks if filter parameters are valid.
func (fp *FilterParams) Validate() error {
	if fp.NumTaps < minFilterTaps || fp.NumTaps > maxFilterTaps {
		return fmt.Errorf("%w: %d taps (must be %d to %d)",
			ErrInvalidSpecification, fp.NumTaps, minFilterTaps, maxFilterTaps)
	}

	if err := ValidateCutoff(fp.Cutoff); err != nil {
		return err
	}

	if err := ValidateAttenuation(fp.Attenuation); err != nil {
		return err
	}

	return ValidateDelay(fp.Delay)
}

// Sinc returns sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return sincCenterTap
	}
	arg := sincPiMultiplier * x
	return math.Sin(arg) / arg
}

// KaiserWindow generates a Kaiser window of the specified length and β
// parameter, sampled at the tap offsets t = n - (length-1)/2 - delay.
//
//	w(t) = I₀(β * sqrt(1 - (2t/(length-1))²)) / I₀(β)
//
// Weights for offsets outside the window support are zero, which happens to
// one edge tap whenever delay is non-zero. A single-tap window is 1.
// The ratio is formed from exponentially scaled I₀ values, so any finite β
// yields finite weights.
//
// With delay == 0 the window is symmetric: w[i] = w[length-1-i]
func KaiserWindow(length int, beta, delay float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = sincCenterTap
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	beta = math.Abs(beta)
	i0Beta := mathutil.BesselI0Scaled(beta)

	for n := range length {
		// Position relative to the (delayed) center, nominally in [-1, 1]
		x := (float64(n) - alpha - delay) / alpha

		r := 1.0 - x*x
		if r < 0 {
			continue
		}
		arg := beta * math.Sqrt(r)
		window[n] = mathutil.BesselI0Scaled(arg) / i0Beta * math.Exp(arg-beta)
	}

	return window
}

// DesignLowPassFilter designs a Kaiser-windowed sinc lowpass FIR filter.
//
// Each tap is the ideal lowpass response cutoff·sinc(cutoff·t) at the
// delayed center offset t, weighted by the Kaiser window whose β follows
// from the requested attenuation. The gain is left as designed; use
// Normalize to scale it.
func DesignLowPassFilter(params FilterParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	beta := mathutil.KaiserBeta(params.Attenuation)
	window := KaiserWindow(params.NumTaps, beta, params.Delay)

	filter := make([]float64, params.NumTaps)
	center := float64(params.NumTaps-1) / windowNormalizationFactor

	for n := range params.NumTaps {
		t := float64(n) - center - params.Delay
		filter[n] = params.Cutoff * Sinc(params.Cutoff*t) * window[n]
	}

	return filter, nil
}

// Normalize returns a copy of coeffs scaled so that their sum (the DC gain)
// equals gain.
func Normalize[F simdops.Float](coeffs []F, gain F) ([]F, error) {
	g := float64(gain)
	if !(g > 0) || math.IsInf(g, 1) {
		return nil, fmt.Errorf("%w: gain %v must be positive and finite", ErrInvalidSpecification, g)
	}

	ops := simdops.For[F]()
	sum := ops.Sum(coeffs)
	if math.Abs(float64(sum)) < sincZeroThreshold {
		return nil, fmt.Errorf("%w: coefficients have zero DC gain", ErrInvalidSpecification)
	}

	out := make([]F, len(coeffs))
	ops.Scale(out, coeffs, gain/sum)
	return out, nil
}
