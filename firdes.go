package firdes

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-firdes/internal/filter"
	"github.com/tphakala/go-firdes/internal/mathutil"
)

// ErrInvalidSpecification indicates a design parameter outside its
// documented domain. All validation errors wrap it; test with errors.Is.
var ErrInvalidSpecification = filter.ErrInvalidSpecification

// FilterSpec is a validated lowpass design request.
//
// Frequencies are normalized: the cutoff is relative to the Nyquist
// frequency (the ideal response is cutoff·sinc(cutoff·t)), and the
// transition bandwidth is in cycles per sample as used by Kaiser's length
// formula.
type FilterSpec struct {
	cutoff       float64
	transitionBW float64
	attenuation  float64
	delay        float64
}

// NewFilterSpec validates and returns a design specification.
//
// Parameters:
//
//	cutoff: normalized cutoff frequency, 0 < cutoff < 1
//	transitionBandwidth: transition band width, 0 < transitionBandwidth < 0.5
//	stopbandAttenuationDb: stopband attenuation in dB, > 0
//	fractionalDelay: sub-sample shift of the filter center, -0.5 < fractionalDelay < 0.5
func NewFilterSpec(cutoff, transitionBandwidth, stopbandAttenuationDb, fractionalDelay float64) (FilterSpec, error) {
	spec := FilterSpec{
		cutoff:       cutoff,
		transitionBW: transitionBandwidth,
		attenuation:  stopbandAttenuationDb,
		delay:        fractionalDelay,
	}
	if err := spec.validate(); err != nil {
		return FilterSpec{}, err
	}
	return spec, nil
}

func (s FilterSpec) validate() error {
	if err := filter.ValidateCutoff(s.cutoff); err != nil {
		return err
	}
	if err := filter.ValidateTransitionBW(s.transitionBW); err != nil {
		return err
	}
	if err := filter.ValidateAttenuation(s.attenuation); err != nil {
		return err
	}
	return filter.ValidateDelay(s.delay)
}

// Cutoff returns the normalized cutoff frequency.
func (s FilterSpec) Cutoff() float64 { return s.cutoff }

// TransitionBandwidth returns the transition bandwidth in cycles per sample.
func (s FilterSpec) TransitionBandwidth() float64 { return s.transitionBW }

// StopbandAttenuation returns the stopband attenuation in dB.
func (s FilterSpec) StopbandAttenuation() float64 { return s.attenuation }

// FractionalDelay returns the fractional sample delay.
func (s FilterSpec) FractionalDelay() float64 { return s.delay }

// Symmetric reports whether the design is zero-delay and therefore linear
// phase with an odd number of taps.
func (s FilterSpec) Symmetric() bool { return s.delay == 0 }

// Beta returns the Kaiser window shape parameter for the spec's attenuation.
func (s FilterSpec) Beta() float64 { return mathutil.KaiserBeta(s.attenuation) }

// Edges returns the passband and stopband edges in cycles per sample.
func (s FilterSpec) Edges() (passband, stopband float64) {
	center := s.cutoff / halfDivisor
	half := s.transitionBW / halfDivisor
	return center - half, center + half
}

// Length returns the number of taps Design produces for the spec.
// Zero-delay specs are rounded up to an odd length.
func (s FilterSpec) Length() (int, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	return estimateLength(s.transitionBW, s.attenuation, s.Symmetric())
}

// String implements fmt.Stringer.
func (s FilterSpec) String() string {
	return fmt.Sprintf("fc=%g df=%g As=%gdB mu=%g", s.cutoff, s.transitionBW, s.attenuation, s.delay)
}

// EstimateLength returns the number of taps Kaiser's formula requires to
// reach stopbandAttenuationDb within transitionBandwidth:
//
//	length = ceil((As - 7.95) / (14.36 * df)) + 1
//
// rounded up to an odd number for a symmetric, zero-delay design. Very low
// attenuations yield MinEstimatedLength. Estimates beyond MaxFilterLength
// are rejected rather than clamped.
func EstimateLength(transitionBandwidth, stopbandAttenuationDb float64) (int, error) {
	if err := filter.ValidateTransitionBW(transitionBandwidth); err != nil {
		return 0, err
	}
	if err := filter.ValidateAttenuation(stopbandAttenuationDb); err != nil {
		return 0, err
	}
	return estimateLength(transitionBandwidth, stopbandAttenuationDb, true)
}

func estimateLength(transitionBW, attenuation float64, symmetric bool) (int, error) {
	// Leave room for the +1 tap and odd rounding.
	if mathutil.KaiserFilterOrder(attenuation, transitionBW) > MaxFilterLength-halfDivisor {
		return 0, fmt.Errorf("%w: %v dB within %v needs more than %d taps",
			ErrInvalidSpecification, attenuation, transitionBW, MaxFilterLength)
	}
	return mathutil.EstimateFilterLength(attenuation, transitionBW, symmetric), nil
}

// Generate computes length Kaiser-windowed sinc taps.
//
// Tap i is cutoff·sinc(cutoff·t)·w(t) with t = i - (length-1)/2 - fractionalDelay
// and w the Kaiser window whose β follows from stopbandAttenuationDb. The
// gain is not normalized. A single tap equals cutoff.
func Generate(length int, cutoff, stopbandAttenuationDb, fractionalDelay float64) ([]float64, error) {
	return filter.DesignLowPassFilter(filter.FilterParams{
		NumTaps:     length,
		Cutoff:      cutoff,
		Attenuation: stopbandAttenuationDb,
		Delay:       fractionalDelay,
	})
}

// Design sizes and generates the filter described by spec.
func Design(spec FilterSpec) ([]float64, error) {
	length, err := spec.Length()
	if err != nil {
		return nil, err
	}
	return Generate(length, spec.cutoff, spec.attenuation, spec.delay)
}

// DesignMany designs every spec concurrently. Results are returned in input
// order. If any design fails the first error is returned and no results.
func DesignMany(specs []FilterSpec) ([][]float64, error) {
	results := make([][]float64, len(specs))
	var wg sync.WaitGroup
	var designErr error
	var errMu sync.Mutex

	for i := range specs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			h, err := Design(specs[idx])
			if err != nil {
				errMu.Lock()
				if designErr == nil {
					designErr = fmt.Errorf("design %d (%s) failed: %w", idx, specs[idx], err)
				}
				errMu.Unlock()
				return
			}
			results[idx] = h
		}(i)
	}
	wg.Wait()

	if designErr != nil {
		return nil, designErr
	}

	return results, nil
}

// Normalize returns a copy of coeffs scaled to the given DC gain.
// Designs are unnormalized by default; this is an explicit opt-in.
func Normalize(coeffs []float64, gain float64) ([]float64, error) {
	return filter.Normalize(coeffs, gain)
}

// NormalizeFloat32 is like Normalize but for float32 coefficients.
func NormalizeFloat32(coeffs []float32, gain float32) ([]float32, error) {
	return filter.Normalize(coeffs, gain)
}

// Float32 narrows coefficients to single precision.
func Float32(coeffs []float64) []float32 {
	out := make([]float32, len(coeffs))
	for i, c := range coeffs {
		out[i] = float32(c)
	}
	return out
}
