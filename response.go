package firdes

import (
	"fmt"

	"github.com/tphakala/go-firdes/internal/filter"
	"gonum.org/v1/gonum/floats"
)

// FrequencyResponse is the magnitude response of a filter from DC to
// Nyquist (0 to 0.5 cycles per sample).
type FrequencyResponse struct {
	Frequencies []float64
	Magnitude   []float64
	MagnitudeDB []float64
}

// Response evaluates coeffs with a zero-padded FFT of size nfft.
// nfft <= 0 selects DefaultFFTSize; sizes shorter than the filter grow to
// the next power of two.
func Response(coeffs []float64, nfft int) (FrequencyResponse, error) {
	if nfft <= 0 {
		nfft = DefaultFFTSize
	}
	resp, err := filter.FFTResponse(coeffs, nfft)
	if err != nil {
		return FrequencyResponse{}, err
	}

	db := make([]float64, len(resp.Magnitude))
	for i, m := range resp.Magnitude {
		db[i] = filter.MagnitudeDB(m)
	}

	return FrequencyResponse{
		Frequencies: resp.Frequencies,
		Magnitude:   resp.Magnitude,
		MagnitudeDB: db,
	}, nil
}

// PeakDB returns the largest magnitude in dB over [from, to] cycles per
// sample, or -Inf when the band holds no frequency bins.
func (r FrequencyResponse) PeakDB(from, to float64) float64 {
	return filter.FilterResponse{Frequencies: r.Frequencies, Magnitude: r.Magnitude}.PeakDB(from, to)
}

// DCGain returns the magnitude at zero frequency, which equals the sum of
// the taps.
func (r FrequencyResponse) DCGain() float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	return r.Magnitude[0]
}

// StopbandAttenuation reports the achieved attenuation of coeffs relative
// to its DC gain, measured from the spec's stopband edge to Nyquist.
// Specs whose stopband edge lies beyond Nyquist (cutoff/2 + df/2 > 0.5)
// have no stopband to measure and return an error.
func StopbandAttenuation(spec FilterSpec, coeffs []float64) (float64, error) {
	_, stopband := spec.Edges()
	if stopband > nyquist {
		return 0, fmt.Errorf("%w: stopband edge %v lies beyond Nyquist", ErrInvalidSpecification, stopband)
	}

	resp, err := Response(coeffs, DefaultFFTSize)
	if err != nil {
		return 0, err
	}
	peak := resp.PeakDB(stopband, nyquist)
	return filter.MagnitudeDB(floats.Sum(coeffs)) - peak, nil
}
