package filter

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-firdes/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// DefaultFFTSize matches the size used by the generated plot scripts.
	DefaultFFTSize = 1024

	defaultResponsePoints = 512

	minMagnitude = 1e-10 // Avoid log(0)
	dbMultiplier = 20.0  // 20*log10 for magnitude
)

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (cycles per sample, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64
}

// ComputeFrequencyResponse calculates the frequency response of a FIR filter
// by direct evaluation of the discrete-time Fourier transform at numPoints
// frequencies from 0 up to (but excluding) Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	ops := simdops.For[float64]()
	cosTable := make([]float64, len(coeffs))
	sinTable := make([]float64, len(coeffs))

	for k := range numPoints {
		freq := float64(k) / (windowNormalizationFactor * float64(numPoints))
		response.Frequencies[k] = freq

		// H(e^jω) = Σ h[n]·e^(-jωn)
		omega := windowNormalizationFactor * sincPiMultiplier * freq
		for n := range coeffs {
			sinTable[n], cosTable[n] = math.Sincos(omega * float64(n))
		}

		realPart := ops.DotProductUnsafe(coeffs, cosTable)
		imagPart := -ops.DotProductUnsafe(coeffs, sinTable)

		response.Magnitude[k] = math.Hypot(realPart, imagPart)
	}

	return response
}

// FFTResponse computes the frequency response of coeffs with a zero-padded
// real FFT of size nfft. A non-positive nfft selects DefaultFFTSize; an nfft
// shorter than the filter grows to the next power of two that holds it.
// The result has nfft/2+1 bins spanning 0 to 0.5 cycles per sample.
func FFTResponse(coeffs []float64, nfft int) (FilterResponse, error) {
	if len(coeffs) == 0 {
		return FilterResponse{}, fmt.Errorf("%w: empty coefficient sequence", ErrInvalidSpecification)
	}
	if nfft <= 0 {
		nfft = DefaultFFTSize
	}
	if nfft < len(coeffs) {
		nfft = nextPowerOfTwo(len(coeffs))
	}

	padded := make([]float64, nfft)
	copy(padded, coeffs)

	fft := fourier.NewFFT(nfft)
	bins := fft.Coefficients(nil, padded)

	response := FilterResponse{
		Frequencies: make([]float64, len(bins)),
		Magnitude:   make([]float64, len(bins)),
	}
	for k, c := range bins {
		response.Frequencies[k] = fft.Freq(k)
		response.Magnitude[k] = cmplx.Abs(c)
	}

	return response, nil
}

// PeakDB returns the largest magnitude, in dB, over the frequencies in
// [from, to]. It returns -Inf when no frequency falls in the band.
func (r FilterResponse) PeakDB(from, to float64) float64 {
	peak := math.Inf(-1)
	for i, f := range r.Frequencies {
		if f < from || f > to {
			continue
		}
		peak = math.Max(peak, MagnitudeDB(r.Magnitude[i]))
	}
	return peak
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
