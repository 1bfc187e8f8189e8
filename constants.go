package firdes

import "github.com/tphakala/go-firdes/internal/mathutil"

// Filter length bounds
const (
	// MaxFilterLength is the largest filter length EstimateLength and
	// Generate accept.
	MaxFilterLength = mathutil.MaxFilterLength

	// MinEstimatedLength is the floor applied by EstimateLength when the
	// requested attenuation is too low for Kaiser's formula to yield a
	// useful length.
	MinEstimatedLength = mathutil.MinFilterLength
)

// Frequency response defaults
const (
	// DefaultFFTSize is the transform size used by Response when none is given.
	DefaultFFTSize = 1024

	halfDivisor = 2   // Band edges straddle the cutoff by half the transition
	nyquist     = 0.5 // Cycles per sample
)
