package mathutil

// Bessel function approximation constants
// These constants are polynomial coefficients from
// Abramowitz & Stegun, "Handbook of Mathematical Functions", 9.8.1 and 9.8.2

const (
	// Threshold for switching between polynomial and asymptotic approximations
	besselSmallArgThreshold = 3.75 // |x| threshold for I₀
)

// Coefficients for I₀(x) small argument approximation (|ε| < 1.6e-7)
const (
	besselI0Coeff1 = 3.5156229
	besselI0Coeff2 = 3.0899424
	besselI0Coeff3 = 1.2067492
	besselI0Coeff4 = 0.2659732
	besselI0Coeff5 = 0.360768e-1
	besselI0Coeff6 = 0.45813e-2
)

// Coefficients for x^½·e^(-x)·I₀(x) large argument approximation (|ε| < 1.9e-7)
const (
	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// Kaiser window formula constants
// From Kaiser & Schafer's empirical formulas
const (
	// Attenuation thresholds for β calculation
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	// Kaiser β formula coefficients
	kaiserBetaHighCoeff1 = 0.1102 // Coefficient for high attenuation
	kaiserBetaHighOffset = 8.7    // Offset for high attenuation

	kaiserBetaMediumCoeff1 = 0.5842  // Primary coefficient for medium attenuation
	kaiserBetaMediumPower  = 0.4     // Power for medium attenuation formula
	kaiserBetaMediumCoeff2 = 0.07886 // Secondary coefficient for medium attenuation

	kaiserBetaMinThreshold = 0.1 // Minimum β for attenuation calculation
)

// Filter length estimation constants
const (
	// Kaiser's filter order formula: N-1 ≈ (att - 7.95) / (14.36 * Δf)
	kaiserFilterLengthOffset     = 7.95  // Attenuation offset in Kaiser formula
	kaiserFilterLengthMultiplier = 14.36 // 2.285 * 2π, Δf in cycles per sample

	// MinFilterLength is the smallest length the estimator returns.
	MinFilterLength = 3

	// MaxFilterLength bounds both estimated and requested filter lengths.
	MaxFilterLength = 1 << 20
)

// Common division constants
const (
	halfDivisor = 2 // Division by 2
)
