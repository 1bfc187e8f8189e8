// Package mathutil provides the numerical primitives behind Kaiser FIR design.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
// This function is used in Kaiser window calculation for filter design.
//
// The implementation uses polynomial approximations:
//   - For |x| < 3.75: Direct polynomial series expansion
//   - For |x| ≥ 3.75: Asymptotic expansion with exponential scaling
//
// Relative error stays below 5e-7 over the whole real line, which is
// well inside what the window shaping needs.
//
// Reference: Abramowitz & Stegun, "Handbook of Mathematical Functions"
func BesselI0(x float64) float64 {
	// Use absolute value since I₀(x) = I₀(-x)
	ax := math.Abs(x)

	// For small arguments, use polynomial approximation
	if ax < besselSmallArgThreshold {
		return besselI0Poly(ax)
	}

	// For larger arguments, use asymptotic expansion
	// I₀(x) ≈ (eˣ / √x) * P(t) where t = 3.75/x
	return math.Exp(ax) * besselI0Asymp(ax)
}

// BesselI0Scaled returns e^(-|x|)·I₀(x). It stays finite for every finite
// x, so ratios of I₀ at large arguments can be formed as
//
//	I₀(a)/I₀(b) = BesselI0Scaled(a)/BesselI0Scaled(b) · e^(|a|-|b|)
//
// without overflowing where BesselI0 itself reaches +Inf (|x| > ~709).
func BesselI0Scaled(x float64) float64 {
	ax := math.Abs(x)
	if ax < besselSmallArgThreshold {
		return besselI0Poly(ax) * math.Exp(-ax)
	}
	return besselI0Asymp(ax)
}

// besselI0Poly is the small-argument series, I₀(x) ≈ 1 + P(t), t = (x/3.75)².
func besselI0Poly(ax float64) float64 {
	t := ax / besselSmallArgThreshold
	t *= t

	return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
		t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
}

// besselI0Asymp returns e^(-x)·I₀(x) for x >= 3.75.
func besselI0Asymp(ax float64) float64 {
	t := besselSmallArgThreshold / ax

	result := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))

	return result / math.Sqrt(ax)
}

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - For att > 50 dB: β = 0.1102 * (att - 8.7)
//   - For 21 dB < att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - For att ≤ 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	if attenuation > kaiserAttHigh {
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	} else if attenuation > kaiserAttMedium {
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	}
	return 0.0
}

// KaiserAttenuation estimates the stopband attenuation achieved by a
// Kaiser window with the given β parameter.
//
// This is the inverse of the high-attenuation branch of KaiserBeta:
//
//	att ≈ 8.7 + β / 0.1102
func KaiserAttenuation(beta float64) float64 {
	if beta < kaiserBetaMinThreshold {
		return 0.0
	}
	return kaiserBetaHighOffset + beta/kaiserBetaHighCoeff1
}

// KaiserFilterOrder returns the unrounded Kaiser estimate of the filter
// order (length minus one):
//
//	N-1 ≈ (att - 7.95) / (14.36 * Δf)
//
// The result is non-positive for attenuations at or below 7.95 dB.
func KaiserFilterOrder(attenuation, transitionBW float64) float64 {
	return (attenuation - kaiserFilterLengthOffset) / (kaiserFilterLengthMultiplier * transitionBW)
}

// EstimateFilterLength estimates the FIR length needed to reach the given
// attenuation within the given transition bandwidth (cycles per sample).
//
// The order is rounded up and one tap added. When symmetric is set the
// length is further rounded up to an odd number so the filter has a
// centre tap. The result is kept within [MinFilterLength, MaxFilterLength];
// callers that must reject oversized designs check KaiserFilterOrder first.
func EstimateFilterLength(attenuation, transitionBW float64, symmetric bool) int {
	order := KaiserFilterOrder(attenuation, transitionBW)
	if order > MaxFilterLength {
		return MaxFilterLength
	}

	taps := int(math.Ceil(order)) + 1
	if symmetric && taps%halfDivisor == 0 {
		taps++
	}

	return min(max(taps, MinFilterLength), MaxFilterLength)
}
