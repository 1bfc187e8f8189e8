package filter

import (
	"fmt"
	"math"
)

const (
	// Phase count bounds for fractional-delay banks
	minNumPhases = 2
	maxNumPhases = 8192

	// Phase p is centered at delay (p + 0.5)/NumPhases - 0.5
	phaseCenterOffset = 0.5
)

// InterpOrder represents the coefficient interpolation order between
// adjacent phases of a delay bank.
type InterpOrder int

const (
	// InterpNone means no interpolation (nearest phase)
	InterpNone InterpOrder = iota
	// InterpLinear means linear interpolation between adjacent phases
	InterpLinear
)

// DelayBank holds a set of Kaiser-windowed lowpass filters that share
// length, cutoff and attenuation but differ in fractional sample delay.
// The delays are spread uniformly over (-0.5, 0.5) so that any requested
// timing offset is close to one stored phase.
type DelayBank struct {
	// Coeffs stores all filter coefficients in a flat array.
	// Layout: [phase0_tap0 ... phase0_tapN-1][phase1_tap0 ...]...
	Coeffs []float64

	// NumPhases is the number of stored delays
	NumPhases int

	// TapsPerPhase is the length of every phase filter
	TapsPerPhase int

	// InterpOrder selects nearest-phase or linear interpolation in Interpolate
	InterpOrder InterpOrder

	// Cutoff is the normalized cutoff frequency used in design
	Cutoff float64

	// Attenuation is the stopband attenuation in dB
	Attenuation float64
}

// BankParams holds parameters for delay bank design.
type BankParams struct {
	// NumPhases is the number of fractional delays to precompute
	NumPhases int

	// NumTaps is the length of each phase filter
	NumTaps int

	// Cutoff is the normalized cutoff frequency (0 to 1)
	Cutoff float64

	// Attenuation is the desired stopband attenuation in dB
	Attenuation float64

	// InterpOrder specifies coefficient interpolation (0 or 1)
	InterpOrder InterpOrder
}

// Validate checks if bank parameters are valid.
func (bp *BankParams) Validate() error {
	if bp.NumPhases < minNumPhases || bp.NumPhases > maxNumPhases {
		return fmt.Errorf("%w: number of phases %d out of range [%d, %d]",
			ErrInvalidSpecification, bp.NumPhases, minNumPhases, maxNumPhases)
	}

	if bp.InterpOrder != InterpNone && bp.InterpOrder != InterpLinear {
		return fmt.Errorf("%w: invalid interpolation order %d (must be 0 or 1)",
			ErrInvalidSpecification, bp.InterpOrder)
	}

	fp := FilterParams{NumTaps: bp.NumTaps, Cutoff: bp.Cutoff, Attenuation: bp.Attenuation}
	return fp.Validate()
}

// PhaseDelay returns the fractional delay of phase p in a bank of numPhases.
func PhaseDelay(p, numPhases int) float64 {
	return (float64(p)+phaseCenterOffset)/float64(numPhases) - phaseCenterOffset
}

// DesignDelayBank designs one Kaiser-windowed lowpass filter per phase.
func DesignDelayBank(params BankParams) (*DelayBank, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	bank := &DelayBank{
		Coeffs:       make([]float64, params.NumPhases*params.NumTaps),
		NumPhases:    params.NumPhases,
		TapsPerPhase: params.NumTaps,
		InterpOrder:  params.InterpOrder,
		Cutoff:       params.Cutoff,
		Attenuation:  params.Attenuation,
	}

	for p := range params.NumPhases {
		h, err := DesignLowPassFilter(FilterParams{
			NumTaps:     params.NumTaps,
			Cutoff:      params.Cutoff,
			Attenuation: params.Attenuation,
			Delay:       PhaseDelay(p, params.NumPhases),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to design phase %d: %w", p, err)
		}
		copy(bank.Phase(p), h)
	}

	return bank, nil
}

// Phase returns the coefficients of phase p. The slice aliases bank storage.
// p must be in [0, NumPhases); callers are responsible for the bounds.
func (b *DelayBank) Phase(p int) []float64 {
	start := p * b.TapsPerPhase
	return b.Coeffs[start : start+b.TapsPerPhase : start+b.TapsPerPhase]
}

// Delay returns the fractional delay of phase p, for p in [0, NumPhases).
func (b *DelayBank) Delay(p int) float64 {
	return PhaseDelay(p, b.NumPhases)
}

// Nearest returns the phase whose delay is closest to delay.
func (b *DelayBank) Nearest(delay float64) int {
	pos := (delay+phaseCenterOffset)*float64(b.NumPhases) - phaseCenterOffset
	p := int(math.Round(pos))
	return min(max(p, 0), b.NumPhases-1)
}

// Interpolate writes the filter for an arbitrary delay in (-0.5, 0.5) into
// dst, which must hold TapsPerPhase values. With InterpLinear the two
// neighbouring phases are blended; delays outside the outermost phase
// centers use the outermost phase.
func (b *DelayBank) Interpolate(dst []float64, delay float64) error {
	if err := ValidateDelay(delay); err != nil {
		return err
	}
	if len(dst) < b.TapsPerPhase {
		return fmt.Errorf("%w: destination holds %d taps, need %d",
			ErrInvalidSpecification, len(dst), b.TapsPerPhase)
	}

	if b.InterpOrder == InterpNone {
		copy(dst, b.Phase(b.Nearest(delay)))
		return nil
	}

	pos := (delay+phaseCenterOffset)*float64(b.NumPhases) - phaseCenterOffset
	p0 := int(math.Floor(pos))
	if p0 < 0 {
		copy(dst, b.Phase(0))
		return nil
	}
	if p0 >= b.NumPhases-1 {
		copy(dst, b.Phase(b.NumPhases-1))
		return nil
	}

	frac := pos - float64(p0)
	h0 := b.Phase(p0)
	h1 := b.Phase(p0 + 1)
	for i := range b.TapsPerPhase {
		dst[i] = h0[i] + (h1[i]-h0[i])*frac
	}
	return nil
}

// GetMemoryUsage returns the approximate memory usage in bytes.
func (b *DelayBank) GetMemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(len(b.Coeffs)) * bytesPerFloat64
}
