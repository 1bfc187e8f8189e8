package firdes

import (
	"fmt"

	"github.com/tphakala/go-firdes/internal/filter"
)

// DelayBank precomputes Kaiser lowpass filters at evenly spaced fractional
// delays so that timing-recovery or interpolation loops can pick a filter
// for any offset without redesigning it.
type DelayBank struct {
	bank *filter.DelayBank
	spec FilterSpec
}

// NewDelayBank designs numPhases filters sharing spec's cutoff, attenuation
// and (odd) length. The spec's own fractional delay is ignored; phase p is
// centered at (p+0.5)/numPhases - 0.5. Linear interpolation between
// neighbouring phases is used by Filter.
func NewDelayBank(spec FilterSpec, numPhases int) (*DelayBank, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	length, err := estimateLength(spec.transitionBW, spec.attenuation, true)
	if err != nil {
		return nil, err
	}

	bank, err := filter.DesignDelayBank(filter.BankParams{
		NumPhases:   numPhases,
		NumTaps:     length,
		Cutoff:      spec.cutoff,
		Attenuation: spec.attenuation,
		InterpOrder: filter.InterpLinear,
	})
	if err != nil {
		return nil, err
	}

	return &DelayBank{bank: bank, spec: spec}, nil
}

// NumPhases returns the number of stored delays.
func (b *DelayBank) NumPhases() int { return b.bank.NumPhases }

// Len returns the number of taps per filter.
func (b *DelayBank) Len() int { return b.bank.TapsPerPhase }

// Delay returns the fractional delay of phase p.
// It panics if p is outside [0, NumPhases()).
func (b *DelayBank) Delay(p int) float64 {
	b.checkPhase(p)
	return b.bank.Delay(p)
}

// Phase returns a copy of the taps of phase p.
// It panics if p is outside [0, NumPhases()).
func (b *DelayBank) Phase(p int) []float64 {
	b.checkPhase(p)
	out := make([]float64, b.bank.TapsPerPhase)
	copy(out, b.bank.Phase(p))
	return out
}

// Filter returns taps for an arbitrary delay in (-0.5, 0.5), linearly
// interpolated between the two nearest phases.
func (b *DelayBank) Filter(delay float64) ([]float64, error) {
	out := make([]float64, b.bank.TapsPerPhase)
	if err := b.bank.Interpolate(out, delay); err != nil {
		return nil, err
	}
	return out, nil
}

// Spec returns the specification the bank was designed from.
func (b *DelayBank) Spec() FilterSpec { return b.spec }

func (b *DelayBank) checkPhase(p int) {
	if p < 0 || p >= b.bank.NumPhases {
		panic(fmt.Sprintf("firdes: phase %d out of range [0, %d)", p, b.bank.NumPhases))
	}
}
