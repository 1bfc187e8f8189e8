package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-firdes/internal/mathutil"
	"github.com/tphakala/go-firdes/internal/testutil"
)

const (
	// Test window parameters
	testWindowLength11 = 11
	testWindowLength21 = 21
	testWindowLength51 = 51
	testBeta5          = 5.0
	testBeta8          = 8.653728
	testBeta10         = 10.0

	// Test filter parameters
	testAttenuation60 = 60.0
	testAttenuation80 = 80.0
	testCutoff0_25    = 0.25
	testCutoff0_4     = 0.4
	testTransitionBW  = 0.1

	stopbandMarginDB = 10.0
)

// TestKaiserWindow_Symmetry verifies that the undelayed Kaiser window is symmetric.
func TestKaiserWindow_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_11_beta_5", testWindowLength11, testBeta5},
		{"length_21_beta_8", testWindowLength21, testBeta8},
		{"length_51_beta_10", testWindowLength51, testBeta10},
		{"length_20_beta_5", 20, testBeta5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, tt.beta, 0)

			assert.Len(t, window, tt.length, "window length mismatch")
			testutil.AssertSymmetric(t, window, testutil.WindowTolerance)
			testutil.AssertAllInRange(t, window, 0, 1)
		})
	}
}

// TestKaiserWindow_CenterAndEdges verifies the center weight is 1 and the
// edge weights are 1/I₀(β).
func TestKaiserWindow_CenterAndEdges(t *testing.T) {
	window := KaiserWindow(testWindowLength21, testBeta8, 0)

	testutil.AssertCenterIsMax(t, window)

	centerIdx := testWindowLength21 / 2
	assert.InDelta(t, 1.0, window[centerIdx], testutil.WindowTolerance, "center value should be 1.0")

	edge := 1 / mathutil.BesselI0(testBeta8)
	assert.InDelta(t, edge, window[0], testutil.WindowTolerance)
	assert.InDelta(t, edge, window[testWindowLength21-1], testutil.WindowTolerance)
}

// TestKaiserWindow_ZeroBeta verifies β = 0 gives a rectangular window.
func TestKaiserWindow_ZeroBeta(t *testing.T) {
	window := KaiserWindow(testWindowLength11, 0, 0)
	for i, w := range window {
		assert.InDelta(t, 1.0, w, testutil.WindowTolerance, "w[%d]", i)
	}
}

// TestKaiserWindow_Delay verifies that a delayed window drops the tap that
// falls outside the support.
func TestKaiserWindow_Delay(t *testing.T) {
	const delay = 0.25
	window := KaiserWindow(testWindowLength11, testBeta5, delay)

	assert.Zero(t, window[0], "leading edge should fall outside the support")
	assert.Positive(t, window[testWindowLength11-1])

	// The delayed window is the mirror image of the window delayed the other way.
	mirror := KaiserWindow(testWindowLength11, testBeta5, -delay)
	for i := range window {
		assert.InDelta(t, window[i], mirror[testWindowLength11-1-i], testutil.WindowTolerance)
	}
}

// TestKaiserWindow_LargeBeta verifies the window stays finite when I₀(β)
// itself overflows float64.
func TestKaiserWindow_LargeBeta(t *testing.T) {
	for _, beta := range []float64{700, 770.4, 2000} {
		window := KaiserWindow(testWindowLength51, beta, 0)

		testutil.AssertNoNaNOrInf(t, window)
		testutil.AssertAllInRange(t, window, 0, 1)
		testutil.AssertSymmetric(t, window, testutil.WindowTolerance)
		assert.InDelta(t, 1.0, window[testWindowLength51/2], testutil.WindowTolerance, "beta=%v", beta)
	}

	delayed := KaiserWindow(testWindowLength51, 900, 0.2)
	testutil.AssertNoNaNOrInf(t, delayed)
}

// TestKaiserWindow_EdgeCases tests edge cases.
func TestKaiserWindow_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
		want   int
	}{
		{"zero_length", 0, testBeta5, 0},
		{"negative_length", -1, testBeta5, 0},
		{"length_one", 1, testBeta5, 1},
		{"length_two", 2, testBeta5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, tt.beta, 0)
			assert.Len(t, window, tt.want, "window length mismatch")

			if tt.length == 1 && len(window) == 1 {
				assert.InDelta(t, 1.0, window[0], testutil.WindowTolerance,
					"single tap value should be 1.0")
			}
		})
	}
}

// TestSinc tests the normalized sinc function.
func TestSinc(t *testing.T) {
	assert.InDelta(t, 1.0, Sinc(0), testutil.DefaultTolerance)
	assert.InDelta(t, 0.0, Sinc(1), testutil.DefaultTolerance)
	assert.InDelta(t, 0.0, Sinc(-3), testutil.DefaultTolerance)
	assert.InDelta(t, 2/math.Pi, Sinc(0.5), testutil.DefaultTolerance)
	assert.InDelta(t, Sinc(0.3), Sinc(-0.3), testutil.DefaultTolerance)
}

// TestFilterParams_Validate tests parameter validation.
func TestFilterParams_Validate(t *testing.T) {
	valid := FilterParams{
		NumTaps:     21,
		Cutoff:      testCutoff0_4,
		Attenuation: testAttenuation60,
	}

	tests := []struct {
		name    string
		modify  func(p *FilterParams)
		wantErr bool
	}{
		{"valid_params", func(p *FilterParams) {}, false},
		{"single_tap", func(p *FilterParams) { p.NumTaps = 1 }, false},
		{"delay_near_edge", func(p *FilterParams) { p.Delay = -0.499 }, false},
		{"zero_taps", func(p *FilterParams) { p.NumTaps = 0 }, true},
		{"too_many_taps", func(p *FilterParams) { p.NumTaps = maxFilterTaps + 1 }, true},
		{"cutoff_zero", func(p *FilterParams) { p.Cutoff = 0 }, true},
		{"cutoff_one", func(p *FilterParams) { p.Cutoff = 1 }, true},
		{"cutoff_nan", func(p *FilterParams) { p.Cutoff = math.NaN() }, true},
		{"attenuation_zero", func(p *FilterParams) { p.Attenuation = 0 }, true},
		{"attenuation_negative", func(p *FilterParams) { p.Attenuation = -10 }, true},
		{"attenuation_inf", func(p *FilterParams) { p.Attenuation = math.Inf(1) }, true},
		{"delay_half", func(p *FilterParams) { p.Delay = 0.5 }, true},
		{"delay_minus_half", func(p *FilterParams) { p.Delay = -0.5 }, true},
		{"delay_nan", func(p *FilterParams) { p.Delay = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.modify(&params)
			err := params.Validate()
			if tt.wantErr {
				require.Error(t, err, "expected validation error")
				assert.ErrorIs(t, err, ErrInvalidSpecification)
			} else {
				assert.NoError(t, err, "unexpected validation error")
			}
		})
	}
}

// TestValidateTransitionBW tests the transition bandwidth domain.
func TestValidateTransitionBW(t *testing.T) {
	assert.NoError(t, ValidateTransitionBW(0.2))
	assert.NoError(t, ValidateTransitionBW(0.499))
	for _, bw := range []float64{0, -0.1, 0.5, 1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateTransitionBW(bw), ErrInvalidSpecification, "bw=%v", bw)
	}
}

// TestDesignLowPassFilter_Symmetry verifies filter symmetry.
func TestDesignLowPassFilter_Symmetry(t *testing.T) {
	for _, numTaps := range []int{3, 21, 39, 101, 40} {
		filter, err := DesignLowPassFilter(FilterParams{
			NumTaps:     numTaps,
			Cutoff:      testCutoff0_25,
			Attenuation: testAttenuation80,
		})
		require.NoError(t, err, "DesignLowPassFilter failed")

		assert.Len(t, filter, numTaps, "filter length mismatch")
		testutil.AssertSymmetric(t, filter, testutil.DefaultTolerance)
		testutil.AssertNoNaNOrInf(t, filter)
	}
}

// TestDesignLowPassFilter_CenterTap verifies the center tap equals the cutoff
// and dominates the sequence.
func TestDesignLowPassFilter_CenterTap(t *testing.T) {
	filter, err := DesignLowPassFilter(FilterParams{
		NumTaps:     testWindowLength21,
		Cutoff:      testCutoff0_4,
		Attenuation: testAttenuation60,
	})
	require.NoError(t, err)

	assert.InDelta(t, testCutoff0_4, filter[testWindowLength21/2], testutil.DefaultTolerance)
	testutil.AssertCenterIsMaxMagnitude(t, filter)
}

// TestDesignLowPassFilter_SingleTap verifies a one-tap filter is just the cutoff.
func TestDesignLowPassFilter_SingleTap(t *testing.T) {
	filter, err := DesignLowPassFilter(FilterParams{
		NumTaps:     1,
		Cutoff:      0.5,
		Attenuation: testAttenuation60,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, filter)
}

// TestDesignLowPassFilter_DelayMirror verifies that opposite delays produce
// time-reversed filters.
func TestDesignLowPassFilter_DelayMirror(t *testing.T) {
	params := FilterParams{
		NumTaps:     testWindowLength21,
		Cutoff:      testCutoff0_4,
		Attenuation: testAttenuation60,
		Delay:       0.3,
	}
	forward, err := DesignLowPassFilter(params)
	require.NoError(t, err)

	params.Delay = -0.3
	backward, err := DesignLowPassFilter(params)
	require.NoError(t, err)

	for i := range forward {
		assert.InDelta(t, forward[i], backward[len(backward)-1-i], testutil.DefaultTolerance)
	}
}

// TestDesignLowPassFilter_UnnormalizedGain verifies that the raw design is
// close to, but not forced to, unity DC gain.
func TestDesignLowPassFilter_UnnormalizedGain(t *testing.T) {
	filter, err := DesignLowPassFilter(FilterParams{
		NumTaps:     101,
		Cutoff:      testCutoff0_4,
		Attenuation: testAttenuation80,
	})
	require.NoError(t, err)

	testutil.AssertDCGain(t, filter, 1.0, 1e-3)
}

// TestDesignLowPassFilter_FrequencyResponse verifies passband flatness and
// stopband attenuation for an automatically sized filter.
func TestDesignLowPassFilter_FrequencyResponse(t *testing.T) {
	numTaps := mathutil.EstimateFilterLength(testAttenuation80, testTransitionBW, true)
	filter, err := DesignLowPassFilter(FilterParams{
		NumTaps:     numTaps,
		Cutoff:      testCutoff0_4,
		Attenuation: testAttenuation80,
	})
	require.NoError(t, err)

	response, err := FFTResponse(filter, 4096)
	require.NoError(t, err)

	// Band edges in cycles per sample: the cutoff is relative to Nyquist.
	edge := testCutoff0_4 / 2
	passbandEnd := edge - testTransitionBW/2
	stopbandStart := edge + testTransitionBW/2

	for i, freq := range response.Frequencies {
		if freq > passbandEnd {
			break
		}
		magDB := MagnitudeDB(response.Magnitude[i])
		assert.LessOrEqual(t, math.Abs(magDB), testutil.DBTolerance,
			"passband ripple at freq=%f: %f dB", freq, magDB)
	}

	peak := response.PeakDB(stopbandStart, 0.5)
	assert.LessOrEqual(t, peak, -testAttenuation80+stopbandMarginDB,
		"insufficient stopband attenuation: peak %f dB", peak)
}

// TestNormalize verifies DC gain normalization for both precisions.
func TestNormalize(t *testing.T) {
	filter, err := DesignLowPassFilter(FilterParams{
		NumTaps:     testWindowLength51,
		Cutoff:      testCutoff0_25,
		Attenuation: testAttenuation60,
	})
	require.NoError(t, err)
	original := append([]float64(nil), filter...)

	for _, gain := range []float64{1, 2, 0.5} {
		normalized, err := Normalize(filter, gain)
		require.NoError(t, err)
		testutil.AssertDCGain(t, normalized, gain, testutil.DefaultTolerance)
	}
	assert.Equal(t, original, filter, "Normalize must not modify its input")

	narrow := make([]float32, len(filter))
	for i, v := range filter {
		narrow[i] = float32(v)
	}
	normalized32, err := Normalize(narrow, float32(1))
	require.NoError(t, err)
	var sum float64
	for _, v := range normalized32 {
		sum += float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

// TestNormalize_Errors verifies invalid gains and zero-sum inputs are rejected.
func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize([]float64{0.5, 0.5}, 0)
	assert.ErrorIs(t, err, ErrInvalidSpecification)

	_, err = Normalize([]float64{0.5, 0.5}, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidSpecification)

	_, err = Normalize([]float64{1, -1}, 1)
	assert.ErrorIs(t, err, ErrInvalidSpecification)
}

// BenchmarkKaiserWindow benchmarks window generation.
func BenchmarkKaiserWindow(b *testing.B) {
	benchmarks := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_51", testWindowLength51, testBeta8},
		{"length_101", 101, testBeta8},
		{"length_201", 201, testBeta10},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for b.Loop() {
				_ = KaiserWindow(bm.length, bm.beta, 0)
			}
		})
	}
}

// BenchmarkDesignLowPassFilter benchmarks filter design.
func BenchmarkDesignLowPassFilter(b *testing.B) {
	params := FilterParams{
		NumTaps:     201,
		Cutoff:      testCutoff0_25,
		Attenuation: 100,
	}

	for b.Loop() {
		_, _ = DesignLowPassFilter(params)
	}
}
