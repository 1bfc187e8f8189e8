package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-firdes"
	"github.com/tphakala/go-firdes/internal/filter"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// printDesign writes the design parameters and taps in the same layout as
// the generated script, with 1-based indices.
func printDesign(w io.Writer, spec firdes.FilterSpec, h []float64) {
	fmt.Fprintf(w, "filter design parameters\n")
	fmt.Fprintf(w, "    cutoff frequency            :   %12.8f\n", spec.Cutoff())
	fmt.Fprintf(w, "    transition bandwidth        :   %12.8f\n", spec.TransitionBandwidth())
	fmt.Fprintf(w, "    sidelobe level [dB]         :   %12.8f\n", spec.StopbandAttenuation())
	fmt.Fprintf(w, "    fractional sample offset    :   %12.8f\n", spec.FractionalDelay())
	fmt.Fprintf(w, "h_len : %d\n", len(h))
	for i, v := range h {
		fmt.Fprintf(w, "h(%4d) = %16.12f;\n", i+1, v)
	}
}

// writeOctaveScript writes a script that defines the taps and plots their
// magnitude response.
func writeOctaveScript(w io.Writer, name string, spec firdes.FilterSpec, h []float64) error {
	bw := bufio.NewWriter(w)
	fc := spec.Cutoff()
	slsl := spec.StopbandAttenuation()

	fmt.Fprintf(bw, "%% %s: auto-generated file\n\n", name)
	fmt.Fprintf(bw, "clear all;\nclose all;\n\n")
	fmt.Fprintf(bw, "h_len=%d;\n", len(h))
	fmt.Fprintf(bw, "fc=%12.4e;\n", fc)
	fmt.Fprintf(bw, "slsl=%12.4e;\n", slsl)
	for i, v := range h {
		fmt.Fprintf(bw, "h(%4d) = %12.4e;\n", i+1, v)
	}

	fmt.Fprintf(bw, "nfft=%d;\n", plotFFTSize)
	fmt.Fprintf(bw, "H=20*log10(abs(fftshift(fft(h*fc,nfft))));\n")
	fmt.Fprintf(bw, "f=[0:(nfft-1)]/nfft-0.5;\n")
	fmt.Fprintf(bw, "figure; plot(f,H,'Color',[0 0.5 0.25],'LineWidth',2);\n")
	fmt.Fprintf(bw, "grid on;\n")
	fmt.Fprintf(bw, "xlabel('normalized frequency');\n")
	fmt.Fprintf(bw, "ylabel('PSD [dB]');\n")
	fmt.Fprintf(bw, "title(['Filter design/Kaiser window f_c: %f, S_L: %f, h: %d']);\n", fc, -slsl, len(h))
	fmt.Fprintf(bw, "axis([-0.5 0.5 -slsl-%d 10]);\n", plotFloorExtra)

	return bw.Flush()
}

// responseMismatch returns the largest magnitude difference between the
// FFT response of h and a direct DTFT evaluated on the same bins.
func responseMismatch(h []float64) (float64, error) {
	resp, err := firdes.Response(h, plotFFTSize)
	if err != nil {
		return 0, err
	}

	// The FFT has nfft/2+1 bins; the DTFT covers all but the Nyquist bin.
	dtft := filter.ComputeFrequencyResponse(h, len(resp.Frequencies)-1)
	worst := 0.0
	for k, m := range dtft.Magnitude {
		worst = math.Max(worst, math.Abs(m-resp.Magnitude[k]))
	}
	return worst, nil
}

// writeScriptFile creates path and writes the plot script into it.
func writeScriptFile(path string, spec firdes.FilterSpec, h []float64) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, scriptFileMode)
	if err != nil {
		return fmt.Errorf("failed to create script file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return writeOctaveScript(f, filepath.Base(path), spec, h)
}

// impulseSamples scales h so its largest magnitude maps to full-scale
// 24-bit PCM.
func impulseSamples(h []float64) ([]int, error) {
	if len(h) == 0 {
		return nil, errors.New("no taps to export")
	}

	peak := math.Max(floats.Max(h), -floats.Min(h))
	if peak == 0 {
		return nil, errors.New("impulse response is all zeros")
	}

	scale := maxInt24 / peak
	samples := make([]int, len(h))
	for i, v := range h {
		samples[i] = int(math.Round(v * scale))
	}
	return samples, nil
}

// writeImpulseWAV writes h as a mono 24-bit PCM WAV file.
func writeImpulseWAV(path string, sampleRate int, h []float64) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid WAV sample rate %d", sampleRate)
	}

	samples, err := impulseSamples(h)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}

	// Close finalizes the RIFF header sizes.
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// batchFile is the YAML layout accepted by -batch.
type batchFile struct {
	Designs []batchDesign `yaml:"designs"`
}

type batchDesign struct {
	Name        string  `yaml:"name"`
	Cutoff      float64 `yaml:"cutoff"`
	Transition  float64 `yaml:"transition"`
	Attenuation float64 `yaml:"attenuation"`
	Delay       float64 `yaml:"delay"`
}

// namedSpec is a validated batch entry.
type namedSpec struct {
	name string
	spec firdes.FilterSpec
}

// loadBatch decodes and validates a batch document. Unknown keys are
// rejected so that typos do not silently fall back to zero values.
func loadBatch(r io.Reader) ([]namedSpec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc batchFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("batch file has no designs")
		}
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(doc.Designs) == 0 {
		return nil, errors.New("batch file has no designs")
	}

	designs := make([]namedSpec, len(doc.Designs))
	for i, d := range doc.Designs {
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("design%d", i+1)
		}
		spec, err := firdes.NewFilterSpec(d.Cutoff, d.Transition, d.Attenuation, d.Delay)
		if err != nil {
			return nil, fmt.Errorf("design %q: %w", name, err)
		}
		designs[i] = namedSpec{name: name, spec: spec}
	}
	return designs, nil
}

// summarizeBatch prints one line per design with its length and measured
// stopband attenuation relative to DC.
func summarizeBatch(w io.Writer, designs []namedSpec, results [][]float64) error {
	fmt.Fprintf(w, "%-16s %8s %8s %8s %8s %6s %10s\n",
		"name", "fc", "df", "As[dB]", "mu", "h_len", "meas[dB]")
	for i, d := range designs {
		measured, err := firdes.StopbandAttenuation(d.spec, results[i])
		if err != nil {
			return fmt.Errorf("design %q: %w", d.name, err)
		}
		fmt.Fprintf(w, "%-16s %8.4f %8.4f %8.2f %8.4f %6d %10.2f\n",
			d.name, d.spec.Cutoff(), d.spec.TransitionBandwidth(),
			d.spec.StopbandAttenuation(), d.spec.FractionalDelay(),
			len(results[i]), measured)
	}
	return nil
}
