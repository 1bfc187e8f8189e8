// Command firdes-kaiser designs a Kaiser-windowed FIR lowpass filter, prints
// its taps and writes an Octave/MATLAB script that plots the response.
//
// Usage:
//
//	firdes-kaiser                                  # fc=0.4, df=0.2, 60 dB
//	firdes-kaiser -f 0.25 -t 0.05 -s 80 -m 0.3     # narrow, delayed design
//	firdes-kaiser -wav kernel.wav -normalize       # export impulse response
//	firdes-kaiser -batch designs.yaml              # design a list of filters
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tphakala/go-firdes"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cutoff := flag.Float64("f", defaultCutoff, "Filter cutoff frequency, 0 < f < 1")
	transition := flag.Float64("t", defaultTransitionBW, "Filter transition bandwidth, 0 < t < 0.5")
	sidelobe := flag.Float64("s", defaultSidelobeDB, "Filter sidelobe level in dB, 0 < s")
	delay := flag.Float64("m", defaultDelay, "Fractional sample delay, -0.5 < m < 0.5")
	scriptPath := flag.String("o", defaultScriptPath, "Octave/MATLAB script output path (empty to skip)")
	wavPath := flag.String("wav", "", "Write the impulse response as a 24-bit WAV file")
	wavRate := flag.Int("rate", defaultWAVRate, "Sample rate of the exported WAV file in Hz")
	normalize := flag.Bool("normalize", false, "Scale taps to unity DC gain")
	batchPath := flag.String("batch", "", "YAML file listing designs to run instead of the flags")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *batchPath != "" {
		return runBatch(*batchPath, *verbose)
	}

	spec, err := firdes.NewFilterSpec(*cutoff, *transition, *sidelobe, *delay)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Spec: %s", spec)
		log.Printf("Kaiser beta: %.6f", spec.Beta())
	}

	h, err := firdes.Design(spec)
	if err != nil {
		return err
	}
	if *normalize {
		if h, err = firdes.Normalize(h, 1); err != nil {
			return err
		}
	}

	printDesign(os.Stdout, spec, h)

	if *verbose {
		mismatch, err := responseMismatch(h)
		if err != nil {
			return err
		}
		log.Printf("FFT/DTFT max magnitude deviation: %.3e", mismatch)
	}

	if *scriptPath != "" {
		if err := writeScriptFile(*scriptPath, spec, h); err != nil {
			return err
		}
		fmt.Printf("results written to %s\n", *scriptPath)
	}

	if *wavPath != "" {
		if err := writeImpulseWAV(*wavPath, *wavRate, h); err != nil {
			return err
		}
		if *verbose {
			log.Printf("Impulse response: %s (%d Hz, %d-bit)", *wavPath, *wavRate, wavBitDepth)
		}
	}

	fmt.Println("done.")
	return nil
}

func runBatch(path string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	designs, err := loadBatch(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if verbose {
		log.Printf("Designing %d filters from %s", len(designs), path)
	}

	specs := make([]firdes.FilterSpec, len(designs))
	for i, d := range designs {
		specs[i] = d.spec
	}

	results, err := firdes.DesignMany(specs)
	if err != nil {
		return err
	}

	return summarizeBatch(os.Stdout, designs, results)
}
