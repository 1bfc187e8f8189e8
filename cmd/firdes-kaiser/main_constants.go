package main

// Default command-line flag values
const (
	defaultCutoff       = 0.4  // Relative to Nyquist
	defaultTransitionBW = 0.2  // Cycles per sample
	defaultSidelobeDB   = 60.0 // Stopband attenuation
	defaultDelay        = 0.0
	defaultScriptPath   = "firdes_kaiser_example.m"
	defaultWAVRate      = 48000
)

// Plot script parameters
const (
	plotFFTSize    = 1024 // nfft in the generated script
	plotFloorExtra = 40   // dB below the sidelobe level shown on the y axis
)

// WAV export
const (
	wavBitDepth    = 24
	wavChannels    = 1
	wavFormatPCM   = 1
	maxInt24       = 8388607.0
	scriptFileMode = 0o644
)
