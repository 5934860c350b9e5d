package config

import "time"

// Output device settings. Sources are assumed to already match SampleRate;
// there is no resampling stage.
const (
	SampleRate = 44100
	Channels   = 2
	BufferSize = 512 // device buffer, in frames
	BitDepth   = 2   // output sample width in bytes (16-bit)
)

// Buffer capacities, in interleaved stereo samples.
const (
	// PlaybackRingSize holds roughly half a second of stereo audio. A full
	// ring is what throttles the decoder while playback is paused.
	PlaybackRingSize = 44100

	// AnalysisRingSize holds about four FFT windows. Overflow here is
	// dropped, never waited on.
	AnalysisRingSize = FFTSize * 4
)

// Analysis settings
const (
	FFTSize             = 2048 // transform window, must be a power of two
	NumBands            = 16
	Smoothing           = 0.7  // weight on history when blending new values
	Decay               = 0.95 // per-tick falloff when no samples arrive
	MaxSamplesPerUpdate = 8192 // drain cap per UI tick
	RMSGain             = 3.0
	BandGain            = 40.0
)

// Playback control settings
const (
	VolumeStep    = 0.05
	DefaultVolume = 0.8
)

// Timing
const (
	TickRate     = time.Second / 15 // UI tick, also the analysis cadence
	StopWait     = 500 * time.Millisecond
	StopPoll     = 10 * time.Millisecond
	WriteBackoff = 5 * time.Millisecond
)
