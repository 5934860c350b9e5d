package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/yuya-fujimoto/fomu.cli/internal/config"
)

// Analyzer derives a loudness value and log-spaced frequency bands from the
// analysis ring. It runs on the control thread at the UI tick rate, never
// in the real-time path, and tolerates dropped samples: the decoder's
// analysis feed is lossy by design.
type Analyzer struct {
	ring *Ring

	// Rolling mono window. Stereo pairs are averaged as they drain;
	// pendingLeft carries parity across Update calls so an odd drain count
	// cannot swap channels.
	window      []float32
	pendingLeft float32
	hasPending  bool

	fft    *fourier.FFT
	fftIn  []float64
	coeffs []complex128
	hann   []float64

	rms   float32
	bands [config.NumBands]float32
}

// NewAnalyzer creates an analyzer with no ring attached; call Attach when a
// track begins.
func NewAnalyzer() *Analyzer {
	hann := make([]float64, config.FFTSize)
	for i := range hann {
		hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(config.FFTSize-1)))
	}

	return &Analyzer{
		window: make([]float32, 0, config.FFTSize),
		fft:    fourier.NewFFT(config.FFTSize),
		fftIn:  make([]float64, config.FFTSize),
		coeffs: make([]complex128, config.FFTSize/2+1),
		hann:   hann,
	}
}

// Attach creates a fresh analysis ring for a new track and clears the
// rolling window. Returns the producer side for the decoder.
func (a *Analyzer) Attach() *Ring {
	ring := NewRing(config.AnalysisRingSize)
	a.ring = ring
	a.window = a.window[:0]
	a.hasPending = false
	return ring
}

// Update drains buffered samples and refreshes the analysis values. Called
// once per UI tick. Cost per call is bounded: at most
// config.MaxSamplesPerUpdate samples drained and at most one transform.
func (a *Analyzer) Update() {
	drained := 0
	if a.ring != nil {
		for drained < config.MaxSamplesPerUpdate {
			v, ok := a.ring.TryRead()
			if !ok {
				break
			}
			if a.hasPending {
				a.window = append(a.window, (a.pendingLeft+v)*0.5)
				a.hasPending = false
			} else {
				a.pendingLeft = v
				a.hasPending = true
			}
			drained++
		}
	}

	if drained == 0 {
		// Starvation or silence: fade out instead of freezing.
		a.rms *= config.Decay
		for i := range a.bands {
			a.bands[i] *= config.Decay
		}
		return
	}

	if len(a.window) >= config.FFTSize {
		a.transform()
		// Keep the trailing quarter for windowing overlap.
		keep := len(a.window) - config.FFTSize/4
		a.window = append(a.window[:0], a.window[keep:]...)
	}
}

// transform runs one windowed FFT over the first FFTSize window samples and
// blends the results into the smoothed values.
func (a *Analyzer) transform() {
	samples := a.window[:config.FFTSize]

	var sumSquares float64
	for i, s := range samples {
		sumSquares += float64(s) * float64(s)
		a.fftIn[i] = float64(s) * a.hann[i]
	}
	newRMS := float32(math.Sqrt(sumSquares / config.FFTSize))

	a.coeffs = a.fft.Coefficients(a.coeffs, a.fftIn)

	a.rms = a.rms*config.Smoothing + newRMS*(1-config.Smoothing)
	for i, b := range a.extractBands() {
		a.bands[i] = a.bands[i]*config.Smoothing + b*(1-config.Smoothing)
	}
}

// extractBands maps FFT bins onto config.NumBands bands. Band edges follow
// a squared curve over the positive-frequency bins, so low bands are
// narrow and high bands are wide, roughly matching perceptual frequency
// sensitivity.
func (a *Analyzer) extractBands() [config.NumBands]float32 {
	var bands [config.NumBands]float32
	usefulBins := config.FFTSize / 2

	for band := 0; band < config.NumBands; band++ {
		lowEdge := math.Pow(float64(band)/config.NumBands, 2)
		highEdge := math.Pow(float64(band+1)/config.NumBands, 2)

		lowBin := int(lowEdge * float64(usefulBins))
		highBin := int(highEdge * float64(usefulBins))
		if highBin <= lowBin {
			highBin = lowBin + 1
		}
		if highBin > usefulBins {
			highBin = usefulBins
		}

		var sum float64
		count := 0
		for bin := lowBin; bin < highBin; bin++ {
			sum += cmplx.Abs(a.coeffs[bin])
			count++
		}
		if count > 0 {
			avg := sum / float64(count)
			v := float32(avg / config.FFTSize * config.BandGain)
			if v > 1 {
				v = 1
			}
			bands[band] = v
		}
	}
	return bands
}

// RMS returns the smoothed loudness, scaled and clamped to [0, 1].
func (a *Analyzer) RMS() float32 {
	v := a.rms * config.RMSGain
	if v > 1 {
		return 1
	}
	return v
}

// Bands returns a copy of the smoothed band magnitudes, each in [0, 1].
func (a *Analyzer) Bands() []float32 {
	out := make([]float32, config.NumBands)
	copy(out, a.bands[:])
	return out
}
