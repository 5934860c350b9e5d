package audio

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/argusdusty/gofft"

	"github.com/yuya-fujimoto/fomu.cli/internal/config"
)

// feedStereo writes mono samples into the analysis ring as interleaved
// stereo with identical channels.
func feedStereo(t *testing.T, ring *Ring, mono []float32) {
	t.Helper()
	stereo := make([]float32, 0, len(mono)*2)
	for _, s := range mono {
		stereo = append(stereo, s, s)
	}
	if n := ring.Write(stereo); n != len(stereo) {
		t.Fatalf("analysis ring accepted %d of %d samples", n, len(stereo))
	}
}

// sineWindow generates one FFT window of a tone centered on the given bin.
func sineWindow(bin int, amp float64) []float32 {
	out := make([]float32, config.FFTSize)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/config.FFTSize))
	}
	return out
}

func TestAnalyzer_ToneProducesLoudness(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()

	// Several windows so smoothing converges away from zero.
	for i := 0; i < 6; i++ {
		feedStereo(t, ring, sineWindow(80, 0.8))
		a.Update()
	}

	rms := a.RMS()
	if rms <= 0 {
		t.Errorf("RMS = %v after sustained tone, want > 0", rms)
	}
	if rms > 1 {
		t.Errorf("RMS = %v, want clamped to <= 1", rms)
	}
	t.Logf("tone RMS: %v", rms)
}

func TestAnalyzer_PureToneBandPeak(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()

	// Bin 80 falls inside band 4: the squared band curve puts band 4 over
	// bins [64, 100) of the 1024 positive-frequency bins.
	const toneBin = 80
	const toneBand = 4

	for i := 0; i < 8; i++ {
		feedStereo(t, ring, sineWindow(toneBin, 0.8))
		a.Update()
	}

	bands := a.Bands()
	peak := bands[toneBand]
	if peak <= 0 {
		t.Fatalf("band %d = %v after tone at bin %d, want > 0", toneBand, peak, toneBin)
	}
	for _, adj := range []int{toneBand - 1, toneBand + 1} {
		if bands[adj]*3 > peak {
			t.Errorf("band %d = %v not attenuated relative to peak band %d = %v",
				adj, bands[adj], toneBand, peak)
		}
	}
	for i, b := range bands {
		if b < 0 || b > 1 {
			t.Errorf("band %d = %v outside [0, 1]", i, b)
		}
	}
	t.Logf("bands: %v", bands)
}

func TestAnalyzer_ToneBandMatchesReferenceFFT(t *testing.T) {
	// Cross-check the band mapping against a reference FFT: the dominant
	// bin of the windowed signal must land inside the analyzer's loudest
	// band.
	mono := sineWindow(80, 0.8)

	windowed := make([]float64, config.FFTSize)
	for i, s := range mono {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(config.FFTSize-1)))
		windowed[i] = float64(s) * w
	}
	fftInput := gofft.Float64ToComplex128Array(windowed)
	if err := gofft.FFT(fftInput); err != nil {
		t.Fatalf("reference FFT failed: %v", err)
	}

	peakBin, peakMag := 0, 0.0
	for bin := 0; bin < config.FFTSize/2; bin++ {
		if mag := cmplx.Abs(fftInput[bin]); mag > peakMag {
			peakBin, peakMag = bin, mag
		}
	}

	a := NewAnalyzer()
	ring := a.Attach()
	for i := 0; i < 8; i++ {
		feedStereo(t, ring, mono)
		a.Update()
	}

	bands := a.Bands()
	loudest := 0
	for i, b := range bands {
		if b > bands[loudest] {
			loudest = i
		}
	}

	lowBin := int(math.Pow(float64(loudest)/config.NumBands, 2) * config.FFTSize / 2)
	highBin := int(math.Pow(float64(loudest+1)/config.NumBands, 2) * config.FFTSize / 2)
	if peakBin < lowBin || peakBin >= highBin {
		t.Errorf("reference peak bin %d outside loudest band %d range [%d, %d)",
			peakBin, loudest, lowBin, highBin)
	}
}

func TestAnalyzer_SilenceDecaysTowardZero(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()

	for i := 0; i < 6; i++ {
		feedStereo(t, ring, sineWindow(80, 0.8))
		a.Update()
	}
	loudRMS := a.RMS()
	if loudRMS <= 0 {
		t.Fatal("no loudness established before silence test")
	}

	// Full windows of zeros drive the new measurements to zero; smoothing
	// means the fall is gradual, not instant.
	silence := make([]float32, config.FFTSize)
	prev := loudRMS
	for i := 0; i < 10; i++ {
		feedStereo(t, ring, silence)
		a.Update()
		if a.RMS() > prev+1e-6 {
			t.Errorf("RMS rose from %v to %v during silence", prev, a.RMS())
		}
		prev = a.RMS()
	}

	if a.RMS() > loudRMS/4 {
		t.Errorf("RMS = %v after sustained silence, want well below %v", a.RMS(), loudRMS)
	}
	for i, b := range a.Bands() {
		if b > 0.1 {
			t.Errorf("band %d = %v after sustained silence, want near 0", i, b)
		}
	}
}

func TestAnalyzer_StarvationDecays(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()

	for i := 0; i < 6; i++ {
		feedStereo(t, ring, sineWindow(80, 0.8))
		a.Update()
	}
	before := a.RMS()
	if before <= 0 {
		t.Fatal("no loudness established before starvation test")
	}

	// Empty ring: every tick decays the published values.
	for i := 0; i < 20; i++ {
		a.Update()
	}
	after := a.RMS()
	if after >= before {
		t.Errorf("RMS = %v after starvation, want below %v", after, before)
	}
	if after <= 0 {
		t.Errorf("RMS = %v, decay should fade gradually, not zero instantly", after)
	}
}

func TestAnalyzer_AttachResetsWindow(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()
	feedStereo(t, ring, sineWindow(80, 0.8))
	a.Update()

	// A new track gets a new ring; the half-filled window from the old
	// track must not leak into the first transform of the new one.
	ring2 := a.Attach()
	if ring2 == ring {
		t.Error("Attach returned the same ring for a new track")
	}
	if len(a.window) != 0 {
		t.Errorf("window holds %d samples after Attach, want 0", len(a.window))
	}
}

func TestAnalyzer_UpdateDrainCap(t *testing.T) {
	a := NewAnalyzer()
	ring := a.Attach()

	total := ring.Cap()
	buf := make([]float32, total)
	if n := ring.Write(buf); n != total {
		t.Fatalf("wrote %d of %d", n, total)
	}

	// One update drains at most MaxSamplesPerUpdate and runs at most one
	// transform, even with several windows' worth of samples queued.
	a.Update()
	drained := total - ring.Len()
	if drained > config.MaxSamplesPerUpdate {
		t.Errorf("update drained %d samples, cap is %d", drained, config.MaxSamplesPerUpdate)
	}
	if want := config.FFTSize / 4; len(a.window) != want {
		t.Errorf("window holds %d samples after one update, want %d (single transform per tick)",
			len(a.window), want)
	}
}
