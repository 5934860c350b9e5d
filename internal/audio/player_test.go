package audio

import (
	"testing"
)

// testPlayer builds a Player without opening the output device; the render
// path and the control surface never touch the device handle.
func testPlayer(volume float32) *Player {
	p := &Player{}
	p.volume.Store(volume)
	return p
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := testPlayer(0.5)

	p.SetVolume(1.5)
	if got := p.Volume(); got != 1.0 {
		t.Errorf("Volume after SetVolume(1.5) = %v, want 1.0", got)
	}

	p.SetVolume(-0.3)
	if got := p.Volume(); got != 0.0 {
		t.Errorf("Volume after SetVolume(-0.3) = %v, want 0.0", got)
	}
}

func TestPlayer_VolumeSteps(t *testing.T) {
	p := testPlayer(0.5)

	if got := p.VolumeUp(); got < 0.549 || got > 0.551 {
		t.Errorf("VolumeUp from 0.5 = %v, want 0.55", got)
	}
	if got := p.VolumeDown(); got < 0.499 || got > 0.501 {
		t.Errorf("VolumeDown back to %v, want 0.5", got)
	}

	p.SetVolume(0.98)
	if got := p.VolumeUp(); got != 1.0 {
		t.Errorf("VolumeUp near ceiling = %v, want clamped 1.0", got)
	}
	p.SetVolume(0.02)
	if got := p.VolumeDown(); got != 0.0 {
		t.Errorf("VolumeDown near floor = %v, want clamped 0.0", got)
	}
}

func TestPlayer_TogglePause(t *testing.T) {
	p := testPlayer(1)

	if p.IsPaused() {
		t.Fatal("player starts paused")
	}
	if now := p.TogglePause(); !now {
		t.Error("TogglePause() = false, want true after first toggle")
	}
	if !p.IsPaused() || p.IsPlaying() {
		t.Error("pause flag inconsistent after toggle")
	}
	if now := p.TogglePause(); now {
		t.Error("TogglePause() = true, want false after second toggle")
	}
}

func TestRenderSource_VolumeScalesLinearly(t *testing.T) {
	p := testPlayer(0.5)
	ring := NewRing(16)
	ring.Write([]float32{0.5, -0.5, 1.0, 0.0})
	src := &renderSource{ring: ring, player: p}

	out := make([]byte, 8)
	n, err := src.Read(out)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 8 {
		t.Fatalf("Read = %d bytes, want 8", n)
	}

	inputs := []float32{0.5, -0.5, 1.0, 0.0}
	want := make([]int16, len(inputs))
	for i, in := range inputs {
		want[i] = int16(in * 0.5 * 32767)
	}
	for i, w := range want {
		got := int16(out[i*2]) | int16(out[i*2+1])<<8
		if got != w {
			t.Errorf("sample %d = %d, want %d (input x volume)", i, got, w)
		}
	}
}

func TestRenderSource_UnderrunRendersSilence(t *testing.T) {
	p := testPlayer(1)
	src := &renderSource{ring: NewRing(16), player: p}

	out := make([]byte, 64)
	for i := range out {
		out[i] = 0xAA
	}
	if _, err := src.Read(out); err != nil {
		t.Fatalf("Read on empty ring failed: %v", err)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("byte %d = %#x on underrun, want 0 (silence)", i, b)
		}
	}
}

func TestRenderSource_PauseDoesNotDrainRing(t *testing.T) {
	p := testPlayer(1)
	ring := NewRing(64)
	samples := make([]float32, 64)
	for i := range samples {
		samples[i] = 0.25
	}
	ring.Write(samples)

	p.TogglePause()
	src := &renderSource{ring: ring, player: p}

	out := make([]byte, 32)
	for frames := 0; frames < 10; frames++ {
		if _, err := src.Read(out); err != nil {
			t.Fatalf("Read while paused failed: %v", err)
		}
		for i, b := range out {
			if b != 0 {
				t.Fatalf("byte %d = %#x while paused, want silence", i, b)
			}
		}
	}

	if got := ring.Len(); got != 64 {
		t.Errorf("ring holds %d samples after paused renders, want 64 (unchanged)", got)
	}

	// Unpausing resumes consumption from exactly where the ring left off.
	p.TogglePause()
	if _, err := src.Read(out[:2]); err != nil {
		t.Fatalf("Read after unpause failed: %v", err)
	}
	if got := ring.Len(); got != 63 {
		t.Errorf("ring holds %d samples after one rendered sample, want 63", got)
	}
}
