package audio

import (
	"fmt"
	"math"
	"sync/atomic"

	oto "github.com/hajimehoshi/oto/v2"

	"github.com/yuya-fujimoto/fomu.cli/internal/config"
)

// atomicFloat32 is a lock-free float32 cell, stored as raw bits in a
// uint32. The render path loads it on every device callback, so it must
// never be guarded by a mutex.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (f *atomicFloat32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

func (f *atomicFloat32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}

// Player owns the output device and the per-track playback ring. Volume,
// paused and finished are independent atomics because they are touched by
// both the control thread and the device's render callback; grouping them
// behind one lock would let the control thread stall the callback.
type Player struct {
	ctx    *oto.Context
	track  oto.Player
	volume atomicFloat32
	paused atomic.Bool

	// finished is set by the decode session when the track's decode ends;
	// BeginTrack resets it.
	finished atomic.Bool
}

// NewPlayer opens the output device. The device configuration is fixed for
// the process lifetime; only the per-track stream is rebuilt.
func NewPlayer() (*Player, error) {
	ctx, ready, err := oto.NewContext(config.SampleRate, config.Channels, config.BitDepth)
	if err != nil {
		return nil, fmt.Errorf("open output device: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx}
	p.volume.Store(config.DefaultVolume)
	return p, nil
}

// BeginTrack creates a fresh playback ring for a new track, resets the
// paused and finished state, and rebuilds the device stream around the new
// ring. Rebuilding per track guarantees no samples from a previous track
// linger in a reused buffer. Returns the ring's producer side for the
// decoder.
func (p *Player) BeginTrack() *Ring {
	if p.track != nil {
		p.track.Close()
		p.track = nil
	}

	ring := NewRing(config.PlaybackRingSize)
	p.finished.Store(false)
	p.paused.Store(false)

	p.track = p.ctx.NewPlayer(&renderSource{ring: ring, player: p})
	p.track.Play()
	return ring
}

// Stop tears down the current track's stream. Safe to call when idle.
func (p *Player) Stop() {
	if p.track != nil {
		p.track.Close()
		p.track = nil
	}
}

// Volume returns the current volume in [0, 1].
func (p *Player) Volume() float32 {
	return p.volume.Load()
}

// SetVolume stores the clamped volume; it takes effect on the next
// rendered frame.
func (p *Player) SetVolume(v float32) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume.Store(v)
}

// VolumeUp raises volume by one step and returns the new value.
func (p *Player) VolumeUp() float32 {
	v := p.Volume() + config.VolumeStep
	p.SetVolume(v)
	return p.Volume()
}

// VolumeDown lowers volume by one step and returns the new value.
func (p *Player) VolumeDown() float32 {
	v := p.Volume() - config.VolumeStep
	p.SetVolume(v)
	return p.Volume()
}

// TogglePause flips the paused flag and reports the new state.
func (p *Player) TogglePause() bool {
	for {
		was := p.paused.Load()
		if p.paused.CompareAndSwap(was, !was) {
			return !was
		}
	}
}

// IsPaused reports whether playback is paused.
func (p *Player) IsPaused() bool {
	return p.paused.Load()
}

// IsPlaying reports whether playback is active (not paused).
func (p *Player) IsPlaying() bool {
	return !p.paused.Load()
}

// IsFinished reports whether the current track's decode session has ended.
func (p *Player) IsFinished() bool {
	return p.finished.Load()
}

// FinishedFlag exposes the flag the decode session sets on exit.
func (p *Player) FinishedFlag() *atomic.Bool {
	return &p.finished
}

// renderSource adapts a playback ring to the reader the device pulls from.
// Read is the real-time render callback: the device invokes it on its own
// schedule with a hard deadline, so it must not allocate, lock, log, or
// block. Underrun and pause both render as silence; no error value ever
// crosses this boundary.
type renderSource struct {
	ring   *Ring
	player *Player
}

func (r *renderSource) Read(out []byte) (int, error) {
	vol := r.player.volume.Load()
	paused := r.player.paused.Load()

	for i := 0; i+1 < len(out); i += 2 {
		var sample float32
		if !paused {
			// While paused we deliberately do not consume: the full ring
			// stalls the decoder without any explicit signal reaching it.
			if v, ok := r.ring.TryRead(); ok {
				sample = v * vol
			}
		}

		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		v := int16(sample * 32767)
		out[i] = byte(v)
		out[i+1] = byte(v >> 8)
	}
	return len(out) &^ 1, nil
}
