// Package audio implements the real-time playback pipeline: a decode
// goroutine per track, bounded sample rings between stages, the output
// device callback, and spectrum analysis for visualization.
package audio

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yuya-fujimoto/fomu.cli/internal/config"
)

// Decoder turns one compressed audio file at a time into PCM pushed to the
// playback ring and, best-effort, to the analysis ring. Each Start spawns a
// fresh decode session; at most one session runs at once.
type Decoder struct {
	stop *atomic.Bool
	done chan struct{}
}

// NewDecoder creates an idle decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Start begins decoding path on a new goroutine. Samples land in playback
// (blocking with backoff when full) and analysis (lossy, may be nil).
// The finished flag is set when the session ends for any reason, so the
// caller can detect completion without joining the goroutine.
//
// Any session already running is stopped first.
func (d *Decoder) Start(path string, playback *Ring, finished *atomic.Bool, analysis *Ring) error {
	d.Stop()

	stop := &atomic.Bool{}
	done := make(chan struct{})
	d.stop = stop
	d.done = done

	go func() {
		defer close(done)
		defer finished.Store(true)
		if err := decodeFile(path, playback, stop, analysis); err != nil {
			slog.Error("decode session failed", "path", path, "err", err)
		}
	}()
	return nil
}

// Stop requests the active session to end and waits up to config.StopWait
// for it. A session that does not exit in time is detached: it still
// observes the stop flag within one packet cycle and winds down on its own,
// with nobody reading its rings.
func (d *Decoder) Stop() {
	if d.stop == nil {
		return
	}
	d.stop.Store(true)

	deadline := time.Now().Add(config.StopWait)
	for {
		select {
		case <-d.done:
			d.stop = nil
			d.done = nil
			return
		default:
		}
		if time.Now().After(deadline) {
			slog.Warn("decode session did not stop in time, detaching")
			d.stop = nil
			d.done = nil
			return
		}
		time.Sleep(config.StopPoll)
	}
}

// IsRunning reports whether a session goroutine is still alive.
func (d *Decoder) IsRunning() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// decodeFile runs one session: probe, packet loop, push.
func decodeFile(path string, playback *Ring, stop *atomic.Bool, analysis *Ring) error {
	source, err := openSource(path)
	if err != nil {
		return err
	}
	defer source.Close()

	if sr := source.SampleRate(); sr != config.SampleRate {
		// No resampling stage: mismatched sources play at device rate.
		slog.Warn("source sample rate differs from device", "path", path, "rate", sr)
	}

	for {
		if stop.Load() {
			return nil
		}

		samples, err := source.ReadPacket()
		if err != nil {
			if errors.Is(err, errPacketDecode) {
				slog.Warn("skipping corrupt packet", "path", path, "err", err)
				continue
			}
			if err == io.EOF {
				return nil
			}
			// Terminal read errors end the session the same way EOF does.
			slog.Error("packet read failed", "path", path, "err", err)
			return nil
		}
		if len(samples) == 0 {
			continue
		}

		pushSamples(samples, playback, stop, analysis)
	}
}

// pushSamples delivers one packet of stereo samples. The playback ring gets
// every sample, retrying with a short sleep while full; this backpressure
// is what stalls the decoder when playback is paused or simply ahead. The
// analysis ring gets one best-effort write and whatever does not fit is
// dropped, so analysis can never slow decoding down.
func pushSamples(samples []float32, playback *Ring, stop *atomic.Bool, analysis *Ring) {
	offset := 0
	for offset < len(samples) {
		if stop.Load() {
			return
		}
		written := playback.Write(samples[offset:])
		offset += written
		if written == 0 {
			time.Sleep(config.WriteBackoff)
		}
	}

	if analysis != nil {
		analysis.Write(samples)
	}
}
