package audio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoAudioTrack is returned when a file is readable but contains nothing
// this player can decode.
var ErrNoAudioTrack = errors.New("no audio track found")

// errPacketDecode marks transient per-packet corruption. The decode loop
// logs it and moves on to the next packet instead of ending the session.
var errPacketDecode = errors.New("packet decode error")

// packetSource yields one compressed packet's worth of PCM at a time,
// already converted to interleaved stereo float32.
//
// ReadPacket returns io.EOF at end of stream, an error wrapping
// errPacketDecode for recoverable corruption, and any other error for
// terminal failures. A nil error with zero samples is valid: it means the
// packet used an encoding we skip.
type packetSource interface {
	ReadPacket() ([]float32, error)
	SampleRate() int
	Close() error
}

// openSource probes a file and returns the matching packet source.
// Detection is by magic bytes first, file extension second.
func openSource(path string) (packetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	magic := make([]byte, 4)
	n, _ := f.Read(magic)
	f.Close()
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, []byte("fLaC")):
		return newFLACSource(path)
	case bytes.HasPrefix(magic, []byte("OggS")):
		return newVorbisSource(path)
	case bytes.HasPrefix(magic, []byte("RIFF")):
		return newWAVSource(path)
	case bytes.HasPrefix(magic, []byte("ID3")):
		return newMP3Source(path)
	}

	// MP3 frames without an ID3 tag start with an 11-bit sync word.
	if len(magic) >= 2 && magic[0] == 0xFF && magic[1]&0xE0 == 0xE0 {
		return newMP3Source(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return newMP3Source(path)
	case ".wav":
		return newWAVSource(path)
	case ".flac":
		return newFLACSource(path)
	case ".ogg", ".oga":
		return newVorbisSource(path)
	}

	return nil, ErrNoAudioTrack
}
