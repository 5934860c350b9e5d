package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavPacketFrames is the number of frames one ReadPacket requests.
const wavPacketFrames = 1024

// wavSource decodes PCM WAV files via go-audio.
type wavSource struct {
	decoder  *wav.Decoder
	file     *os.File
	buf      *goaudio.IntBuffer
	channels int
	bitDepth int
}

func newWAVSource(path string) (packetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, ErrNoAudioTrack
	}
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNoAudioTrack, err)
	}

	channels := int(decoder.NumChans)
	return &wavSource{
		decoder:  decoder,
		file:     f,
		channels: channels,
		bitDepth: int(decoder.BitDepth),
		buf: &goaudio.IntBuffer{
			Data: make([]int, wavPacketFrames*channels),
			Format: &goaudio.Format{
				NumChannels: channels,
				SampleRate:  int(decoder.SampleRate),
			},
		},
	}, nil
}

func (s *wavSource) ReadPacket() ([]float32, error) {
	n, err := s.decoder.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", errPacketDecode, err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	frames := n / s.channels
	samples := make([]float32, 0, frames*2)
	for frame := 0; frame < frames; frame++ {
		left, lok := s.convert(s.buf.Data[frame*s.channels])
		if !lok {
			// Unsupported encoding: skip the whole packet silently.
			return nil, nil
		}
		right := left
		if s.channels >= 2 {
			right, _ = s.convert(s.buf.Data[frame*s.channels+1])
		}
		samples = append(samples, left, right)
	}
	return samples, nil
}

// convert scales one integer sample to [-1, 1]. The supported encodings are
// unsigned 8-bit and signed 16/32-bit; anything else reports !ok so the
// packet can be skipped.
func (s *wavSource) convert(v int) (float32, bool) {
	switch s.bitDepth {
	case 8:
		return (float32(v) - 128.0) / 128.0, true
	case 16:
		return float32(v) / 32768.0, true
	case 32:
		return float32(v) / 2147483648.0, true
	default:
		return 0, false
	}
}

func (s *wavSource) SampleRate() int {
	return int(s.decoder.SampleRate)
}

func (s *wavSource) Close() error {
	return s.file.Close()
}
