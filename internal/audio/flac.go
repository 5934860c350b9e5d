package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// flacSource decodes FLAC files one frame per packet.
type flacSource struct {
	stream     *flac.Stream
	file       *os.File
	sampleRate int
}

func newFLACSource(path string) (packetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNoAudioTrack, err)
	}

	return &flacSource{
		stream:     stream,
		file:       f,
		sampleRate: int(stream.Info.SampleRate),
	}, nil
}

func (s *flacSource) ReadPacket() ([]float32, error) {
	frame, err := s.stream.ParseNext()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		// FLAC frames are independently decodable, so a bad frame does not
		// poison the rest of the stream.
		return nil, fmt.Errorf("%w: %v", errPacketDecode, err)
	}

	var scale float32
	switch frame.BitsPerSample {
	case 16:
		scale = 32768.0
	case 32:
		scale = 2147483648.0
	default:
		// Unsupported encoding: skip the packet silently.
		return nil, nil
	}

	channels := len(frame.Subframes)
	if channels == 0 {
		return nil, nil
	}
	frames := len(frame.Subframes[0].Samples)

	samples := make([]float32, 0, frames*2)
	for i := 0; i < frames; i++ {
		left := float32(frame.Subframes[0].Samples[i]) / scale
		right := left
		if channels >= 2 {
			right = float32(frame.Subframes[1].Samples[i]) / scale
		}
		samples = append(samples, left, right)
	}
	return samples, nil
}

func (s *flacSource) SampleRate() int {
	return s.sampleRate
}

func (s *flacSource) Close() error {
	if s.stream != nil {
		s.stream.Close()
	}
	return s.file.Close()
}
