package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// vorbisPacketFrames is the number of frames one ReadPacket requests.
const vorbisPacketFrames = 1024

// vorbisSource decodes Ogg Vorbis files. The decoder already produces
// float32, so conversion is channel layout only.
type vorbisSource struct {
	reader   *oggvorbis.Reader
	file     *os.File
	buf      []float32
	channels int
}

func newVorbisSource(path string) (packetSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNoAudioTrack, err)
	}

	channels := reader.Channels()
	return &vorbisSource{
		reader:   reader,
		file:     f,
		buf:      make([]float32, vorbisPacketFrames*channels),
		channels: channels,
	}, nil
}

func (s *vorbisSource) ReadPacket() ([]float32, error) {
	n, err := s.reader.Read(s.buf)
	if n == 0 {
		if err == nil || err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", errPacketDecode, err)
	}

	frames := n / s.channels
	samples := make([]float32, 0, frames*2)
	for frame := 0; frame < frames; frame++ {
		left := s.buf[frame*s.channels]
		right := left
		if s.channels >= 2 {
			right = s.buf[frame*s.channels+1]
		}
		samples = append(samples, left, right)
	}
	return samples, nil
}

func (s *vorbisSource) SampleRate() int {
	return s.reader.SampleRate()
}

func (s *vorbisSource) Close() error {
	return s.file.Close()
}
